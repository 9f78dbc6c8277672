package win32

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/hkasuga/knet-dsp/dsp/scalednumber"
)

const (
	latLonFieldBytes  = 4 // 8 BCD nibbles
	altitudeFieldBytes = 4 // 1 sign nibble + 7 digit nibbles
	stationCodeBytes  = 12
	bcdTimeBytes      = 8 // 16 nibbles
	componentBytes    = 20
)

// applyCoordinateSign converts a coordinate field's raw stored magnitude
// into its signed value in place, per the WIN32 convention that negative
// coordinates are stored as (magnitude + threshold): a stored value
// above threshold means the true value is threshold minus it. decodeBCDField
// always yields a non-positive Scale, so the threshold can be aligned to
// the same scale by integer exponentiation, keeping the conversion exact.
func applyCoordinateSign(n *scalednumber.Number, threshold int32) {
	scaledThreshold := threshold
	for i := int32(0); i < -n.Scale; i++ {
		scaledThreshold *= 10
	}
	if n.Mantissa > scaledThreshold {
		n.Mantissa = scaledThreshold - n.Mantissa
	}
}

func decodeStationInfo(payload []byte, hasBorehole bool) (*StationInfo, error) {
	need := latLonFieldBytes*2 + altitudeFieldBytes + stationCodeBytes + bcdTimeBytes*2 + 2 + 1 + 1 + 1 + 2 + 1 + 1
	if hasBorehole {
		need += altitudeFieldBytes
	}
	if len(payload) < need {
		return nil, formatErrorf(errShortRead, "StationInfo subrecord: need %d bytes, have %d", need, len(payload))
	}

	off := 0
	readN := func(n int) []byte {
		b := payload[off : off+n]
		off += n
		return b
	}

	lat, err := decodeBCDField(nibblesOf(readN(latLonFieldBytes)), 3)
	if err != nil {
		return nil, err
	}
	lon, err := decodeBCDField(nibblesOf(readN(latLonFieldBytes)), 3)
	if err != nil {
		return nil, err
	}
	if lat != nil {
		applyCoordinateSign(lat, 90)
	}
	if lon != nil {
		applyCoordinateSign(lon, 180)
	}

	alt, err := decodeBCDAltitude(nibblesOf(readN(altitudeFieldBytes)), 5)
	if err != nil {
		return nil, err
	}

	var underAlt *scalednumber.Number
	if hasBorehole {
		underAlt, err = decodeBCDAltitude(nibblesOf(readN(altitudeFieldBytes)), 5)
		if err != nil {
			return nil, err
		}
	}

	code := strings.TrimRight(string(readN(stationCodeBytes)), "\x00")

	dataStart, err := decodeBCDTime(nibblesOf(readN(bcdTimeBytes)))
	if err != nil {
		return nil, err
	}

	durationTenths := binary.BigEndian.Uint16(readN(2))

	lastFix, err := decodeBCDTime(nibblesOf(readN(bcdTimeBytes)))
	if err != nil {
		return nil, err
	}

	fixingMethod := readN(1)[0]
	geodeticSystem := readN(1)[0]
	stationType := readN(1)[0]
	sampleRate := binary.BigEndian.Uint16(readN(2))
	componentCount := readN(1)[0]
	redeployed := readN(1)[0] != 0

	need += int(componentCount) * componentBytes
	if len(payload) < need {
		return nil, formatErrorf(errShortRead, "StationInfo components: need %d bytes, have %d", need, len(payload))
	}

	components := make([]StationComponent, componentCount)
	for i := range components {
		b := readN(componentBytes)
		components[i] = StationComponent{
			Organization:     b[0],
			Network:          b[1],
			ChannelID:        binary.BigEndian.Uint16(b[2:4]),
			ScaleNumerator:   int16(binary.BigEndian.Uint16(b[4:6])),
			Gain:             b[6],
			Unit:             decodeComponentUnit(b[7]),
			ScaleDenominator: int32(binary.BigEndian.Uint32(b[8:12])),
			Offset:           int32(binary.BigEndian.Uint32(b[12:16])),
			MeasurementRange: int32(binary.BigEndian.Uint32(b[16:20])),
		}
	}

	si := &StationInfo{
		Latitude:            lat,
		Longitude:           lon,
		Altitude:            alt,
		StationCode:         code,
		DataStartTime:       dataStart,
		MeasurementDuration: time.Duration(durationTenths) * 100 * time.Millisecond,
		LastTimeFixingTime:  lastFix,
		FixingMethod:        fixingMethod,
		GeodeticSystem:      geodeticSystem,
		StationType:         stationType,
		SampleRate:          sampleRate,
		ComponentCount:      componentCount,
		Redeployed:          redeployed,
		Components:           components,
		UndergroundAltitude:  underAlt,
	}
	return si, nil
}
