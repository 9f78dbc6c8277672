package win32

import (
	"time"

	"github.com/hkasuga/knet-dsp/dsp/scalednumber"
)

// jst is Japan Standard Time, UTC+9, with no daylight-saving rules.
var jst = time.FixedZone("JST", 9*60*60)

// StationInfo carries the station-identifying fields of an E000/E001
// WIN32 subrecord: location, timing, and the calibration of each
// recorded channel.
type StationInfo struct {
	Latitude              *scalednumber.Number
	Longitude             *scalednumber.Number
	Altitude              *scalednumber.Number
	UndergroundAltitude    *scalednumber.Number // nil unless the subrecord carries an underground sensor
	StationCode           string
	DataStartTime         time.Time // JST
	MeasurementDuration    time.Duration
	LastTimeFixingTime     time.Time // JST
	FixingMethod          byte
	GeodeticSystem        byte
	StationType           byte
	SampleRate            uint16
	ComponentCount        uint8
	Redeployed            bool
	Components            []StationComponent
}

// HypocenterInfo carries the E020 subrecord fields describing an
// earthquake's estimated source. Absent for realtime/instantaneous
// packets, which carry no HypocenterInfo subrecord at all.
type HypocenterInfo struct {
	OriginTime     time.Time // JST
	Latitude       *scalednumber.Number
	Longitude      *scalednumber.Number
	Depth          *scalednumber.Number
	Magnitude      *scalednumber.Number
	GeodeticSystem byte
	HypocenterType byte
}

// ChannelData is one channel's decoded waveform for a single second
// block.
type ChannelData struct {
	Organization byte
	Network      byte
	ChannelID    uint16
	Data         []int32
}

// SecondBlock is one second's worth of waveform data across every
// recorded channel.
type SecondBlock struct {
	SamplingStartTime time.Time // JST
	FrameDuration     time.Duration
	Channels          []ChannelData
}

// Data is the fully decoded contents of a WIN32 container: the fixed
// header identifiers, an optional station and hypocenter description,
// and the sequence of second blocks that followed.
type Data struct {
	Organization    byte
	Network         byte
	StationID       uint16
	StationInfo     *StationInfo
	HypocenterInfo  *HypocenterInfo
	Seconds         []SecondBlock
}
