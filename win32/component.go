package win32

// UnitType is the physical quantity a StationComponent measures.
type UnitType uint8

const (
	UnitNone UnitType = iota
	UnitMeter
	UnitMeterPerSecond
	UnitMeterPerSecondSquared
)

// ComponentUnit packs a decimal scale exponent and a physical unit type
// into the single byte the WIN32 wire format uses: (scale<<4)|type.
type ComponentUnit struct {
	Scale uint8 // in [0,15]
	Type  UnitType
}

// decodeComponentUnit unpacks a wire byte into a ComponentUnit.
func decodeComponentUnit(b byte) ComponentUnit {
	return ComponentUnit{Scale: b >> 4, Type: UnitType(b & 0x0F)}
}

// Factor returns the physical scale factor 10^-scale.
func (u ComponentUnit) Factor() float64 {
	f := 1.0
	for i := uint8(0); i < u.Scale; i++ {
		f /= 10
	}
	return f
}

// StationComponent describes one sensor channel's calibration: the
// digital-to-physical conversion, gain, and identification fields
// carried in a WIN32 StationInfo subrecord.
type StationComponent struct {
	Organization     byte
	Network          byte
	ChannelID        uint16
	ScaleNumerator   int16
	Gain             uint8
	Unit             ComponentUnit
	ScaleDenominator int32
	Offset           int32
	MeasurementRange int32
}

// ToPhysical converts a raw digitized sample to its physical value:
// scaleNumerator / scaleDenominator * (d - offset) / gain.
func (c StationComponent) ToPhysical(d int32) float64 {
	return (float64(c.ScaleNumerator) / float64(c.ScaleDenominator)) *
		(float64(d) - float64(c.Offset)) / float64(c.Gain)
}
