package win32

import "encoding/binary"

// PackMode identifies how a channel record's differential samples are
// bit-packed.
type PackMode uint8

const (
	PackNibble PackMode = 0
	PackInt8   PackMode = 1
	PackInt16  PackMode = 2
	PackInt24  PackMode = 3
	PackInt32  PackMode = 4
)

// bytesNeeded returns the number of payload bytes a pack mode consumes
// to encode diffCount deltas, or ok=false for an unknown mode.
func bytesNeeded(mode PackMode, diffCount int) (int, bool) {
	switch mode {
	case PackNibble:
		return (diffCount + 1) / 2, true
	case PackInt8:
		return diffCount, true
	case PackInt16:
		return 2 * diffCount, true
	case PackInt24:
		return 3 * diffCount, true
	case PackInt32:
		return 4 * diffCount, true
	default:
		return 0, false
	}
}

// decodeDeltas reads diffCount signed deltas from data, encoded per mode.
func decodeDeltas(mode PackMode, data []byte, diffCount int) ([]int32, error) {
	deltas := make([]int32, diffCount)
	switch mode {
	case PackNibble:
		for i := 0; i < diffCount; i++ {
			b := data[i/2]
			var nb byte
			if i%2 == 0 {
				nb = b >> 4
			} else {
				nb = b & 0x0F
			}
			deltas[i] = signExtendNibble(nb)
		}
	case PackInt8:
		for i := 0; i < diffCount; i++ {
			deltas[i] = int32(int8(data[i]))
		}
	case PackInt16:
		for i := 0; i < diffCount; i++ {
			deltas[i] = int32(int16(binary.BigEndian.Uint16(data[2*i : 2*i+2])))
		}
	case PackInt24:
		for i := 0; i < diffCount; i++ {
			deltas[i] = readInt24BE(data[3*i : 3*i+3])
		}
	case PackInt32:
		for i := 0; i < diffCount; i++ {
			deltas[i] = int32(binary.BigEndian.Uint32(data[4*i : 4*i+4]))
		}
	default:
		return nil, formatErrorf(errUnknownPackMode, "mode %d", mode)
	}
	return deltas, nil
}

// signExtendNibble interprets a 4-bit field as a signed two's complement
// value in [-8, 7].
func signExtendNibble(nb byte) int32 {
	if nb >= 8 {
		return int32(nb) - 16
	}
	return int32(nb)
}

// reconstructSamples rebuilds the sample sequence from a first value and
// its successive deltas: samples[0] = first, samples[i] = samples[i-1] +
// delta[i-1].
func reconstructSamples(first int32, deltas []int32) []int32 {
	samples := make([]int32, len(deltas)+1)
	samples[0] = first
	for i, d := range deltas {
		samples[i+1] = samples[i] + d
	}
	return samples
}

// decodeWaveform decodes a channel record's full sample sequence given
// its pack mode, sample count, first value, and the differential payload
// bytes.
func decodeWaveform(mode PackMode, sampleCount int, first int32, payload []byte) ([]int32, error) {
	if sampleCount <= 0 {
		return nil, nil
	}
	diffCount := sampleCount - 1
	need, ok := bytesNeeded(mode, diffCount)
	if !ok {
		return nil, formatErrorf(errUnknownPackMode, "mode %d", mode)
	}
	if len(payload) < need {
		return nil, formatErrorf(errShortRead, "waveform payload: need %d bytes, have %d", need, len(payload))
	}
	deltas, err := decodeDeltas(mode, payload, diffCount)
	if err != nil {
		return nil, err
	}
	return reconstructSamples(first, deltas), nil
}
