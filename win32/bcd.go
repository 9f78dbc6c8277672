package win32

import (
	"github.com/hkasuga/knet-dsp/dsp/scalednumber"
)

const (
	nibbleAbsent    = 0xB
	nibbleAltPos    = 0xC
	nibbleAltNeg    = 0xD
	nibbleEarlyTerm = 0xE
)

// nibblesOf splits a big-endian byte slice into its nibbles, MSB first.
func nibblesOf(b []byte) []byte {
	n := make([]byte, 0, len(b)*2)
	for _, by := range b {
		n = append(n, by>>4, by&0x0F)
	}
	return n
}

// decodeBCDField decodes a plain (unsigned-magnitude) BCD digit field
// into a ScaledNumber. integralDigits is the number of leading nibbles
// that belong to the integer part; every nibble after that contributes a
// negative power of ten to scale. A leading 0xB nibble means the field
// is absent (returns nil, nil). A 0xE nibble terminates the mantissa
// early — no fractional digits after it are counted, matching a value
// whose recorded precision is coarser than the field's fixed width. Any
// other nibble outside 0-9 is a format error.
func decodeBCDField(nibbles []byte, integralDigits int) (*scalednumber.Number, error) {
	if len(nibbles) == 0 {
		return nil, formatErrorf(errShortRead, "empty BCD field")
	}
	if nibbles[0] == nibbleAbsent {
		return nil, nil
	}

	var digits []byte
	fracConsumed := 0
	for i, nb := range nibbles {
		if nb == nibbleEarlyTerm {
			break
		}
		if nb > 9 {
			return nil, formatErrorf(errInvalidBCDDigit, "nibble %#x at position %d", nb, i)
		}
		digits = append(digits, nb)
		if i >= integralDigits {
			fracConsumed++
		}
	}

	mantissa := int32(0)
	for _, d := range digits {
		mantissa = mantissa*10 + int32(d)
	}
	n := scalednumber.New(mantissa, int32(-fracConsumed))
	return &n, nil
}

// decodeBCDAltitude decodes a signed BCD field where the leading nibble
// carries the sign (0xC positive, 0xD negative) rather than a digit, as
// used for altitude fields.
func decodeBCDAltitude(nibbles []byte, integralDigits int) (*scalednumber.Number, error) {
	if len(nibbles) == 0 {
		return nil, formatErrorf(errShortRead, "empty BCD altitude field")
	}
	if nibbles[0] == nibbleAbsent {
		return nil, nil
	}

	var negative bool
	switch nibbles[0] {
	case nibbleAltPos:
		negative = false
	case nibbleAltNeg:
		negative = true
	default:
		return nil, formatErrorf(errInvalidBCDDigit, "altitude sign nibble %#x", nibbles[0])
	}

	n, err := decodeBCDField(nibbles[1:], integralDigits)
	if err != nil || n == nil {
		return n, err
	}
	if negative {
		n.Mantissa = -n.Mantissa
	}
	return n, nil
}
