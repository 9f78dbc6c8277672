// Package design provides closed-form coefficient design for the biquad
// sections used by the seismic filter presets. It intentionally does not
// support arbitrary filter order or type: only the one design this pipeline
// needs, a second-order Butterworth highpass via the bilinear transform.
package design

import (
	"math"

	"github.com/hkasuga/knet-dsp/dsp/filter/biquad"
)

// ButterworthHighpass2 designs a second-order Butterworth highpass biquad
// at cutoff freq (Hz) for the given sampleRate (Hz), using the bilinear
// transform with frequency prewarping so the digital cutoff lands exactly
// at freq.
func ButterworthHighpass2(freq, sampleRate float64) biquad.Coefficients {
	c := math.Tan(math.Pi * freq / sampleRate)
	csq := c * c
	p := 1 + csq
	q := math.Sqrt2 * c

	return biquad.Coefficients{
		A0: p + q,
		A1: 2 * (csq - 1),
		A2: p - q,
		B0: 1,
		B1: -2,
		B2: 1,
	}
}
