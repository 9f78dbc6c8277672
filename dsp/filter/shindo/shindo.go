// Package shindo implements the realtime JMA seismic intensity weighting
// filter: a fixed six-section biquad cascade whose response approximates
// human perception of shaking, followed by the JMA scalar-intensity
// formula.
package shindo

import (
	"math"

	"github.com/hkasuga/knet-dsp/dsp/filter/biquad"
	"github.com/hkasuga/knet-dsp/dsp/vecop"
)

// Params holds the corner frequencies, damping ratios, and output gain of
// the six-section weighting cascade. DefaultParams returns the standard
// JMA coefficients; callers only need to override these for calibration
// work against a different station's response curve.
type Params struct {
	F0, F1, F2, F3, F4, F5 float64
	H2A, H2B, H3, H4, H5   float64
	Gain                   float64
}

// DefaultParams returns the standard JMA weighting filter parameters.
func DefaultParams() Params {
	return Params{
		F0: 0.45, F1: 7.0, F2: 0.5, F3: 12.0, F4: 20.0, F5: 30.0,
		H2A: 1.0, H2B: 0.75, H3: 0.6, H4: 0.6, H5: 0.6,
		Gain: 1.262,
	}
}

// Option configures a Filter's Params before construction.
type Option func(*Params)

// WithGain overrides the cascade's output gain.
func WithGain(gain float64) Option {
	return func(p *Params) { p.Gain = gain }
}

// WithParams replaces the entire parameter set.
func WithParams(params Params) Option {
	return func(p *Params) { *p = params }
}

// Filter is a realtime JMA weighting cascade over sample representation T,
// built once from a fixed sample period and never re-designed afterward.
type Filter[T any] struct {
	group *biquad.Group[T]
}

// New builds the six-section cascade for a stream sampled every dt
// seconds.
func New[T any](dt float64, ops vecop.Ops[T], opts ...Option) *Filter[T] {
	p := DefaultParams()
	for _, o := range opts {
		o(&p)
	}
	return &Filter[T]{group: biquad.NewGroup(coefficients(dt, p), ops, biquad.WithGain(p.Gain))}
}

// Update filters one input sample (ground acceleration) and returns the
// weighted output.
func (f *Filter[T]) Update(x T) T {
	return f.group.Update(x)
}

// Reset clears the cascade's delay lines.
func (f *Filter[T]) Reset() {
	f.group.Reset()
}

// Intensity converts a bled peak weighted-acceleration value (in cm/s^2,
// "gal") into the scalar JMA seismic intensity. Callers are responsible
// for having accumulated v via the bleeding delay line and for discarding
// the value until the cascade has warmed up; this function is a pure
// formula with no state of its own.
func Intensity(vGal float64) float64 {
	if vGal <= 0 {
		return math.Inf(-1)
	}
	return 2*math.Log10(vGal) + 0.94
}

// coefficients derives the six biquad sections of the JMA weighting
// cascade from the sample period dt and the filter's corner frequencies
// and damping ratios.
func coefficients(dt float64, p Params) []biquad.Coefficients {
	w0 := 2 * math.Pi * p.F0
	w1 := 2 * math.Pi * p.F1
	w2 := 2 * math.Pi * p.F2
	w3 := 2 * math.Pi * p.F3
	w4 := 2 * math.Pi * p.F4
	w5 := 2 * math.Pi * p.F5

	dt2 := dt * dt

	section1 := biquad.Coefficients{
		A0: 8/dt2 + w0*w1,
		A1: (4*w0 + 2*w1) / dt,
		A2: 2*w0*w1 - 16/dt2,
		B0: 4 / dt2,
		B1: 2 * w1 / dt,
		B2: -8 / dt2,
	}

	section2 := biquad.Coefficients{
		A0: 16/dt2 + w1*w1,
		A1: 17 * w1 / dt,
		A2: 2*w1*w1 - 32/dt2,
		B0: 4/dt2 + w1*w1,
		B1: 8.5 * w1 / dt,
		B2: 2*w1*w1 - 8/dt2,
	}

	section3 := highShelfSection(w2, dt2, p.H2A, p.H2B)
	section4 := lowShelfSection(w3, dt2, p.H3)
	section5 := lowShelfSection(w4, dt2, p.H4)
	section6 := lowShelfSection(w5, dt2, p.H5)

	return []biquad.Coefficients{section1, section2, section3, section4, section5, section6}
}

// highShelfSection builds the roll-off correction section (with distinct
// numerator/denominator damping) at corner w.
func highShelfSection(w, dt2, hNum, hDen float64) biquad.Coefficients {
	wsq := w * w
	return biquad.Coefficients{
		A0: 12/dt2 + wsq,
		A1: 12 * hDen * w / math.Sqrt(dt2),
		A2: 10*wsq - 24/dt2,
		B0: 12/dt2 + wsq,
		B1: 12 * hNum * w / math.Sqrt(dt2),
		B2: 10*wsq - 24/dt2,
	}
}

// lowShelfSection builds one of the three identical-shaped high-cut
// sections at corner w with damping h.
func lowShelfSection(w, dt2, h float64) biquad.Coefficients {
	wsq := w * w
	return biquad.Coefficients{
		A0: 12/dt2 + wsq,
		A1: 12 * h * w / math.Sqrt(dt2),
		A2: 10*wsq - 24/dt2,
		B0: wsq,
		B1: 0,
		B2: 10 * wsq,
	}
}
