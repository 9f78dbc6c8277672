// Package lpgm implements the realtime long-period ground motion (LPGM)
// calculator: a bank of single-degree-of-freedom oscillators driven by a
// highpass-filtered acceleration stream, producing a per-period spectral
// velocity response used to derive the LPGM class.
package lpgm

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/hkasuga/knet-dsp/dsp/filter/biquad"
	"github.com/hkasuga/knet-dsp/dsp/filter/design"
	"github.com/hkasuga/knet-dsp/dsp/vecop"
)

// NumOscillators is the fixed size of the LPGM oscillator bank.
const NumOscillators = 32

// Period returns the natural period, in seconds, of oscillator k.
func Period(k int) float64 {
	return 1.6 + 0.2*float64(k)
}

// Params configures the oscillator bank's common damping ratio.
type Params struct {
	Damping float64
}

// DefaultParams returns the standard 5% critical damping used by the
// LPGM oscillator bank.
func DefaultParams() Params {
	return Params{Damping: 0.05}
}

// Option configures Params before construction.
type Option func(*Params)

// WithDamping overrides the bank's common damping ratio.
func WithDamping(zeta float64) Option {
	return func(p *Params) { p.Damping = zeta }
}

// oscillator holds the precomputed state-transition matrices and running
// state for one single-degree-of-freedom system.
type oscillator struct {
	a [2][2]float64
	b [2][2]float64
	c [2][2]float64 // rows: {position.x, position.y}, {velocity.x, velocity.y}
}

// advance updates the oscillator's state given the previous and current
// horizontal filtered-acceleration samples, following C_k <- A_k*C_k +
// B_k*M where M's rows are (prev.x, prev.y) and (cur.x, cur.y).
func (o *oscillator) advance(prev, cur vecop.Vec3) {
	m := [2][2]float64{
		{prev.X, prev.Y},
		{cur.X, cur.Y},
	}
	var next [2][2]float64
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			next[row][col] = o.a[row][0]*o.c[0][col] + o.a[row][1]*o.c[1][col] +
				o.b[row][0]*m[0][col] + o.b[row][1]*m[1][col]
		}
	}
	o.c = next
}

// nigamJennings derives the exact piecewise-linear state transition
// matrices for a single-degree-of-freedom oscillator of natural
// frequency omega and damping ratio zeta, sampled every dt seconds. a is
// the free-vibration transition matrix; b maps the [previous, current]
// forcing pair onto the state increment (Nigam & Jennings, 1969).
func nigamJennings(omega, zeta, dt float64) (a, b [2][2]float64) {
	d := math.Sqrt(1 - zeta*zeta)
	wd := omega * d
	e := math.Exp(-zeta * omega * dt)
	s := math.Sin(wd * dt)
	c := math.Cos(wd * dt)

	a1 := (zeta / d) * s
	a2 := s * e / d

	a[0][0] = e * (a1 + c)
	a[0][1] = a2 / omega
	a[1][0] = -a2 * omega
	a[1][1] = e * (-a1 + c)

	w2 := omega * omega
	wdt := omega * dt

	b[0][0] = (1 / w2) * (2*zeta/wdt + e*(((1-2*zeta*zeta)/(wd*dt)-zeta/d)*s-(1+2*zeta/wdt)*c))
	b[0][1] = (1 / w2) * (1 - 2*zeta/wdt + e*((2*zeta*zeta-1)/(wd*dt)*s+(2*zeta/wdt)*c))
	b[1][0] = (1 / w2) * (-1/dt + e*((omega/d+zeta/(dt*d))*s+(1/dt)*c))
	b[1][1] = (1 / (w2 * dt)) * (1 - e*((zeta/d)*s+c))

	return a, b
}

// Calculator is a realtime LPGM oscillator bank: a 0.05 Hz highpass
// prefilter, trapezoidal velocity integration, and 32 independent SDOF
// oscillators whose velocity state plus the integrated ground velocity
// give the per-period spectral velocity response.
type Calculator struct {
	dt       float64
	prefilt  *biquad.Section[vecop.Vec3]
	oscs     [NumOscillators]oscillator
	velocity vecop.Vec3
	prevFilt vecop.Vec3
	sva      [NumOscillators]float64

	re, im, mag []float64
}

// New builds an LPGM calculator for a stream sampled every 1/sampleRate
// seconds.
func New(sampleRate float64, opts ...Option) (*Calculator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("lpgm: sampleRate must be positive, got %v", sampleRate)
	}
	p := DefaultParams()
	for _, o := range opts {
		o(&p)
	}
	if p.Damping <= 0 || p.Damping >= 1 {
		return nil, fmt.Errorf("lpgm: damping must be in (0,1), got %v", p.Damping)
	}

	dt := 1 / sampleRate
	coeffs := design.ButterworthHighpass2(0.05, sampleRate)

	c := &Calculator{
		dt:      dt,
		prefilt: biquad.NewSection(coeffs, vecop.Vec3Ops{}),
		re:      make([]float64, NumOscillators),
		im:      make([]float64, NumOscillators),
		mag:     make([]float64, NumOscillators),
	}
	for k := 0; k < NumOscillators; k++ {
		omega := 2 * math.Pi / Period(k)
		a, b := nigamJennings(omega, p.Damping, dt)
		c.oscs[k] = oscillator{a: a, b: b}
	}
	return c, nil
}

// Update advances the bank by one sample of horizontal ground
// acceleration (NS, EW; the vertical component is not part of this
// bank) and returns the per-oscillator spectral velocity response.
func (c *Calculator) Update(accel vecop.Vec3) [NumOscillators]float64 {
	filtered := c.prefilt.ProcessSample(accel)

	c.velocity.X += (c.prevFilt.X + filtered.X) * c.dt / 2
	c.velocity.Y += (c.prevFilt.Y + filtered.Y) * c.dt / 2
	c.velocity.Z += (c.prevFilt.Z + filtered.Z) * c.dt / 2

	for k := 0; k < NumOscillators; k++ {
		c.oscs[k].advance(c.prevFilt, filtered)
		c.re[k] = c.oscs[k].c[1][0] + c.velocity.X
		c.im[k] = c.oscs[k].c[1][1] + c.velocity.Y
	}
	vecmath.Magnitude(c.mag, c.re, c.im)
	copy(c.sva[:], c.mag)

	c.prevFilt = filtered
	return c.sva
}

// SVA returns the most recent per-oscillator spectral velocity response.
func (c *Calculator) SVA() [NumOscillators]float64 {
	return c.sva
}

// MaxSVA returns the largest spectral velocity across the bank's 32
// oscillators for the most recent sample. Windowing this over time (the
// long-period indicator) is the caller's responsibility, via a separate
// bleeding delay line fed with this value each sample.
func (c *Calculator) MaxSVA() float64 {
	m := c.sva[0]
	for _, v := range c.sva[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// FilteredAcceleration returns the most recent highpass-filtered
// acceleration sample.
func (c *Calculator) FilteredAcceleration() vecop.Vec3 {
	return c.prevFilt
}

// Velocity returns the running trapezoidally-integrated velocity.
func (c *Calculator) Velocity() vecop.Vec3 {
	return c.velocity
}

// Reset clears the prefilter, integrator, and every oscillator's state.
func (c *Calculator) Reset() {
	c.prefilt.Reset()
	c.velocity = vecop.Vec3{}
	c.prevFilt = vecop.Vec3{}
	for k := range c.oscs {
		c.oscs[k].c = [2][2]float64{}
	}
	for i := range c.sva {
		c.sva[i] = 0
	}
}
