package biquad

import "github.com/hkasuga/knet-dsp/dsp/vecop"

// Group is an ordered cascade of N Direct Form I biquad sections followed
// by a final output gain. Its delay-line matrix has N+1 rows: one row per
// section plus a terminal row holding the last section's output sample
// (before the output gain is applied), which participates in no further filtering but is kept so State/SetState
// round-trip the whole pipeline, not just the filtering sections.
type Group[T any] struct {
	sections []Section[T]
	tail     T
	gain     float64
	ops      vecop.Ops[T]
}

// groupConfig holds options for NewGroup.
type groupConfig struct {
	gain float64
}

// GroupOption configures a Group.
type GroupOption func(*groupConfig)

// WithGain sets the overall gain applied after the cascade. Default is 1.0.
func WithGain(g float64) GroupOption {
	return func(cfg *groupConfig) { cfg.gain = g }
}

// NewGroup creates a cascade from one or more coefficient sets, sharing a
// single vector-space capability across every section.
func NewGroup[T any](coeffs []Coefficients, ops vecop.Ops[T], opts ...GroupOption) *Group[T] {
	cfg := groupConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	g := &Group[T]{
		sections: make([]Section[T], len(coeffs)),
		gain:     cfg.gain,
		ops:      ops,
	}
	for i := range coeffs {
		g.sections[i] = Section[T]{Coefficients: coeffs[i], ops: ops}
	}

	return g
}

// Update cascades x through every section in order and scales the final
// section's output by the cascade gain.
func (g *Group[T]) Update(x T) T {
	for i := range g.sections {
		x = g.sections[i].ProcessSample(x)
	}
	g.tail = x
	return g.ops.Scale(g.gain, x)
}

// Reset clears every section's delay line and the terminal row.
func (g *Group[T]) Reset() {
	for i := range g.sections {
		g.sections[i].Reset()
	}
	var zero T
	g.tail = zero
}

// Order returns the total filter order (2 per full biquad section).
func (g *Group[T]) Order() int { return 2 * len(g.sections) }

// NumSections returns the number of biquad sections.
func (g *Group[T]) NumSections() int { return len(g.sections) }

// Gain returns the current output gain.
func (g *Group[T]) Gain() float64 { return g.gain }

// SetGain updates the output gain applied after the cascade.
func (g *Group[T]) SetGain(gg float64) { g.gain = gg }

// UpdateCoefficients replaces the filter coefficients and gain. If the
// number of sections is unchanged, each section's delay-line state is
// preserved, avoiding the output discontinuity a fresh zero-state cascade
// would produce. If the section count changes, the sections are replaced
// and all state is reset.
func (g *Group[T]) UpdateCoefficients(coeffs []Coefficients, gain float64) {
	g.gain = gain

	if len(coeffs) == len(g.sections) {
		for i := range g.sections {
			g.sections[i].Coefficients = coeffs[i]
		}
		return
	}

	g.sections = make([]Section[T], len(coeffs))
	for i := range coeffs {
		g.sections[i] = Section[T]{Coefficients: coeffs[i], ops: g.ops}
	}
	var zero T
	g.tail = zero
}

// Section returns a pointer to the i-th section for inspection or
// modification.
func (g *Group[T]) Section(i int) *Section[T] {
	return &g.sections[i]
}

// State returns a snapshot of the cascade's delay-line matrix: one
// [DelayPair] per section, plus a terminal row holding the last section's
// most recent output (before the output gain) in X and Y.
// len(result) == NumSections()+1.
func (g *Group[T]) State() []DelayPair[T] {
	states := make([]DelayPair[T], len(g.sections)+1)
	for i := range g.sections {
		states[i] = g.sections[i].State()
	}
	states[len(g.sections)] = DelayPair[T]{X: g.tail, Y: g.tail}
	return states
}

// SetState restores previously saved section states. states must have
// length NumSections()+1; the terminal row's X field becomes the restored
// tail value.
func (g *Group[T]) SetState(states []DelayPair[T]) {
	for i := range g.sections {
		g.sections[i].SetState(states[i])
	}
	g.tail = states[len(g.sections)].X
}
