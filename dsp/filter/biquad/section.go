package biquad

import "github.com/hkasuga/knet-dsp/dsp/vecop"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad), Direct Form I, with an explicit a0 (not
// normalized to 1):
//
//	y_i = (B0*x_i + B1*x_i-1 + B2*x_i-2 - A1*y_i-1 - A2*y_i-2) / A0
type Coefficients struct {
	A0, A1, A2 float64 // denominator (feedback)
	B0, B1, B2 float64 // numerator (feedforward)
}

// Section is a single Direct Form I biquad: it keeps the last two input
// samples and the last two output samples, rather than the collapsed
// two-word state of a Direct Form II Transposed realization.
type Section[T any] struct {
	Coefficients

	ops    vecop.Ops[T]
	x1, x2 T
	y1, y2 T
}

// NewSection returns a Section initialized with the given coefficients,
// zero delay state, and the vector-space capability for T.
func NewSection[T any](c Coefficients, ops vecop.Ops[T]) *Section[T] {
	return &Section[T]{Coefficients: c, ops: ops}
}

// ProcessSample filters one input sample and returns the output, per the
// Direct Form I difference equation.
func (s *Section[T]) ProcessSample(x T) T {
	ops := s.ops

	feedforward := ops.Add(
		ops.Scale(s.B0, x),
		ops.Add(ops.Scale(s.B1, s.x1), ops.Scale(s.B2, s.x2)),
	)
	feedback := ops.Add(ops.Scale(s.A1, s.y1), ops.Scale(s.A2, s.y2))
	y := ops.Scale(1/s.A0, ops.Add(feedforward, ops.Scale(-1, feedback)))

	s.x2, s.x1 = s.x1, x
	s.y2, s.y1 = s.y1, y

	return y
}

// Reset clears the input and output delay lines to their zero value.
func (s *Section[T]) Reset() {
	var zero T
	s.x1, s.x2 = zero, zero
	s.y1, s.y2 = zero, zero
}

// DelayPair holds one section's [x, y] delay-line row: the most recent
// input sample and the most recent output sample in X and Y, and the
// samples before those (n-2) in X2 and Y2.
type DelayPair[T any] struct {
	X, Y   T
	X2, Y2 T
}

// State returns the section's current delay-line row.
func (s *Section[T]) State() DelayPair[T] {
	return DelayPair[T]{X: s.x1, Y: s.y1, X2: s.x2, Y2: s.y2}
}

// SetState restores a previously saved delay-line row, including the
// older (n-2) delay slots.
func (s *Section[T]) SetState(state DelayPair[T]) {
	s.x1, s.x2 = state.X, state.X2
	s.y1, s.y2 = state.Y, state.Y2
}
