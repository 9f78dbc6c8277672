// Package vecop provides the vector-space capability generic DSP primitives
// need to run over more than one sample representation: plain scalars, or a
// three-axis (NS/EW/UD) acceleration vector.
//
// Callers supply a zero-sized witness value satisfying [Ops] for the sample
// type T. The generic filters store that witness as an [Ops] interface value
// and call its methods through the interface on every sample; the witness
// is not a type parameter, so calls are not resolved at compile time.
package vecop

import "github.com/hkasuga/knet-dsp/dsp/core"

// Ops is the capability a sample type T must provide for use inside a
// generic streaming filter: component-wise addition and scaling by a
// dimensionless scalar.
type Ops[T any] interface {
	Add(a, b T) T
	Scale(k float64, v T) T
}

// Scalar is the Ops witness for plain float64 samples.
type Scalar struct{}

func (Scalar) Add(a, b float64) float64           { return core.FlushDenormals(a + b) }
func (Scalar) Scale(k float64, v float64) float64 { return k * v }

// Vec3 is a three-axis sample, e.g. (NS, EW, UD) ground acceleration.
type Vec3 struct {
	X, Y, Z float64
}

// Vec3Ops is the Ops witness for Vec3. Add flushes each component's
// recursive-filter accumulator to exact zero once it decays into denormal
// range, the same guard the teacher's own audio effect chains apply to
// long-running feedback state. Scale rounds both the scalar and each
// component to single precision and multiplies in single precision,
// matching the reduced-precision variant used where the three axes are
// carried through a shared filter bank.
type Vec3Ops struct{}

func (Vec3Ops) Add(a, b Vec3) Vec3 {
	return Vec3{
		X: core.FlushDenormals(a.X + b.X),
		Y: core.FlushDenormals(a.Y + b.Y),
		Z: core.FlushDenormals(a.Z + b.Z),
	}
}

func (Vec3Ops) Scale(k float64, v Vec3) Vec3 {
	kf := float32(k)
	return Vec3{
		X: float64(kf * float32(v.X)),
		Y: float64(kf * float32(v.Y)),
		Z: float64(kf * float32(v.Z)),
	}
}
