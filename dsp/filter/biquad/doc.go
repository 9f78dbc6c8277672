// Package biquad provides biquad (second-order IIR) filter runtime
// primitives.
//
// A [Section] implements Direct Form I processing for a single
// second-order section defined by [Coefficients], with an explicit a0 term
// (not normalized to 1). Multiple sections can be cascaded via [Group] for
// higher-order filters. Both types are generic over the sample
// representation T, parameterized by a [github.com/hkasuga/knet-dsp/dsp/vecop.Ops]
// witness so the same code runs unmodified over plain float64 samples or a
// three-axis vector.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
