// Package shindo wires the generic biquad cascade in dsp/filter/biquad to
// a single fixed preset: the six-section JMA weighting filter used to
// compute realtime seismic intensity from a ground-acceleration stream.
// Unlike dsp/filter/design, this package never designs an arbitrary
// filter shape; its coefficient formulas are specific to this one
// standard and are not meant to be reused for anything else.
package shindo
