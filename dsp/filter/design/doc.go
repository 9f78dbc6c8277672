// Package design provides IIR coefficient design.
//
// Unlike a general-purpose filter-design library, this package designs
// exactly the filters the seismic pipeline needs: a second-order
// Butterworth highpass, used both as the LPGM prefilter and, with a
// different cutoff, wherever else a fixed 2nd-order highpass response is
// required. Higher-order and other filter families are out of scope.
package design
