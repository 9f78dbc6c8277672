// Package lpgm computes the long-period ground motion response used to
// classify high-rise building hazard from strong-motion records. See
// New and Calculator.Update.
package lpgm
