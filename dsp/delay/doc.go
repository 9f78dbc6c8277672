// Package delay provides fixed-capacity FIFO buffering primitives: a plain
// circular [Ring] and the order-statistic [Bleeding] delay line built on
// top of it.
package delay
