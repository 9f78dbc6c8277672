package delay

import (
	"cmp"
	"fmt"
	"sort"
)

// Bleeding is an order-statistic delay line: it holds the last D samples
// added and reports the K-th largest of them (the "bleeding" value slowly
// drains toward the current extreme as new samples displace old ones). It
// is backed by a fixed-capacity FIFO plus a synchronized ascending index,
// so ComputedValue never re-sorts.
type Bleeding[T cmp.Ordered] struct {
	ring   *Ring[T]
	bleed  int
	def    T
	sorted []T
}

// NewBleeding returns a bleeding delay line holding up to duration samples,
// reporting the bleedDuration-th largest of them (1 = the running maximum).
// def is returned until at least bleedDuration samples have been added.
func NewBleeding[T cmp.Ordered](duration, bleedDuration int, def T) (*Bleeding[T], error) {
	ring, err := NewRing[T](duration)
	if err != nil {
		return nil, err
	}
	if bleedDuration <= 0 || bleedDuration > duration {
		return nil, fmt.Errorf("delay: bleed duration must be in (0, %d]: %d", duration, bleedDuration)
	}
	return &Bleeding[T]{
		ring:   ring,
		bleed:  bleedDuration,
		def:    def,
		sorted: make([]T, 0, duration),
	}, nil
}

// Add pushes v, evicting the oldest sample once the line is full, and
// keeps the sorted index in lockstep with the FIFO's contents.
func (b *Bleeding[T]) Add(v T) {
	if evicted, ok := b.ring.Push(v); ok {
		b.removeSorted(evicted)
	}
	b.insertSorted(v)
}

// ComputedValue returns the K-th largest value currently held, or def if
// fewer than K samples have been added yet.
func (b *Bleeding[T]) ComputedValue() T {
	n := b.ring.Len()
	if n < b.bleed {
		return b.def
	}
	return b.sorted[n-b.bleed]
}

// Len returns the number of samples currently held.
func (b *Bleeding[T]) Len() int { return b.ring.Len() }

// Reset empties the delay line.
func (b *Bleeding[T]) Reset() {
	b.ring.Reset()
	b.sorted = b.sorted[:0]
}

func (b *Bleeding[T]) insertSorted(v T) {
	idx := sort.Search(len(b.sorted), func(i int) bool { return b.sorted[i] > v })
	b.sorted = append(b.sorted, v)
	copy(b.sorted[idx+1:], b.sorted[idx:])
	b.sorted[idx] = v
}

// removeSorted deletes one occurrence of v, the oldest-inserted among any
// duplicates it might have, by removing at the low end of its equal-value
// run: insertSorted always places a new duplicate after existing equal
// values (sort.Search finds the first element strictly greater than v), so
// the leftmost occurrence in that run is always the oldest still present.
func (b *Bleeding[T]) removeSorted(v T) {
	idx := sort.Search(len(b.sorted), func(i int) bool { return b.sorted[i] >= v })
	b.sorted = append(b.sorted[:idx], b.sorted[idx+1:]...)
}
