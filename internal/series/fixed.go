package series

import (
	"iter"
	"time"

	"github.com/vk/seriesgrid/internal/node"
	"github.com/vk/seriesgrid/internal/period"
)

// unbounded is the memo key of the infinite boundary sequence.
const unbounded = -1

// FixedInterval is the common base of series whose period boundaries are a
// reference date advanced by a fixed calendar interval. Embed it by value in
// a node type; it must not be copied after first use.
type FixedInterval struct {
	node.Base

	RefDate time.Time
	Freq    period.Interval

	periods Memo[int, time.Time]
}

// Boundary returns boundary i: the reference date advanced by i intervals.
func (f *FixedInterval) Boundary(i int) time.Time {
	return f.Freq.Advance(f.RefDate, i)
}

// Periods returns the infinite, strictly increasing boundary sequence
// RefDate, RefDate+Freq, RefDate+2*Freq, ... Each call starts a new
// enumerator over a cache shared by every enumerator of this node, so a
// boundary is computed at most once.
func (f *FixedInterval) Periods() iter.Seq[time.Time] {
	return f.periods.Get(unbounded, func() Step[time.Time] {
		i := 0
		return func() (time.Time, bool) {
			b := f.Boundary(i)
			i++
			return b, true
		}
	}).All()
}

// BoundedPeriods returns the first n boundaries followed by period.Horizon,
// so the last of n explicit periods extends indefinitely. It is cached under
// n, independently of Periods.
func (f *FixedInterval) BoundedPeriods(n int) iter.Seq[time.Time] {
	if n < 0 {
		n = 0
	}
	return f.periods.Get(n, func() Step[time.Time] {
		i := 0
		return func() (time.Time, bool) {
			switch {
			case i < n:
				b := f.Boundary(i)
				i++
				return b, true
			case i == n:
				i++
				return period.Horizon, true
			default:
				return time.Time{}, false
			}
		}
	}).All()
}

// CachedBoundaries reports how many boundaries of the unbounded sequence
// have been computed so far.
func (f *FixedInterval) CachedBoundaries() int {
	b, ok := f.periods.Peek(unbounded)
	if !ok {
		return 0
	}
	return b.Computed()
}

// BaseFields returns the reference date and interval as fields, for use at
// the start of an embedding type's Fields.
func (f *FixedInterval) BaseFields() []node.Field {
	return []node.Field{
		{Name: "ref_date", Value: f.RefDate},
		{Name: "freq", Value: f.Freq},
	}
}
