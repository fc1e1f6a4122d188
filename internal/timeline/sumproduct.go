package timeline

import (
	"iter"
	"slices"
	"time"

	"github.com/vk/seriesgrid/internal/period"
)

// Series is a value over any window that also publishes the boundaries at
// which its value changes.
type Series interface {
	Periods() iter.Seq[time.Time]
	Call(from, to time.Time) (float64, error)
}

// Breakpoints returns the merged boundaries of every series together with
// from and to, restricted to [from, to].
func Breakpoints(from, to time.Time, series ...Series) []time.Time {
	seqs := make([]iter.Seq[time.Time], 0, len(series)+1)
	seqs = append(seqs, slices.Values([]time.Time{from, to}))
	for _, s := range series {
		seqs = append(seqs, s.Periods())
	}
	return slices.Collect(Window(MergeTimes(seqs...), from, to))
}

// Sumproduct splits (from, to] at every boundary of every series and sums,
// over the resulting sub-periods, the product of all series evaluated on
// that sub-period.
func Sumproduct(from, to time.Time, series ...Series) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}

	total := 0.0
	for start, end := range period.Pairwise(slices.Values(Breakpoints(from, to, series...))) {
		if !end.After(start) {
			continue
		}
		product := 1.0
		for _, s := range series {
			v, err := s.Call(start, end)
			if err != nil {
				return 0, err
			}
			product *= v
		}
		total += product
	}
	return total, nil
}
