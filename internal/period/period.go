//
// Package period holds the calendar primitives shared by every series: the
// Period window, the calendar Interval used to step between boundaries, and
// helpers to build schedules of consecutive periods.
package period

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// DateLayout is the textual form of a date in documents and exports.
const DateLayout = "2006-01-02"

// ErrInvalidPeriodWindow is returned when a window does not satisfy from < to.
var ErrInvalidPeriodWindow = errors.New("invalid period window")

// Horizon is the latest representable boundary. Finite series append it to
// extend their last value indefinitely.
var Horizon = Date(9999, time.December, 31)

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Period is the half-open window (Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// New returns the period (start, end], or ErrInvalidPeriodWindow if end is
// not after start.
func New(start, end time.Time) (Period, error) {
	if err := Check(start, end); err != nil {
		return Period{}, err
	}
	return Period{Start: start, End: end}, nil
}

// Check validates that from < to.
func Check(from, to time.Time) error {
	if !to.After(from) {
		return fmt.Errorf("%w: to (%s) must be after from (%s)", ErrInvalidPeriodWindow, FormatDate(to), FormatDate(from))
	}
	return nil
}

// String renders the period as "start..end".
func (p Period) String() string {
	return FormatDate(p.Start) + ".." + FormatDate(p.End)
}

// Pairwise yields consecutive pairs (b0, b1), (b1, b2), ... of seq.
func Pairwise(seq iter.Seq[time.Time]) iter.Seq2[time.Time, time.Time] {
	return func(yield func(time.Time, time.Time) bool) {
		var prev time.Time
		first := true
		for t := range seq {
			if !first && !yield(prev, t) {
				return
			}
			prev, first = t, false
		}
	}
}

// Schedule returns n consecutive periods whose boundaries are start advanced
// by every multiple of step.
func Schedule(start time.Time, step Interval, n int) ([]Period, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("period count must not be negative, got %d", n)
	}

	periods := make([]Period, 0, n)
	for i := range n {
		periods = append(periods, Period{Start: step.Advance(start, i), End: step.Advance(start, i+1)})
	}
	return periods, nil
}

// FromBoundaries pairs consecutive boundaries into periods.
func FromBoundaries(boundaries []time.Time) ([]Period, error) {
	var periods []Period
	for i := 1; i < len(boundaries); i++ {
		p, err := New(boundaries[i-1], boundaries[i])
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}
