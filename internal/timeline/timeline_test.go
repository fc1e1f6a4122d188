package timeline

import (
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/seriesgrid/internal/period"
	"github.com/vk/seriesgrid/internal/series"
)

func naturals(step int, stopped *bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		defer func() {
			if stopped != nil {
				*stopped = true
			}
		}()
		for i := 0; ; i += step {
			if !yield(i) {
				return
			}
		}
	}
}

func TestMerge_Finite(t *testing.T) {
	testCases := []struct {
		name     string
		inputs   [][]int
		expected []int
	}{
		{"interleaved with duplicates", [][]int{{1, 3, 5}, {2, 3, 6}}, []int{1, 2, 3, 5, 6}},
		{"duplicates within one input", [][]int{{1, 1, 2}, {2}}, []int{1, 2}},
		{"one empty input", [][]int{{}, {4, 7}}, []int{4, 7}},
		{"no inputs", nil, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var seqs []iter.Seq[int]
			for _, in := range tc.inputs {
				seqs = append(seqs, slices.Values(in))
			}
			assert.Equal(t, tc.expected, slices.Collect(Merge(seqs...)))
		})
	}
}

func TestMerge_InfiniteInputsAreStopped(t *testing.T) {
	var stoppedA, stoppedB bool

	var got []int
	for v := range Merge(naturals(2, &stoppedA), naturals(3, &stoppedB)) {
		if v > 9 {
			break
		}
		got = append(got, v)
	}

	assert.Equal(t, []int{0, 2, 3, 4, 6, 8, 9}, got)
	assert.True(t, stoppedA, "every pulled input must be released")
	assert.True(t, stoppedB, "every pulled input must be released")
}

func TestWindow(t *testing.T) {
	bounds := []time.Time{
		period.Date(2020, 1, 1), period.Date(2020, 2, 1), period.Date(2020, 3, 1), period.Date(2020, 4, 1),
	}
	got := slices.Collect(Window(slices.Values(bounds), period.Date(2020, 1, 15), period.Date(2020, 3, 1)))
	assert.Equal(t, []time.Time{period.Date(2020, 2, 1), period.Date(2020, 3, 1)}, got)
}

type testSeries struct {
	series.FixedInterval
	value func(from, to time.Time) float64
}

func (s *testSeries) Call(from, to time.Time) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}
	return s.value(from, to), nil
}

func days(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func newSeries(ref time.Time, freq period.Interval, value func(from, to time.Time) float64) *testSeries {
	return &testSeries{
		FixedInterval: series.FixedInterval{RefDate: ref, Freq: freq},
		value:         value,
	}
}

func TestBreakpoints_AlignsEveryBoundary(t *testing.T) {
	// --- Arrange ---
	start, end := period.Date(2021, 1, 1), period.Date(2022, 1, 1)
	bimonthly := newSeries(start, period.Interval{Months: 2}, days)
	halfYear := newSeries(start, period.Interval{Months: 6}, func(time.Time, time.Time) float64 { return 1 })

	// --- Act ---
	got := Breakpoints(start, end, bimonthly, halfYear)

	// --- Assert ---
	expected := []time.Time{
		period.Date(2021, 1, 1), period.Date(2021, 3, 1), period.Date(2021, 5, 1),
		period.Date(2021, 7, 1), period.Date(2021, 9, 1), period.Date(2021, 11, 1),
		period.Date(2022, 1, 1),
	}
	assert.Equal(t, expected, got)
}

func TestBreakpoints_MonthlyAndHalfYear(t *testing.T) {
	start, end := period.Date(2021, 1, 1), period.Date(2022, 1, 1)
	monthly := newSeries(start, period.Interval{Months: 1}, days)
	halfYear := newSeries(start, period.Interval{Months: 6}, days)

	got := Breakpoints(start, end, monthly, halfYear)
	require.Len(t, got, 13)
	assert.Equal(t, start, got[0])
	assert.Equal(t, end, got[12])
}

func TestBreakpoints_WindowInsideSeries(t *testing.T) {
	s := newSeries(period.Date(2020, 1, 1), period.Interval{Months: 1}, days)

	got := Breakpoints(period.Date(2020, 1, 15), period.Date(2020, 3, 10), s)

	expected := []time.Time{
		period.Date(2020, 1, 15), period.Date(2020, 2, 1), period.Date(2020, 3, 1), period.Date(2020, 3, 10),
	}
	assert.Equal(t, expected, got)
}

func TestSumproduct(t *testing.T) {
	start, end := period.Date(2021, 1, 1), period.Date(2022, 1, 1)

	t.Run("product with a constant", func(t *testing.T) {
		daily := newSeries(start, period.Interval{Months: 1}, days)
		two := newSeries(start, period.Interval{Months: 6}, func(time.Time, time.Time) float64 { return 2 })

		got, err := Sumproduct(start, end, daily, two)
		require.NoError(t, err)
		assert.Equal(t, 730.0, got)
	})

	t.Run("value changes at a boundary of the other series", func(t *testing.T) {
		daily := newSeries(start, period.Interval{Months: 1}, days)
		step := newSeries(start, period.Interval{Months: 6}, func(from, _ time.Time) float64 {
			if from.Before(period.Date(2021, 7, 1)) {
				return 1
			}
			return 10
		})

		got, err := Sumproduct(start, end, daily, step)
		require.NoError(t, err)
		// 181 days in the first half at 1, 184 days in the second at 10.
		assert.Equal(t, 181.0+1840.0, got)
	})

	t.Run("invalid window", func(t *testing.T) {
		s := newSeries(start, period.Interval{Months: 1}, days)
		_, err := Sumproduct(end, start, s)
		assert.ErrorIs(t, err, period.ErrInvalidPeriodWindow)

		_, err = Sumproduct(start, start, s)
		assert.ErrorIs(t, err, period.ErrInvalidPeriodWindow)
	})
}
