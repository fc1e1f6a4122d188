package daycount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestActual360(t *testing.T) {
	testCases := []struct {
		name     string
		d1, d2   time.Time
		expected float64
	}{
		{"one month", date(2020, 1, 1), date(2020, 2, 1), 31.0 / 360},
		{"leap year", date(2020, 1, 1), date(2021, 1, 1), 366.0 / 360},
		{"reversed", date(2020, 2, 1), date(2020, 1, 1), -31.0 / 360},
		{"equal", date(2020, 5, 5), date(2020, 5, 5), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Actual360(tc.d1, tc.d2))
		})
	}
}

func TestActual360_FarHorizon(t *testing.T) {
	// A span longer than time.Duration can hold must still be counted in days.
	got := Actual360(date(2020, 1, 1), date(9999, 12, 31))
	assert.Greater(t, got, 7000.0)
}

func TestThirty360(t *testing.T) {
	testCases := []struct {
		name     string
		d1, d2   time.Time
		expected float64
	}{
		{"half year", date(2020, 1, 15), date(2020, 7, 15), 0.5},
		{"both end of february", date(2019, 2, 28), date(2020, 2, 29), 1.0},
		{"d1 on the 31st", date(2020, 1, 31), date(2020, 2, 29), 29.0 / 360},
		{"d2 on the 31st with d1 on the 30th", date(2020, 4, 30), date(2020, 5, 31), 30.0 / 360},
		{"d1 end of february", date(2020, 2, 29), date(2020, 3, 31), 31.0 / 360},
		{"reversed", date(2020, 7, 15), date(2020, 1, 15), -0.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Thirty360(tc.d1, tc.d2), 1e-12)
		})
	}
}

func TestMonthly_WholeMonths(t *testing.T) {
	testCases := []struct {
		name     string
		d1, d2   time.Time
		expected float64
	}{
		{"first of month", date(2020, 1, 1), date(2020, 2, 1), 1.0 / 12},
		{"same day of month", date(2020, 1, 15), date(2020, 2, 15), 1.0 / 12},
		{"both month end", date(2020, 1, 31), date(2020, 2, 29), 1.0 / 12},
		{"month end into longer month", date(2020, 2, 29), date(2020, 3, 31), 1.0 / 12},
		{"full year", date(2019, 12, 31), date(2020, 12, 31), 1.0},
		{"same day of month from a month end", date(2020, 4, 30), date(2020, 5, 30), 1.0 / 12},
		{"same day across february", date(2020, 1, 15), date(2020, 3, 15), 2.0 / 12},
		{"equal", date(2020, 3, 3), date(2020, 3, 3), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Monthly(tc.d1, tc.d2))
		})
	}
}

func TestMonthly_Stubs(t *testing.T) {
	testCases := []struct {
		name     string
		d1, d2   time.Time
		expected float64
	}{
		{"within one month", date(2020, 1, 1), date(2020, 1, 16), 15.0 / 31 / 12},
		{"mid month across february", date(2020, 1, 15), date(2020, 3, 10), (2 + 10.0/31 - 15.0/31) / 12},
		{"into the first of a month", date(2020, 1, 15), date(2020, 3, 1), (2 + 1.0/31 - 15.0/31) / 12},
		{"day 30 into month end of february", date(2021, 1, 30), date(2021, 2, 28), (1 + 1 - 30.0/31) / 12},
		{"month end into a short day", date(2020, 1, 31), date(2020, 3, 30), (2 + 30.0/31 - 1) / 12},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Monthly(tc.d1, tc.d2), 1e-12)
		})
	}
}

func TestConventions_Antisymmetric(t *testing.T) {
	dates := []time.Time{
		date(2019, 12, 31), date(2020, 1, 1), date(2020, 1, 15), date(2020, 1, 31),
		date(2020, 2, 28), date(2020, 2, 29), date(2020, 3, 31), date(2021, 2, 28),
		date(2024, 7, 4),
	}

	for _, name := range Names() {
		conv, err := Lookup(name)
		require.NoError(t, err)

		t.Run(name, func(t *testing.T) {
			for _, a := range dates {
				assert.Zero(t, conv(a, a), "%s(%s, %s)", name, a, a)
				for _, b := range dates {
					assert.Equal(t, -conv(a, b), conv(b, a), "%s(%s, %s)", name, a, b)
				}
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("actual/365")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actual/365")
}

func TestMonthEndHelpers(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2020, time.February))
	assert.Equal(t, 28, DaysInMonth(2021, time.February))
	assert.True(t, IsMonthEnd(date(2020, 4, 30)))
	assert.False(t, IsMonthEnd(date(2020, 5, 30)))
}
