package daycount

import (
	"fmt"
	"sort"
	"time"
)

// Convention computes the year fraction between two dates.
type Convention func(d1, d2 time.Time) float64

var conventions = map[string]Convention{
	"actual/360": Actual360,
	"30/360":     Thirty360,
	"monthly":    Monthly,
}

// Lookup returns the convention registered under name.
func Lookup(name string) (Convention, error) {
	c, ok := conventions[name]
	if !ok {
		return nil, fmt.Errorf("unknown day-count convention %q (known: %v)", name, Names())
	}
	return c, nil
}

// Names lists the registered convention names in sorted order.
func Names() []string {
	names := make([]string, 0, len(conventions))
	for name := range conventions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Actual360 returns the number of calendar days between d1 and d2 divided by 360.
func Actual360(d1, d2 time.Time) float64 {
	return float64(unixDay(d2)-unixDay(d1)) / 360
}

// Thirty360 returns the 30/360 year fraction between d1 and d2.
//
// The dates are put in order before the month-end rules are applied, and
// the result is negated when they were swapped.
func Thirty360(d1, d2 time.Time) float64 {
	sign := 1.0
	if unixDay(d1) > unixDay(d2) {
		d1, d2 = d2, d1
		sign = -1
	}

	y1, m1, day1 := d1.Date()
	y2, m2, day2 := d2.Date()
	feb1 := isLastOfFebruary(d1)
	feb2 := isLastOfFebruary(d2)

	if feb1 && feb2 {
		day2 = 30
	}
	if day2 == 31 && day1 >= 30 {
		day2 = 30
	}
	if day1 == 31 {
		day1 = 30
	}
	if feb1 {
		day1 = 30
	}

	start := day1 + int(m1)*30 + y1*360
	end := day2 + int(m2)*30 + y2*360
	return sign * float64(end-start) / 360
}

// Monthly returns the year fraction between d1 and d2 measured in calendar
// months.
//
// Each whole month between the two month indexes is 1/12. The remaining days
// of d1's month are added and the remaining days of d2's month subtracted,
// each as a share of that month's length. When d2 falls on the same day of
// month as d1, or both are month-ends, the result is exactly the month count
// over 12.
func Monthly(d1, d2 time.Time) float64 {
	sign := 1.0
	if unixDay(d1) > unixDay(d2) {
		d1, d2 = d2, d1
		sign = -1
	}

	n := monthIndex(d2) - monthIndex(d1)
	if isAnniversary(d1, d2) {
		return sign * float64(n) / 12
	}
	return sign * (float64(n) + monthFraction(d2) - monthFraction(d1)) / 12
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsMonthEnd reports whether d is the last day of its month.
func IsMonthEnd(d time.Time) bool {
	y, m, day := d.Date()
	return day == DaysInMonth(y, m)
}

func isLastOfFebruary(d time.Time) bool {
	return d.Month() == time.February && IsMonthEnd(d)
}

// unixDay counts days since 1970-01-01 for the calendar date of t.
// Durations overflow past ~292 years, so day numbers are used instead.
func unixDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func monthIndex(t time.Time) int {
	y, m, _ := t.Date()
	return y*12 + int(m) - 1
}

// monthFraction is the share of its month that t has completed.
func monthFraction(t time.Time) float64 {
	y, m, d := t.Date()
	return float64(d) / float64(DaysInMonth(y, m))
}

func isAnniversary(d1, d2 time.Time) bool {
	return d1.Day() == d2.Day() || (IsMonthEnd(d1) && IsMonthEnd(d2))
}
