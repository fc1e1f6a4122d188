package period

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Interval is a calendar step made of years, months, weeks and days.
type Interval struct {
	Years  int
	Months int
	Weeks  int
	Days   int
}

// Validate reports whether the interval moves strictly forward.
func (iv Interval) Validate() error {
	if iv.Years < 0 || iv.Months < 0 || iv.Weeks < 0 || iv.Days < 0 {
		return errors.New("interval components must not be negative")
	}
	if iv.IsZero() {
		return errors.New("interval must be positive")
	}
	return nil
}

// IsZero reports whether every component is zero.
func (iv Interval) IsZero() bool {
	return iv == Interval{}
}

// Advance returns t moved forward by n times the interval.
//
// Years and months are applied first with the day clamped to the length of
// the target month (Jan 31 + 1 month is Feb 28 or 29), then weeks and days.
// The result is always computed from t, so Advance(t, n) never accumulates
// clamping from intermediate steps.
func (iv Interval) Advance(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	idx := y*12 + int(m) - 1 + (iv.Years*12+iv.Months)*n
	year, month := floorDiv(idx, 12), time.Month(floorMod(idx, 12)+1)

	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	moved := time.Date(year, month, d, hh, mm, ss, t.Nanosecond(), t.Location())
	return moved.AddDate(0, 0, (iv.Weeks*7+iv.Days)*n)
}

// String renders the interval compactly, e.g. "1y6m" or "2w".
func (iv Interval) String() string {
	if iv.IsZero() {
		return "0d"
	}
	var sb strings.Builder
	for _, part := range []struct {
		n    int
		unit string
	}{{iv.Years, "y"}, {iv.Months, "m"}, {iv.Weeks, "w"}, {iv.Days, "d"}} {
		if part.n != 0 {
			sb.WriteString(strconv.Itoa(part.n))
			sb.WriteString(part.unit)
		}
	}
	return sb.String()
}

// ParseInterval parses the form produced by String.
func ParseInterval(s string) (Interval, error) {
	var iv Interval
	rest := strings.TrimSpace(s)
	if rest == "" {
		return iv, errors.New("empty interval")
	}
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 || i == len(rest) {
			return Interval{}, errors.New("invalid interval " + strconv.Quote(s))
		}
		n, _ := strconv.Atoi(rest[:i])
		switch rest[i] {
		case 'y':
			iv.Years += n
		case 'm':
			iv.Months += n
		case 'w':
			iv.Weeks += n
		case 'd':
			iv.Days += n
		default:
			return Interval{}, errors.New("invalid interval unit in " + strconv.Quote(s))
		}
		rest = rest[i+1:]
	}
	return iv, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
