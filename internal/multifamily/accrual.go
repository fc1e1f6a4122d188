// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package multifamily

import (
	"iter"
	"time"

	"github.com/vk/seriesgrid/internal/daycount"
	"github.com/vk/seriesgrid/internal/period"
)

// overlap is the monthly year fraction of (start, end] that falls inside
// (from, to]; zero when they do not overlap.
func overlap(start, end, from, to time.Time) float64 {
	return max(daycount.Monthly(later(start, from), earlier(end, to)), 0)
}

// growingAccrual accrues an annual amount over (from, to]. The amount grows
// at the start of every period after the first by growth times the
// period's year fraction.
func growingAccrual(boundaries iter.Seq[time.Time], from, to time.Time, annual, growth float64) float64 {
	total := 0.0
	i := 0
	for start, end := range period.Pairwise(boundaries) {
		if !start.Before(to) {
			break
		}
		if i > 0 {
			annual *= 1 + growth*daycount.Monthly(start, end)
		}
		total += annual * overlap(start, end, from, to)
		i++
	}
	return total
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
