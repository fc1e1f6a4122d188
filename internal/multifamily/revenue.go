// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package multifamily

import (
	"iter"
	"time"

	"github.com/vk/seriesgrid/internal/daycount"
	"github.com/vk/seriesgrid/internal/node"
	"github.com/vk/seriesgrid/internal/period"
	"github.com/vk/seriesgrid/internal/series"
	"github.com/vk/seriesgrid/internal/timeline"
)

// AvgMonthlyRentPSF is the average monthly rent per square foot.
type AvgMonthlyRentPSF struct {
	series.FixedInterval

	InitialRentPSF float64 // monthly rent psf in the first period
	RentGrowthRate float64 // annual
}

func (r *AvgMonthlyRentPSF) Fields() []node.Field {
	return append(r.BaseFields(),
		node.Field{Name: "initial_rent_psf", Value: r.InitialRentPSF},
		node.Field{Name: "rent_growth_rate", Value: r.RentGrowthRate},
	)
}

// Call returns the rent psf over (from, to], weighted by time.
func (r *AvgMonthlyRentPSF) Call(from, to time.Time) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}
	weighted := growingAccrual(r.Periods(), from, to, r.InitialRentPSF, r.RentGrowthRate)
	return weighted / daycount.Monthly(from, to), nil
}

// AvgVacancyRate is the vacancy rate in force, one rate per period. The last
// rate carries forward indefinitely, and the first applies to any part of a
// window before the reference date.
type AvgVacancyRate struct {
	series.FixedInterval

	VacancyRates []float64
}

func (v *AvgVacancyRate) Fields() []node.Field {
	return append(v.BaseFields(), node.Field{Name: "vacancy_rates", Value: v.VacancyRates})
}

// Periods yields one boundary per rate and then period.Horizon.
func (v *AvgVacancyRate) Periods() iter.Seq[time.Time] {
	return v.BoundedPeriods(len(v.VacancyRates))
}

// Call returns the time-weighted vacancy rate over (from, to]. Without any
// rates it is zero.
func (v *AvgVacancyRate) Call(from, to time.Time) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}
	if len(v.VacancyRates) == 0 {
		return 0, nil
	}

	var weighted, total float64
	if from.Before(v.RefDate) {
		yf := overlap(from, v.RefDate, from, to)
		weighted += v.VacancyRates[0] * yf
		total += yf
	}

	i := 0
	for start, end := range period.Pairwise(v.Periods()) {
		if !start.Before(to) || i >= len(v.VacancyRates) {
			break
		}
		yf := overlap(start, end, from, to)
		weighted += v.VacancyRates[i] * yf
		total += yf
		i++
	}

	if total == 0 {
		return v.VacancyRates[len(v.VacancyRates)-1], nil
	}
	return weighted / total, nil
}

// GrossPotentialRent is the rent the building earns fully leased.
type GrossPotentialRent struct {
	series.FixedInterval

	SF                int
	AvgMonthlyRentPSF *AvgMonthlyRentPSF
}

func (g *GrossPotentialRent) Fields() []node.Field {
	return append(g.BaseFields(),
		node.Field{Name: "sf", Value: g.SF},
		node.Field{Name: "avg_monthly_rent_psf", Value: g.AvgMonthlyRentPSF},
	)
}

// Call returns the rent earned over (from, to].
func (g *GrossPotentialRent) Call(from, to time.Time) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}
	rentPSF, err := g.AvgMonthlyRentPSF.Call(from, to)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for start, end := range period.Pairwise(g.Periods()) {
		if !start.Before(to) {
			break
		}
		if end.After(from) {
			total += float64(g.SF) * rentPSF * overlap(start, end, from, to) * 12
		}
	}
	return total, nil
}

// EffectiveGrossIncome is gross potential rent less vacancy.
type EffectiveGrossIncome struct {
	series.FixedInterval

	AvgVacancyRate     *AvgVacancyRate
	GrossPotentialRent *GrossPotentialRent
}

func (e *EffectiveGrossIncome) Fields() []node.Field {
	return append(e.BaseFields(),
		node.Field{Name: "avg_vacancy_rate", Value: e.AvgVacancyRate},
		node.Field{Name: "gross_potential_rent", Value: e.GrossPotentialRent},
	)
}

// Vacancy returns the rent lost to vacancy over (from, to], as a negative
// amount. Rent and vacancy rate are multiplied on every sub-period where
// either of them changes.
func (e *EffectiveGrossIncome) Vacancy(from, to time.Time) (float64, error) {
	lost, err := timeline.Sumproduct(from, to, e.GrossPotentialRent, e.AvgVacancyRate)
	if err != nil {
		return 0, err
	}
	return -lost, nil
}

// Call returns gross potential rent plus vacancy over (from, to].
func (e *EffectiveGrossIncome) Call(from, to time.Time) (float64, error) {
	gpr, err := e.GrossPotentialRent.Call(from, to)
	if err != nil {
		return 0, err
	}
	vacancy, err := e.Vacancy(from, to)
	if err != nil {
		return 0, err
	}
	return gpr + vacancy, nil
}
