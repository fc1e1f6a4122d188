// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package multifamily

import (
	"time"

	"github.com/vk/seriesgrid/internal/node"
	"github.com/vk/seriesgrid/internal/period"
	"github.com/vk/seriesgrid/internal/series"
)

// NetOperatingIncome is effective gross income plus total expenses.
type NetOperatingIncome struct {
	series.FixedInterval

	EffectiveGrossIncome *EffectiveGrossIncome
	TotalExpenses        *TotalExpenses
}

func (n *NetOperatingIncome) Fields() []node.Field {
	return append(n.BaseFields(),
		node.Field{Name: "effective_gross_income", Value: n.EffectiveGrossIncome},
		node.Field{Name: "total_expenses", Value: n.TotalExpenses},
	)
}

func (n *NetOperatingIncome) Call(from, to time.Time) (float64, error) {
	egi, err := n.EffectiveGrossIncome.Call(from, to)
	if err != nil {
		return 0, err
	}
	expenses, err := n.TotalExpenses.Call(from, to)
	if err != nil {
		return 0, err
	}
	return egi + expenses, nil
}

// Example closing date and building size.
var (
	ExampleClosingDate = period.Date(2019, time.December, 31)
	ExampleSF          = 180_000
	ExampleUnits       = 230
)

// NewExample builds the reference model: a 230-unit, 180,000 sf building
// closing at the end of 2019.
func NewExample() *NetOperatingIncome {
	monthly := period.Interval{Months: 1}
	semiannual := period.Interval{Months: 6}
	annual := period.Interval{Years: 1}
	base := func(freq period.Interval) series.FixedInterval {
		return series.FixedInterval{RefDate: ExampleClosingDate, Freq: freq}
	}

	rent := node.Wire(&AvgMonthlyRentPSF{
		FixedInterval:  base(monthly),
		InitialRentPSF: 3.16,
		RentGrowthRate: 0.02,
	})
	gpr := node.Wire(&GrossPotentialRent{
		FixedInterval:     base(monthly),
		SF:                ExampleSF,
		AvgMonthlyRentPSF: rent,
	})
	vacancy := node.Wire(&AvgVacancyRate{
		FixedInterval: base(semiannual),
		VacancyRates:  []float64{0.1, 0.075, 0.05},
	})
	egi := node.Wire(&EffectiveGrossIncome{
		FixedInterval:      base(monthly),
		AvgVacancyRate:     vacancy,
		GrossPotentialRent: gpr,
	})

	expenses := node.Wire(&TotalExpenses{
		FixedInterval: base(annual),
		OperatingExpenses: node.Wire(&OperatingExpenses{
			FixedInterval:      base(monthly),
			Units:              ExampleUnits,
			InitialOpexPerUnit: -3_300,
			OpexGrowthRate:     0.02,
		}),
		RealEstateTaxes: node.Wire(&RealEstateTaxes{
			FixedInterval: base(semiannual),
			SF:            ExampleSF,
			MonthlyTaxPSF: -0.3,
			TaxGrowthRate: 0.02,
		}),
		ReplacementReserves: node.Wire(&ReplacementReserves{
			FixedInterval:         base(monthly),
			Units:                 ExampleUnits,
			AnnualReservesPerUnit: -300,
			ReservesGrowthRate:    0.02,
		}),
	})

	return node.Wire(&NetOperatingIncome{
		FixedInterval:        base(monthly),
		EffectiveGrossIncome: egi,
		TotalExpenses:        expenses,
	})
}
