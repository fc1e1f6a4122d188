package loader

import (
	"github.com/vk/seriesgrid/internal/multifamily"
	"github.com/vk/seriesgrid/internal/period"
	"github.com/vk/seriesgrid/internal/schema"
	"github.com/vk/seriesgrid/internal/series"
)

// ToSchema converts a model tree back into its document form. Zero interval
// components are left out.
func ToSchema(name string, noi *multifamily.NetOperatingIncome) *schema.Model {
	egi := noi.EffectiveGrossIncome
	gpr := egi.GrossPotentialRent
	rent := gpr.AvgMonthlyRentPSF
	vacancy := egi.AvgVacancyRate
	te := noi.TotalExpenses

	m := &schema.Model{
		Name:    name,
		RefDate: refDate(&noi.FixedInterval),
		Freq:    interval(noi.Freq),
		EffectiveGrossIncome: schema.EffectiveGrossIncome{
			RefDate: refDate(&egi.FixedInterval),
			Freq:    interval(egi.Freq),
			AvgVacancyRate: schema.AvgVacancyRate{
				RefDate:      refDate(&vacancy.FixedInterval),
				Freq:         interval(vacancy.Freq),
				VacancyRates: append([]float64{}, vacancy.VacancyRates...),
			},
			GrossPotentialRent: schema.GrossPotentialRent{
				RefDate: refDate(&gpr.FixedInterval),
				Freq:    interval(gpr.Freq),
				SF:      gpr.SF,
				AvgMonthlyRentPSF: schema.AvgMonthlyRentPSF{
					RefDate:        refDate(&rent.FixedInterval),
					Freq:           interval(rent.Freq),
					InitialRentPSF: rent.InitialRentPSF,
					RentGrowthRate: rent.RentGrowthRate,
				},
			},
		},
		TotalExpenses: schema.TotalExpenses{
			RefDate: refDate(&te.FixedInterval),
			Freq:    interval(te.Freq),
			OperatingExpenses: schema.OperatingExpenses{
				RefDate:        refDate(&te.OperatingExpenses.FixedInterval),
				Freq:           interval(te.OperatingExpenses.Freq),
				Units:          te.OperatingExpenses.Units,
				InitialOpexPU:  te.OperatingExpenses.InitialOpexPerUnit,
				OpexGrowthRate: te.OperatingExpenses.OpexGrowthRate,
			},
			RealEstateTaxes: schema.RealEstateTaxes{
				RefDate:         refDate(&te.RealEstateTaxes.FixedInterval),
				Freq:            interval(te.RealEstateTaxes.Freq),
				SF:              te.RealEstateTaxes.SF,
				MonthlyRETaxPSF: te.RealEstateTaxes.MonthlyTaxPSF,
				RETGrowthRate:   te.RealEstateTaxes.TaxGrowthRate,
			},
			ReplacementReserves: schema.ReplacementReserves{
				RefDate:          refDate(&te.ReplacementReserves.FixedInterval),
				Freq:             interval(te.ReplacementReserves.Freq),
				Units:            te.ReplacementReserves.Units,
				AnnualReservesPU: te.ReplacementReserves.AnnualReservesPerUnit,
				RRGrowthRate:     te.ReplacementReserves.ReservesGrowthRate,
			},
		},
	}
	if te.ManagementFees != nil {
		m.TotalExpenses.ManagementFees = &schema.ManagementFees{Rate: te.ManagementFees.Rate}
	}
	return m
}

func refDate(f *series.FixedInterval) string {
	return period.FormatDate(f.RefDate)
}

func interval(iv period.Interval) schema.Interval {
	var s schema.Interval
	s.Years = nonZero(iv.Years)
	s.Months = nonZero(iv.Months)
	s.Weeks = nonZero(iv.Weeks)
	s.Days = nonZero(iv.Days)
	return s
}

func nonZero(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
