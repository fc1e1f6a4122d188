package loader

import (
	"errors"
	"fmt"

	"github.com/vk/seriesgrid/internal/fieldpath"
	"github.com/vk/seriesgrid/internal/multifamily"
	"github.com/vk/seriesgrid/internal/node"
	"github.com/vk/seriesgrid/internal/period"
	"github.com/vk/seriesgrid/internal/schema"
	"github.com/vk/seriesgrid/internal/series"
)

// ErrInvalidModel is returned when a decoded model fails validation.
var ErrInvalidModel = errors.New("invalid model")

// builder translates one schema.Model, collecting every validation problem
// instead of stopping at the first.
type builder struct {
	errs []error
}

func (b *builder) fail(at fieldpath.Path, format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf("%w: %s: %s", ErrInvalidModel, at, fmt.Sprintf(format, args...)))
}

func (b *builder) fixed(at fieldpath.Path, refDate string, freq schema.Interval) series.FixedInterval {
	ref, err := period.ParseDate(refDate)
	if err != nil {
		b.fail(at.Child(fieldpath.Field("ref_date")), "%v", err)
	}
	iv := period.Interval{Years: deref(freq.Years), Months: deref(freq.Months), Weeks: deref(freq.Weeks), Days: deref(freq.Days)}
	if err := iv.Validate(); err != nil {
		b.fail(at.Child(fieldpath.Field("freq")), "%v", err)
	}
	return series.FixedInterval{RefDate: ref, Freq: iv}
}

func (b *builder) count(at fieldpath.Path, name string, v int) int {
	if v < 0 {
		b.fail(at.Child(fieldpath.Field(name)), "must not be negative, got %d", v)
	}
	return v
}

// Build validates m and builds its node tree. Every node is wired to its
// parent before Build returns.
func Build(m *schema.Model) (*multifamily.NetOperatingIncome, error) {
	var b builder
	at := fieldpath.Root

	egi := b.effectiveGrossIncome(at.Child(fieldpath.Field("effective_gross_income")), &m.EffectiveGrossIncome)
	expenses := b.totalExpenses(at.Child(fieldpath.Field("total_expenses")), &m.TotalExpenses)
	noi := node.Wire(&multifamily.NetOperatingIncome{
		FixedInterval:        b.fixed(at, m.RefDate, m.Freq),
		EffectiveGrossIncome: egi,
		TotalExpenses:        expenses,
	})

	if len(b.errs) > 0 {
		return nil, fmt.Errorf("model %q: %w", m.Name, errors.Join(b.errs...))
	}
	return noi, nil
}

func (b *builder) effectiveGrossIncome(at fieldpath.Path, s *schema.EffectiveGrossIncome) *multifamily.EffectiveGrossIncome {
	vacancyAt := at.Child(fieldpath.Field("avg_vacancy_rate"))
	vs := &s.AvgVacancyRate
	if len(vs.VacancyRates) == 0 {
		b.fail(vacancyAt.Child(fieldpath.Field("vacancy_rates")), "at least one rate is required")
	}
	vacancy := node.Wire(&multifamily.AvgVacancyRate{
		FixedInterval: b.fixed(vacancyAt, vs.RefDate, vs.Freq),
		VacancyRates:  vs.VacancyRates,
	})

	gprAt := at.Child(fieldpath.Field("gross_potential_rent"))
	gs := &s.GrossPotentialRent
	rentAt := gprAt.Child(fieldpath.Field("avg_monthly_rent_psf"))
	rs := &gs.AvgMonthlyRentPSF
	rent := node.Wire(&multifamily.AvgMonthlyRentPSF{
		FixedInterval:  b.fixed(rentAt, rs.RefDate, rs.Freq),
		InitialRentPSF: rs.InitialRentPSF,
		RentGrowthRate: rs.RentGrowthRate,
	})
	gpr := node.Wire(&multifamily.GrossPotentialRent{
		FixedInterval:     b.fixed(gprAt, gs.RefDate, gs.Freq),
		SF:                b.count(gprAt, "sf", gs.SF),
		AvgMonthlyRentPSF: rent,
	})

	return node.Wire(&multifamily.EffectiveGrossIncome{
		FixedInterval:      b.fixed(at, s.RefDate, s.Freq),
		AvgVacancyRate:     vacancy,
		GrossPotentialRent: gpr,
	})
}

func (b *builder) totalExpenses(at fieldpath.Path, s *schema.TotalExpenses) *multifamily.TotalExpenses {
	opexAt := at.Child(fieldpath.Field("operating_expenses"))
	ox := &s.OperatingExpenses
	opex := node.Wire(&multifamily.OperatingExpenses{
		FixedInterval:      b.fixed(opexAt, ox.RefDate, ox.Freq),
		Units:              b.count(opexAt, "units", ox.Units),
		InitialOpexPerUnit: ox.InitialOpexPU,
		OpexGrowthRate:     ox.OpexGrowthRate,
	})

	taxAt := at.Child(fieldpath.Field("real_estate_taxes"))
	ts := &s.RealEstateTaxes
	taxes := node.Wire(&multifamily.RealEstateTaxes{
		FixedInterval: b.fixed(taxAt, ts.RefDate, ts.Freq),
		SF:            b.count(taxAt, "sf", ts.SF),
		MonthlyTaxPSF: ts.MonthlyRETaxPSF,
		TaxGrowthRate: ts.RETGrowthRate,
	})

	rrAt := at.Child(fieldpath.Field("replacement_reserves"))
	rs := &s.ReplacementReserves
	reserves := node.Wire(&multifamily.ReplacementReserves{
		FixedInterval:         b.fixed(rrAt, rs.RefDate, rs.Freq),
		Units:                 b.count(rrAt, "units", rs.Units),
		AnnualReservesPerUnit: rs.AnnualReservesPU,
		ReservesGrowthRate:    rs.RRGrowthRate,
	})

	var fees *multifamily.ManagementFees
	if s.ManagementFees != nil {
		fees = node.Wire(&multifamily.ManagementFees{Rate: s.ManagementFees.Rate})
	}

	return node.Wire(&multifamily.TotalExpenses{
		FixedInterval:       b.fixed(at, s.RefDate, s.Freq),
		OperatingExpenses:   opex,
		RealEstateTaxes:     taxes,
		ReplacementReserves: reserves,
		ManagementFees:      fees,
	})
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
