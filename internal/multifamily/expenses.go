// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package multifamily

import (
	"fmt"
	"time"

	"github.com/vk/seriesgrid/internal/node"
	"github.com/vk/seriesgrid/internal/period"
	"github.com/vk/seriesgrid/internal/series"
)

// OperatingExpenses are the annual operating costs per unit.
type OperatingExpenses struct {
	series.FixedInterval

	Units              int
	InitialOpexPerUnit float64 // annual, per unit
	OpexGrowthRate     float64 // annual
}

func (o *OperatingExpenses) Fields() []node.Field {
	return append(o.BaseFields(),
		node.Field{Name: "units", Value: o.Units},
		node.Field{Name: "initial_opex_pu", Value: o.InitialOpexPerUnit},
		node.Field{Name: "opex_growth_rate", Value: o.OpexGrowthRate},
	)
}

func (o *OperatingExpenses) Call(from, to time.Time) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}
	annual := o.InitialOpexPerUnit * float64(o.Units)
	return growingAccrual(o.Periods(), from, to, annual, o.OpexGrowthRate), nil
}

// RealEstateTaxes are property taxes quoted monthly per square foot.
type RealEstateTaxes struct {
	series.FixedInterval

	SF            int
	MonthlyTaxPSF float64
	TaxGrowthRate float64 // annual
}

func (r *RealEstateTaxes) Fields() []node.Field {
	return append(r.BaseFields(),
		node.Field{Name: "sf", Value: r.SF},
		node.Field{Name: "monthly_re_tax_psf", Value: r.MonthlyTaxPSF},
		node.Field{Name: "ret_growth_rate", Value: r.TaxGrowthRate},
	)
}

func (r *RealEstateTaxes) Call(from, to time.Time) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}
	annual := r.MonthlyTaxPSF * float64(r.SF) * 12
	return growingAccrual(r.Periods(), from, to, annual, r.TaxGrowthRate), nil
}

// ReplacementReserves are annual capital reserves per unit.
type ReplacementReserves struct {
	series.FixedInterval

	Units                 int
	AnnualReservesPerUnit float64
	ReservesGrowthRate    float64 // annual
}

func (r *ReplacementReserves) Fields() []node.Field {
	return append(r.BaseFields(),
		node.Field{Name: "units", Value: r.Units},
		node.Field{Name: "annual_reserves_pu", Value: r.AnnualReservesPerUnit},
		node.Field{Name: "rr_growth_rate", Value: r.ReservesGrowthRate},
	)
}

func (r *ReplacementReserves) Call(from, to time.Time) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}
	annual := r.AnnualReservesPerUnit * float64(r.Units)
	return growingAccrual(r.Periods(), from, to, annual, r.ReservesGrowthRate), nil
}

// ManagementFees are charged as a share of effective gross income. The
// income is read from the NetOperatingIncome the fees belong to, so the node
// only evaluates inside a wired model.
type ManagementFees struct {
	node.Base

	Rate float64 // negative, e.g. -0.03 for 3% of income
}

func (m *ManagementFees) Fields() []node.Field {
	return []node.Field{{Name: "rate", Value: m.Rate}}
}

func (m *ManagementFees) Call(from, to time.Time) (float64, error) {
	if err := period.Check(from, to); err != nil {
		return 0, err
	}
	noi, err := node.FindAncestor[*NetOperatingIncome](m)
	if err != nil {
		return 0, fmt.Errorf("management fees need an enclosing net operating income: %w", err)
	}
	egi, err := noi.EffectiveGrossIncome.Call(from, to)
	if err != nil {
		return 0, err
	}
	return m.Rate * egi, nil
}

// TotalExpenses is the sum of every expense line.
type TotalExpenses struct {
	series.FixedInterval

	OperatingExpenses   *OperatingExpenses
	RealEstateTaxes     *RealEstateTaxes
	ReplacementReserves *ReplacementReserves
	ManagementFees      *ManagementFees
}

func (t *TotalExpenses) Fields() []node.Field {
	fields := append(t.BaseFields(),
		node.Field{Name: "operating_expenses", Value: t.OperatingExpenses},
		node.Field{Name: "real_estate_taxes", Value: t.RealEstateTaxes},
		node.Field{Name: "replacement_reserves", Value: t.ReplacementReserves},
	)
	if t.ManagementFees != nil {
		fields = append(fields, node.Field{Name: "management_fees", Value: t.ManagementFees})
	}
	return fields
}

func (t *TotalExpenses) Call(from, to time.Time) (float64, error) {
	lines := []interface {
		Call(from, to time.Time) (float64, error)
	}{t.OperatingExpenses, t.RealEstateTaxes, t.ReplacementReserves}
	if t.ManagementFees != nil {
		lines = append(lines, t.ManagementFees)
	}

	total := 0.0
	for _, line := range lines {
		v, err := line.Call(from, to)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
