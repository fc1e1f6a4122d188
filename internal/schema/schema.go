package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// --- Document Structures ---

// Variable is a `variable "name" { ... }` block. Its value is available to
// model attributes as var.<name>.
type Variable struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type,optional"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
}

// Interval is a `freq` block. Absent and zero components are equivalent.
type Interval struct {
	Years  *int `hcl:"years,optional" json:"years,omitempty"`
	Months *int `hcl:"months,optional" json:"months,omitempty"`
	Weeks  *int `hcl:"weeks,optional" json:"weeks,omitempty"`
	Days   *int `hcl:"days,optional" json:"days,omitempty"`
}

// Model is a `model "name" { ... }` block describing one building.
type Model struct {
	Name                 string               `hcl:"name,label" json:"-"`
	RefDate              string               `hcl:"ref_date" json:"ref_date"`
	Freq                 Interval             `hcl:"freq,block" json:"freq"`
	EffectiveGrossIncome EffectiveGrossIncome `hcl:"effective_gross_income,block" json:"effective_gross_income"`
	TotalExpenses        TotalExpenses        `hcl:"total_expenses,block" json:"total_expenses"`
}

// --- Revenue ---

type EffectiveGrossIncome struct {
	RefDate            string             `hcl:"ref_date" json:"ref_date"`
	Freq               Interval           `hcl:"freq,block" json:"freq"`
	AvgVacancyRate     AvgVacancyRate     `hcl:"avg_vacancy_rate,block" json:"avg_vacancy_rate"`
	GrossPotentialRent GrossPotentialRent `hcl:"gross_potential_rent,block" json:"gross_potential_rent"`
}

type AvgVacancyRate struct {
	RefDate      string    `hcl:"ref_date" json:"ref_date"`
	Freq         Interval  `hcl:"freq,block" json:"freq"`
	VacancyRates []float64 `hcl:"vacancy_rates" json:"vacancy_rates"`
}

type GrossPotentialRent struct {
	RefDate           string            `hcl:"ref_date" json:"ref_date"`
	Freq              Interval          `hcl:"freq,block" json:"freq"`
	SF                int               `hcl:"sf" json:"sf"`
	AvgMonthlyRentPSF AvgMonthlyRentPSF `hcl:"avg_monthly_rent_psf,block" json:"avg_monthly_rent_psf"`
}

type AvgMonthlyRentPSF struct {
	RefDate        string   `hcl:"ref_date" json:"ref_date"`
	Freq           Interval `hcl:"freq,block" json:"freq"`
	InitialRentPSF float64  `hcl:"initial_rent_psf" json:"initial_rent_psf"`
	RentGrowthRate float64  `hcl:"rent_growth_rate" json:"rent_growth_rate"`
}

// --- Expenses ---

type TotalExpenses struct {
	RefDate             string              `hcl:"ref_date" json:"ref_date"`
	Freq                Interval            `hcl:"freq,block" json:"freq"`
	OperatingExpenses   OperatingExpenses   `hcl:"operating_expenses,block" json:"operating_expenses"`
	RealEstateTaxes     RealEstateTaxes     `hcl:"real_estate_taxes,block" json:"real_estate_taxes"`
	ReplacementReserves ReplacementReserves `hcl:"replacement_reserves,block" json:"replacement_reserves"`
	ManagementFees      *ManagementFees     `hcl:"management_fees,block" json:"management_fees,omitempty"`
}

type OperatingExpenses struct {
	RefDate        string   `hcl:"ref_date" json:"ref_date"`
	Freq           Interval `hcl:"freq,block" json:"freq"`
	Units          int      `hcl:"units" json:"units"`
	InitialOpexPU  float64  `hcl:"initial_opex_pu" json:"initial_opex_pu"`
	OpexGrowthRate float64  `hcl:"opex_growth_rate" json:"opex_growth_rate"`
}

type RealEstateTaxes struct {
	RefDate         string   `hcl:"ref_date" json:"ref_date"`
	Freq            Interval `hcl:"freq,block" json:"freq"`
	SF              int      `hcl:"sf" json:"sf"`
	MonthlyRETaxPSF float64  `hcl:"monthly_re_tax_psf" json:"monthly_re_tax_psf"`
	RETGrowthRate   float64  `hcl:"ret_growth_rate" json:"ret_growth_rate"`
}

type ReplacementReserves struct {
	RefDate          string   `hcl:"ref_date" json:"ref_date"`
	Freq             Interval `hcl:"freq,block" json:"freq"`
	Units            int      `hcl:"units" json:"units"`
	AnnualReservesPU float64  `hcl:"annual_reserves_pu" json:"annual_reserves_pu"`
	RRGrowthRate     float64  `hcl:"rr_growth_rate" json:"rr_growth_rate"`
}

type ManagementFees struct {
	Rate float64 `hcl:"rate" json:"rate"`
}
