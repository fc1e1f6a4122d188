// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

/*
Package multifamily is a pro-forma model of an apartment building.

# Purpose

Every type in this package is a node of the model tree. Each one can be
evaluated over any window (from, to] and composes its value from its
children:

	NetOperatingIncome
	├── EffectiveGrossIncome
	│   ├── AvgVacancyRate
	│   └── GrossPotentialRent
	│       └── AvgMonthlyRentPSF
	└── TotalExpenses
	    ├── OperatingExpenses
	    ├── RealEstateTaxes
	    ├── ReplacementReserves
	    └── ManagementFees (optional)

Amounts follow the cash-flow sign convention: revenue is positive and
expenses are negative. All year fractions use the monthly day count.

Build nodes bottom-up and pass each one through node.Wire so children can
reach their ancestors.
*/
package multifamily
