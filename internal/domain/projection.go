package domain

import (
	"fmt"
	"math"
)

// Default policy values applied when a caller does not provide them explicitly
const (
	DefaultLeverageRatio    = 60.0 // % of entry valuation financed with debt
	DefaultDebtInterestRate = 6.0  // %/yr, interest-only
	DefaultCapRateSpread    = 0.5  // percentage points added to the exit cap to get the entry cap

	MinHoldingPeriodYears = 1
	MaxHoldingPeriodYears = 15
)

// ProjectionInputs represents the operating and financing assumptions of a simulated asset.
// All rates are percentages (6.5 means 6.5%), amounts are in the asset currency.
type ProjectionInputs struct {
	IncomeGrowthRate   float64 `json:"incomeGrowthRate" yaml:"income_growth_rate"`
	VacancyRate        float64 `json:"vacancyRate" yaml:"vacancy_rate"`
	OpexPercent        float64 `json:"opexPercent" yaml:"opex_percent"` // % of effective gross income
	ExitCapRate        float64 `json:"exitCapRate" yaml:"exit_cap_rate"`
	HoldingPeriodYears int     `json:"holdingPeriodYears" yaml:"holding_period_years"`
	GrossRevenueBase   float64 `json:"grossRevenueBase" yaml:"gross_revenue_base"`
	SponsorPromote     float64 `json:"sponsorPromote" yaml:"sponsor_promote"`

	// Financing policy. Zero is a legal value for all three (all-equity, free debt, no spread),
	// so defaults are applied by DefaultProjectionInputs and the transport, never implicitly.
	LeverageRatio    float64 `json:"leverageRatio" yaml:"leverage_ratio"`
	DebtInterestRate float64 `json:"debtInterestRate" yaml:"debt_interest_rate"`
	CapRateSpread    float64 `json:"capRateSpread" yaml:"cap_rate_spread"`
}

// DefaultProjectionInputs returns the simulator's default asset preset
func DefaultProjectionInputs() ProjectionInputs {
	return ProjectionInputs{
		IncomeGrowthRate:   3,
		VacancyRate:        5,
		OpexPercent:        35,
		ExitCapRate:        6,
		HoldingPeriodYears: 5,
		GrossRevenueBase:   500000,
		SponsorPromote:     20,
		LeverageRatio:      DefaultLeverageRatio,
		DebtInterestRate:   DefaultDebtInterestRate,
		CapRateSpread:      DefaultCapRateSpread,
	}
}

// Validate ensures the inputs can be fed to the projection engine
// Returns an *InvalidInputError naming the first offending field
func (p ProjectionInputs) Validate() error {
	percentFields := []struct {
		name  string
		value float64
	}{
		{"incomeGrowthRate", p.IncomeGrowthRate},
		{"vacancyRate", p.VacancyRate},
		{"opexPercent", p.OpexPercent},
		{"sponsorPromote", p.SponsorPromote},
		{"leverageRatio", p.LeverageRatio},
		{"debtInterestRate", p.DebtInterestRate},
	}
	for _, f := range percentFields {
		if err := checkPercent(f.name, f.value); err != nil {
			return err
		}
	}

	if err := checkPercent("exitCapRate", p.ExitCapRate); err != nil {
		return err
	}
	if p.ExitCapRate == 0 {
		return &InvalidInputError{Field: "exitCapRate", Reason: "must be positive"}
	}

	if !isFinite(p.CapRateSpread) {
		return &InvalidInputError{Field: "capRateSpread", Reason: "must be a finite number"}
	}
	if p.CapRateSpread < 0 {
		return &InvalidInputError{Field: "capRateSpread", Reason: "must not be negative"}
	}

	if !isFinite(p.GrossRevenueBase) {
		return &InvalidInputError{Field: "grossRevenueBase", Reason: "must be a finite number"}
	}
	if p.GrossRevenueBase < 0 {
		return &InvalidInputError{Field: "grossRevenueBase", Reason: "must not be negative"}
	}

	if p.HoldingPeriodYears < MinHoldingPeriodYears || p.HoldingPeriodYears > MaxHoldingPeriodYears {
		return &InvalidInputError{
			Field:  "holdingPeriodYears",
			Reason: fmt.Sprintf("must be between %d and %d", MinHoldingPeriodYears, MaxHoldingPeriodYears),
		}
	}

	return nil
}

func checkPercent(field string, v float64) error {
	if !isFinite(v) {
		return &InvalidInputError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 || v > 100 {
		return &InvalidInputError{Field: field, Reason: "must be between 0 and 100"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
