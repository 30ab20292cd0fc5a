package leverage

import (
	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

// Risk thresholds for the loan-to-value ratio (percent, strict upper bounds of the lower bucket)
const (
	ModerateLTVThreshold = 60.0
	HighLTVThreshold     = 75.0
)

// CalculateLTV computes the loan-to-value ratio in percent and its risk bucket.
// Policy: a zero valuation is reported as {0, Safe} rather than an error.
func CalculateLTV(totalDebt, valuation float64) domain.LTVResult {
	if valuation == 0 {
		return domain.LTVResult{LTV: 0, RiskLevel: domain.RiskLevelSafe}
	}

	ltv := 100 * totalDebt / valuation

	risk := domain.RiskLevelSafe
	switch {
	case ltv > HighLTVThreshold:
		risk = domain.RiskLevelHigh
	case ltv > ModerateLTVThreshold:
		risk = domain.RiskLevelModerate
	}

	return domain.LTVResult{LTV: ltv, RiskLevel: risk}
}

// CalculateWACC blends the cost of equity and debt by their share of total capital.
// Costs are percentages and the result is in the same unit.
// Policy: zero total capital yields 0.
func CalculateWACC(equityAmount, equityCost, debtAmount, debtCost float64) float64 {
	totalCapital := equityAmount + debtAmount
	if totalCapital == 0 {
		return 0
	}

	return (equityAmount/totalCapital)*equityCost + (debtAmount/totalCapital)*debtCost
}
