package leverage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

func TestCalculateLTV(t *testing.T) {
	tests := []struct {
		name      string
		debt      float64
		valuation float64
		wantLTV   float64
		wantRisk  domain.RiskLevel
	}{
		{name: "Low leverage is Safe", debt: 40, valuation: 100, wantLTV: 40, wantRisk: domain.RiskLevelSafe},
		{name: "Exactly 60 stays Safe", debt: 60, valuation: 100, wantLTV: 60, wantRisk: domain.RiskLevelSafe},
		{name: "Just above 60 is Moderate", debt: 60.01, valuation: 100, wantLTV: 60.01, wantRisk: domain.RiskLevelModerate},
		{name: "Exactly 75 stays Moderate", debt: 75, valuation: 100, wantLTV: 75, wantRisk: domain.RiskLevelModerate},
		{name: "Just above 75 is High", debt: 75.01, valuation: 100, wantLTV: 75.01, wantRisk: domain.RiskLevelHigh},
		{name: "Debt above valuation is High", debt: 1200000, valuation: 1000000, wantLTV: 120, wantRisk: domain.RiskLevelHigh},
		{name: "Zero valuation is reported as Safe by policy", debt: 100, valuation: 0, wantLTV: 0, wantRisk: domain.RiskLevelSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result domain.LTVResult
			assert.NotPanics(t, func() { result = CalculateLTV(tt.debt, tt.valuation) })

			assert.InDelta(t, tt.wantLTV, result.LTV, 1e-9)
			assert.Equal(t, tt.wantRisk, result.RiskLevel)
		})
	}
}

func TestCalculateWACC(t *testing.T) {
	tests := []struct {
		name       string
		equity     float64
		equityCost float64
		debt       float64
		debtCost   float64
		want       float64
	}{
		{name: "Equal weights average the costs", equity: 50, equityCost: 10, debt: 50, debtCost: 5, want: 7.5},
		{name: "Sixty-forty property stack", equity: 400, equityCost: 12, debt: 600, debtCost: 6, want: 8.4},
		{name: "All equity", equity: 100, equityCost: 11, debt: 0, debtCost: 6, want: 11},
		{name: "Zero capital is 0 by policy", equity: 0, equityCost: 11, debt: 0, debtCost: 6, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateWACC(tt.equity, tt.equityCost, tt.debt, tt.debtCost), 1e-9)
		})
	}
}

func TestCalculateWACC_EqualWeightsExact(t *testing.T) {
	assert.Equal(t, 7.5, CalculateWACC(50, 10, 50, 5))
}
