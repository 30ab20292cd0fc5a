package domain

import (
	"github.com/shopspring/decimal"
)

// CashFlowVector is an ordered series of signed amounts indexed by period.
// Period 0 is the equity outlay (negative); the last period carries the exit proceeds.
type CashFlowVector []float64

// Distributions returns the sum of the positive entries after period 0
func (v CashFlowVector) Distributions() float64 {
	var total float64
	for i := 1; i < len(v); i++ {
		if v[i] > 0 {
			total += v[i]
		}
	}
	return total
}

// IRRStatus tags how the IRR solver terminated
type IRRStatus string

const (
	IRRStatusConverged     IRRStatus = "CONVERGED"
	IRRStatusNotConverged  IRRStatus = "NOT_CONVERGED"
	IRRStatusIndeterminate IRRStatus = "INDETERMINATE"
)

// IRRResult is the outcome of an IRR solve
type IRRResult struct {
	Rate       float64 // annualized, in percent; best-effort for NOT_CONVERGED, 0 for INDETERMINATE
	Status     IRRStatus
	Iterations int
}

// Err maps a non-converged status onto its sentinel error
func (r IRRResult) Err() error {
	switch r.Status {
	case IRRStatusConverged:
		return nil
	case IRRStatusNotConverged:
		return ErrNotConverged
	default:
		return ErrIndeterminate
	}
}

// Projection holds the year-by-year cash flows and the intermediate values behind them
type Projection struct {
	CashFlows          CashFlowVector
	NOIYear1           float64
	EntryValuation     float64
	ExitValuation      float64
	InitialDebt        float64
	InitialEquity      float64
	DebtService        float64 // annual, interest-only
	TotalDistributions float64 // operating distributions plus investor exit proceeds
	TotalProfit        float64 // before promote
	PromoteAmount      float64
}

// ReturnMetrics represents the derived return figures of a projection
type ReturnMetrics struct {
	Projection
	EquityMultiple float64
	IRR            IRRResult
}

// RiskLevel classifies a loan-to-value ratio
type RiskLevel string

const (
	RiskLevelSafe     RiskLevel = "Safe"
	RiskLevelModerate RiskLevel = "Moderate"
	RiskLevelHigh     RiskLevel = "High"
)

// LTVResult is the loan-to-value ratio (percent) with its risk bucket
type LTVResult struct {
	LTV       float64
	RiskLevel RiskLevel
}

// DisplayMetrics is ReturnMetrics rounded the way the simulator shows them:
// currency to whole units, percentages and ratios to two decimals
type DisplayMetrics struct {
	NOIYear1       decimal.Decimal
	EntryValuation decimal.Decimal
	ExitValuation  decimal.Decimal
	InitialEquity  decimal.Decimal
	TotalProfit    decimal.Decimal
	PromoteAmount  decimal.Decimal
	EquityMultiple decimal.Decimal
	IRR            decimal.Decimal // zero unless IRRStatus is CONVERGED or NOT_CONVERGED
	IRRStatus      IRRStatus
}

// Display rounds the metrics for presentation
func (m ReturnMetrics) Display() DisplayMetrics {
	currency := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Round(0) }
	ratio := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Round(2) }

	irr := decimal.Zero
	if m.IRR.Status != IRRStatusIndeterminate {
		irr = ratio(m.IRR.Rate)
	}

	return DisplayMetrics{
		NOIYear1:       currency(m.NOIYear1),
		EntryValuation: currency(m.EntryValuation),
		ExitValuation:  currency(m.ExitValuation),
		InitialEquity:  currency(m.InitialEquity),
		TotalProfit:    currency(m.TotalProfit),
		PromoteAmount:  currency(m.PromoteAmount),
		EquityMultiple: ratio(m.EquityMultiple),
		IRR:            irr,
		IRRStatus:      m.IRR.Status,
	}
}
