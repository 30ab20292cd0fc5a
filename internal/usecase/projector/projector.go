package projector

import (
	"math"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

// Project validates the inputs and builds the cash-flow projection with a flat sponsor promote
func Project(inputs domain.ProjectionInputs) (domain.Projection, error) {
	return ProjectWithWaterfall(inputs, FlatPromote{Percent: inputs.SponsorPromote})
}

// ProjectWithWaterfall validates the inputs and builds the projection using the given waterfall.
// Logic:
//  1. NOI(year 1) = EGI - opex, EGI = gross revenue net of vacancy
//  2. Entry valuation = NOI / entry cap, entry cap = exit cap + spread
//  3. Split the entry valuation into interest-only debt and equity; period 0 = -equity
//  4. Each year distributes max(0, NOI - debt service); NOI then grows
//  5. The final year adds the net sale proceeds (exit valuation on next year's NOI, less debt)
//     minus the sponsor promote computed on whole-period profit
func ProjectWithWaterfall(inputs domain.ProjectionInputs, waterfall Waterfall) (domain.Projection, error) {
	if err := inputs.Validate(); err != nil {
		return domain.Projection{}, err
	}
	if waterfall == nil {
		waterfall = FlatPromote{Percent: inputs.SponsorPromote}
	}

	growth := 1 + inputs.IncomeGrowthRate/100

	effectiveGrossIncome := inputs.GrossRevenueBase * (1 - inputs.VacancyRate/100)
	opex := effectiveGrossIncome * (inputs.OpexPercent / 100)
	noiYear1 := effectiveGrossIncome - opex

	entryCap := inputs.ExitCapRate + inputs.CapRateSpread
	entryValuation := noiYear1 / (entryCap / 100)

	initialDebt := entryValuation * (inputs.LeverageRatio / 100)
	initialEquity := entryValuation * ((100 - inputs.LeverageRatio) / 100)
	debtService := initialDebt * (inputs.DebtInterestRate / 100)

	p := domain.Projection{
		CashFlows:      make(domain.CashFlowVector, 0, inputs.HoldingPeriodYears+1),
		NOIYear1:       noiYear1,
		EntryValuation: entryValuation,
		InitialDebt:    initialDebt,
		InitialEquity:  initialEquity,
		DebtService:    debtService,
	}
	p.CashFlows = append(p.CashFlows, -initialEquity)

	currentNOI := noiYear1
	var distributed float64
	for year := 1; year <= inputs.HoldingPeriodYears; year++ {
		cashFlow := math.Max(0, currentNOI-debtService)

		if year == inputs.HoldingPeriodYears {
			futureNOI := currentNOI * growth
			p.ExitValuation = futureNOI / (inputs.ExitCapRate / 100)
			netSaleProceeds := math.Max(0, p.ExitValuation-initialDebt)

			p.TotalProfit = (distributed + cashFlow + netSaleProceeds) - initialEquity
			p.PromoteAmount = waterfall.Promote(p.TotalProfit)

			cashFlow += netSaleProceeds - p.PromoteAmount
		}

		p.CashFlows = append(p.CashFlows, cashFlow)
		distributed += cashFlow
		currentNOI *= growth
	}

	p.TotalDistributions = p.CashFlows.Distributions()

	return p, nil
}
