package returns

import "github.com/patpet21/prdxprew-sub000/internal/domain"

// InputEducation explains each ProjectionInputs field, keyed by its JSON name
func InputEducation() domain.Education {
	return domain.Education{
		"incomeGrowthRate":   "Yearly growth applied to net operating income, including the exit year used for the sale price.",
		"vacancyRate":        "Share of gross revenue lost to empty units before expenses.",
		"opexPercent":        "Operating expenses as a share of effective gross income.",
		"exitCapRate":        "Cap rate a buyer applies to next year's NOI at sale. Higher means a lower exit price.",
		"holdingPeriodYears": "Years between acquisition and sale.",
		"grossRevenueBase":   "First-year gross revenue before vacancy.",
		"sponsorPromote":     "Share of whole-period profit paid to the sponsor at exit.",
		"leverageRatio":      "Share of the purchase price financed with interest-only debt.",
		"debtInterestRate":   "Yearly interest on the acquisition loan.",
		"capRateSpread":      "Points added to the exit cap rate to price the entry.",
	}
}

// MetricEducation explains each reported metric, keyed by its commentary field name
func MetricEducation() domain.Education {
	return domain.Education{
		"irr":            "Discount rate at which the net present value of the equity cash flows is zero.",
		"equityMultiple": "Total cash returned to investors divided by the equity invested.",
		"noiYear1":       "Effective gross income minus operating expenses, before debt service.",
		"exitValuation":  "Sale price implied by the exit cap rate.",
	}
}
