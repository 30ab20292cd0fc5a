package domain

// CommentaryContext is the record handed to the external commentary generator.
// Field names are part of that contract. IRR is only a return figure when
// IRRStatus is CONVERGED.
type CommentaryContext struct {
	IRR            float64   `json:"irr"`
	IRRStatus      IRRStatus `json:"irrStatus"`
	EquityMultiple float64   `json:"equityMultiple"`
	NOIYear1       float64   `json:"noiYear1"`
	ExitValuation  float64   `json:"exitValuation"`
}

// Education maps a ProjectionInputs or ReturnMetrics field name to a short explanation
type Education map[string]string
