package returns

import (
	"github.com/patpet21/prdxprew-sub000/internal/domain"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/irr"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/projector"
)

// Evaluate projects the cash flows for the inputs and derives the return metrics.
// Invalid inputs are rejected before any computation. A non-converged IRR is not an
// error here: it is carried in ReturnMetrics.IRR.Status and surfaced by IRR.Err().
func Evaluate(inputs domain.ProjectionInputs) (domain.ReturnMetrics, error) {
	p, err := projector.Project(inputs)
	if err != nil {
		return domain.ReturnMetrics{}, err
	}

	return Aggregate(p), nil
}

// Aggregate combines a projection with the IRR solver.
// Policy: zero initial equity yields an equity multiple of 0.
func Aggregate(p domain.Projection) domain.ReturnMetrics {
	m := domain.ReturnMetrics{
		Projection: p,
		IRR:        irr.CalculateIRR(p.CashFlows, irr.DefaultGuess),
	}

	if p.InitialEquity != 0 {
		m.EquityMultiple = p.CashFlows.Distributions() / p.InitialEquity
	}

	return m
}

// Commentary extracts the record consumed by the commentary generator
func Commentary(m domain.ReturnMetrics) domain.CommentaryContext {
	return domain.CommentaryContext{
		IRR:            m.IRR.Rate,
		IRRStatus:      m.IRR.Status,
		EquityMultiple: m.EquityMultiple,
		NOIYear1:       m.NOIYear1,
		ExitValuation:  m.ExitValuation,
	}
}
