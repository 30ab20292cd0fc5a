package irr

import (
	"math"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

const (
	// DefaultGuess is the starting rate (as a fraction) when the caller has no better estimate
	DefaultGuess = 0.1

	// Tolerance bounds both |NPV| for convergence and |dNPV/dr| for the underflow guard
	Tolerance = 1e-6

	// MaxIterations caps the Newton-Raphson loop
	MaxIterations = 1000

	maxStep   = 1.0
	rateFloor = -0.99
)

// CalculateIRR solves NPV(r) = 0 for the periodic cash flows using Newton-Raphson.
// Logic:
//  0. A vector without both an outflow and an inflow has no IRR (INDETERMINATE)
//  1. Evaluate NPV and its derivative at the current rate
//  2. Stop when |NPV| < Tolerance (CONVERGED)
//  3. Stop when |dNPV/dr| < Tolerance (INDETERMINATE, rate reported as 0)
//  4. Take the Newton step, unless it moves the rate by more than 1.0: then halve the rate instead
//  5. Keep 1+r positive by resetting r <= -1 to -0.99
//
// The returned rate is a percentage. Exhausting MaxIterations yields NOT_CONVERGED
// with the last rate as a best-effort value.
func CalculateIRR(cashFlows []float64, guess float64) domain.IRRResult {
	if len(cashFlows) < 2 || !hasSignChange(cashFlows) {
		return domain.IRRResult{Status: domain.IRRStatusIndeterminate}
	}

	rate := guess
	for i := 0; i < MaxIterations; i++ {
		npv, derivative := npvAndDerivative(cashFlows, rate)

		if math.Abs(npv) < Tolerance {
			return domain.IRRResult{Rate: rate * 100, Status: domain.IRRStatusConverged, Iterations: i + 1}
		}

		if math.Abs(derivative) < Tolerance {
			return domain.IRRResult{Rate: 0, Status: domain.IRRStatusIndeterminate, Iterations: i + 1}
		}

		next := rate - npv/derivative
		if math.Abs(next-rate) > maxStep {
			next = rate / 2
		}
		if next <= -1 {
			next = rateFloor
		}
		rate = next
	}

	return domain.IRRResult{Rate: rate * 100, Status: domain.IRRStatusNotConverged, Iterations: MaxIterations}
}

// hasSignChange reports whether the flows contain at least one strictly negative
// and one strictly positive amount. Zero vectors and all-in/all-out vectors fail.
func hasSignChange(cashFlows []float64) bool {
	var negative, positive bool
	for _, cf := range cashFlows {
		switch {
		case cf < 0:
			negative = true
		case cf > 0:
			positive = true
		}
	}
	return negative && positive
}

// NPV discounts the cash flows at rate (a fraction), period 0 undiscounted
func NPV(cashFlows []float64, rate float64) float64 {
	npv, _ := npvAndDerivative(cashFlows, rate)
	return npv
}

// npvAndDerivative returns (NPV, dNPV/dr).
//
//	NPV    = Σ CF_j / (1+r)^j
//	dNPV/dr = Σ -j · CF_j / (1+r)^(j+1)   (j >= 1)
func npvAndDerivative(cashFlows []float64, rate float64) (float64, float64) {
	var npv, derivative float64
	for j, cf := range cashFlows {
		discount := math.Pow(1+rate, float64(j))
		npv += cf / discount
		if j > 0 {
			derivative -= float64(j) * cf / (discount * (1 + rate))
		}
	}
	return npv, derivative
}
