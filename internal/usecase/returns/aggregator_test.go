package returns

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

func TestEvaluate_DefaultPreset(t *testing.T) {
	m, err := Evaluate(domain.DefaultProjectionInputs())
	require.NoError(t, err)

	require.Equal(t, domain.IRRStatusConverged, m.IRR.Status)
	assert.Greater(t, m.IRR.Rate, 0.0)
	assert.Greater(t, m.EquityMultiple, 1.0)
	assert.InDelta(t, 308750, m.NOIYear1, 1e-6)
}

func TestEvaluate_IRRMatchesHandComputedScenario(t *testing.T) {
	// All-cash-yield asset bought and sold at the same cap: equity earns its 6% cash yield
	inputs := domain.ProjectionInputs{
		ExitCapRate:        5,
		HoldingPeriodYears: 2,
		GrossRevenueBase:   100000,
		LeverageRatio:      50,
		DebtInterestRate:   4,
	}

	m, err := Evaluate(inputs)
	require.NoError(t, err)

	require.Equal(t, domain.IRRStatusConverged, m.IRR.Status)
	assert.InDelta(t, 6.0, m.IRR.Rate, 1e-4)
	assert.InDelta(t, 1.12, m.EquityMultiple, 1e-9)
}

func TestEvaluate_EquityMultipleIsDistributionsOverEquity(t *testing.T) {
	variants := []func(p *domain.ProjectionInputs){
		func(p *domain.ProjectionInputs) {},
		func(p *domain.ProjectionInputs) { p.HoldingPeriodYears = 10 },
		func(p *domain.ProjectionInputs) { p.LeverageRatio = 0 },
		func(p *domain.ProjectionInputs) { p.SponsorPromote = 35; p.IncomeGrowthRate = 7 },
		func(p *domain.ProjectionInputs) { p.LeverageRatio = 85; p.DebtInterestRate = 11 },
	}

	for i, mutate := range variants {
		inputs := domain.DefaultProjectionInputs()
		mutate(&inputs)

		m, err := Evaluate(inputs)
		require.NoError(t, err, "variant %d", i)

		var positive float64
		for _, cf := range m.CashFlows[1:] {
			if cf > 0 {
				positive += cf
			}
		}
		assert.Equal(t, positive/m.InitialEquity, m.EquityMultiple, "variant %d", i)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	inputs := domain.DefaultProjectionInputs()
	inputs.HoldingPeriodYears = 12

	first, err := Evaluate(inputs)
	require.NoError(t, err)
	second, err := Evaluate(inputs)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("metrics differ between runs (-first +second):\n%s", diff)
	}
}

func TestEvaluate_InvalidInput(t *testing.T) {
	inputs := domain.DefaultProjectionInputs()
	inputs.VacancyRate = -5

	_, err := Evaluate(inputs)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEvaluate_ZeroIncomeHasNoIRR(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.ProjectionInputs)
	}{
		{name: "no gross revenue", mutate: func(p *domain.ProjectionInputs) { p.GrossRevenueBase = 0 }},
		{name: "fully vacant", mutate: func(p *domain.ProjectionInputs) { p.VacancyRate = 100 }},
		{name: "expenses absorb all income", mutate: func(p *domain.ProjectionInputs) { p.OpexPercent = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := domain.DefaultProjectionInputs()
			tt.mutate(&inputs)

			m, err := Evaluate(inputs)
			require.NoError(t, err)

			for _, cf := range m.CashFlows {
				assert.Zero(t, cf)
			}
			assert.Equal(t, domain.IRRStatusIndeterminate, m.IRR.Status)
			assert.Equal(t, 0.0, m.IRR.Rate)
			assert.ErrorIs(t, m.IRR.Err(), domain.ErrIndeterminate)
			assert.Equal(t, 0.0, m.EquityMultiple)

			d := m.Display()
			assert.Equal(t, domain.IRRStatusIndeterminate, d.IRRStatus)
			assert.True(t, d.IRR.IsZero())

			c := Commentary(m)
			assert.Equal(t, domain.IRRStatusIndeterminate, c.IRRStatus)
		})
	}
}

func TestAggregate_ZeroEquityPolicy(t *testing.T) {
	p := domain.Projection{
		CashFlows:     domain.CashFlowVector{0, 10, 10},
		InitialEquity: 0,
	}

	m := Aggregate(p)

	assert.Equal(t, 0.0, m.EquityMultiple, "zero equity is reported as 0 by policy, not as a real multiple")
}

func TestCommentary_FieldNames(t *testing.T) {
	m, err := Evaluate(domain.DefaultProjectionInputs())
	require.NoError(t, err)

	raw, err := json.Marshal(Commentary(m))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 5)
	assert.Equal(t, m.IRR.Rate, fields["irr"])
	assert.Equal(t, string(domain.IRRStatusConverged), fields["irrStatus"])
	assert.Equal(t, m.EquityMultiple, fields["equityMultiple"])
	assert.Equal(t, m.NOIYear1, fields["noiYear1"])
	assert.Equal(t, m.ExitValuation, fields["exitValuation"])
}

func TestEducation_KeysMatchFieldNames(t *testing.T) {
	raw, err := json.Marshal(domain.DefaultProjectionInputs())
	require.NoError(t, err)

	var inputFields map[string]any
	require.NoError(t, json.Unmarshal(raw, &inputFields))

	education := InputEducation()
	assert.Len(t, education, len(inputFields))
	for field := range inputFields {
		assert.Contains(t, education, field)
	}

	for _, field := range []string{"irr", "equityMultiple", "noiYear1", "exitValuation"} {
		assert.Contains(t, MetricEducation(), field)
	}
}
