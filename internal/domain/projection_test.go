package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionInputs_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *ProjectionInputs)
		wantErr bool
		field   string
	}{
		{
			name:    "Default preset should pass",
			mutate:  func(p *ProjectionInputs) {},
			wantErr: false,
		},
		{
			name:    "All-equity financing should pass",
			mutate:  func(p *ProjectionInputs) { p.LeverageRatio = 0 },
			wantErr: false,
		},
		{
			name:    "Zero holding period should fail",
			mutate:  func(p *ProjectionInputs) { p.HoldingPeriodYears = 0 },
			wantErr: true,
			field:   "holdingPeriodYears",
		},
		{
			name:    "Negative holding period should fail",
			mutate:  func(p *ProjectionInputs) { p.HoldingPeriodYears = -3 },
			wantErr: true,
			field:   "holdingPeriodYears",
		},
		{
			name:    "Holding period above 15 should fail",
			mutate:  func(p *ProjectionInputs) { p.HoldingPeriodYears = 16 },
			wantErr: true,
			field:   "holdingPeriodYears",
		},
		{
			name:    "Holding period of 15 should pass",
			mutate:  func(p *ProjectionInputs) { p.HoldingPeriodYears = 15 },
			wantErr: false,
		},
		{
			name:    "Negative vacancy should fail",
			mutate:  func(p *ProjectionInputs) { p.VacancyRate = -1 },
			wantErr: true,
			field:   "vacancyRate",
		},
		{
			name:    "Negative opex ratio should fail",
			mutate:  func(p *ProjectionInputs) { p.OpexPercent = -0.5 },
			wantErr: true,
			field:   "opexPercent",
		},
		{
			name:    "Promote above 100 should fail",
			mutate:  func(p *ProjectionInputs) { p.SponsorPromote = 120 },
			wantErr: true,
			field:   "sponsorPromote",
		},
		{
			name:    "NaN growth should fail",
			mutate:  func(p *ProjectionInputs) { p.IncomeGrowthRate = math.NaN() },
			wantErr: true,
			field:   "incomeGrowthRate",
		},
		{
			name:    "Infinite revenue should fail",
			mutate:  func(p *ProjectionInputs) { p.GrossRevenueBase = math.Inf(1) },
			wantErr: true,
			field:   "grossRevenueBase",
		},
		{
			name:    "Negative revenue should fail",
			mutate:  func(p *ProjectionInputs) { p.GrossRevenueBase = -1 },
			wantErr: true,
			field:   "grossRevenueBase",
		},
		{
			name:    "Zero exit cap rate should fail",
			mutate:  func(p *ProjectionInputs) { p.ExitCapRate = 0 },
			wantErr: true,
			field:   "exitCapRate",
		},
		{
			name:    "Negative cap spread should fail",
			mutate:  func(p *ProjectionInputs) { p.CapRateSpread = -0.25 },
			wantErr: true,
			field:   "capRateSpread",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := DefaultProjectionInputs()
			tt.mutate(&inputs)

			err := inputs.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var inputErr *InvalidInputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestDefaultProjectionInputs_Policy(t *testing.T) {
	inputs := DefaultProjectionInputs()

	assert.Equal(t, DefaultLeverageRatio, inputs.LeverageRatio)
	assert.Equal(t, DefaultDebtInterestRate, inputs.DebtInterestRate)
	assert.Equal(t, DefaultCapRateSpread, inputs.CapRateSpread)
}
