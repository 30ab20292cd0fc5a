package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

// Fixed UUIDs for the reference scenarios shipped with the simulator
var (
	SYS_DEFAULT_PRESET = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	SYS_HIGH_LEVERAGE  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	SYS_ALL_EQUITY     = uuid.MustParse("00000000-0000-0000-0000-000000000003")
)

// ReferenceScenario defines a scenario to be seeded
type ReferenceScenario struct {
	ID     uuid.UUID
	Name   string
	Inputs domain.ProjectionInputs
}

// ReferenceScenarios returns the scenarios the seeder guarantees to exist
func ReferenceScenarios() []ReferenceScenario {
	preset := domain.DefaultProjectionInputs()

	highLeverage := preset
	highLeverage.LeverageRatio = 80
	highLeverage.DebtInterestRate = 9

	allEquity := preset
	allEquity.LeverageRatio = 0

	return []ReferenceScenario{
		{ID: SYS_DEFAULT_PRESET, Name: "Reference: Default Preset", Inputs: preset},
		{ID: SYS_HIGH_LEVERAGE, Name: "Reference: High Leverage Stress", Inputs: highLeverage},
		{ID: SYS_ALL_EQUITY, Name: "Reference: All Equity", Inputs: allEquity},
	}
}

// SystemSeeder handles seeding of the reference scenarios
type SystemSeeder struct {
	repo   domain.ScenarioRepository
	logger *zap.Logger
}

// NewSystemSeeder creates a new SystemSeeder instance
func NewSystemSeeder(repo domain.ScenarioRepository, logger *zap.Logger) *SystemSeeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemSeeder{
		repo:   repo,
		logger: logger,
	}
}

// Seed ensures all reference scenarios exist in the store
// Returns the number of scenarios created; existing ones are left untouched
func (s *SystemSeeder) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, ref := range ReferenceScenarios() {
		_, err := s.repo.GetByID(ctx, ref.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrScenarioNotFound) {
			return created, err
		}

		scenario := &domain.Scenario{
			ID:        ref.ID,
			Name:      ref.Name,
			Inputs:    ref.Inputs,
			CreatedAt: time.Now().UTC(),
		}

		// Validate before creating
		if err := scenario.Validate(); err != nil {
			return created, err
		}

		if err := s.repo.Create(ctx, scenario); err != nil {
			return created, err
		}

		s.logger.Info("reference scenario seeded", zap.String("scenario_id", ref.ID.String()), zap.String("name", ref.Name))
		created++
	}

	return created, nil
}
