package scenario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/returns"
)

// SimulationResult pairs a stored scenario with freshly computed metrics
type SimulationResult struct {
	Scenario *domain.Scenario
	Metrics  domain.ReturnMetrics
}

// ScenarioService handles saving scenarios and simulating their returns
type ScenarioService struct {
	ScenarioRepo domain.ScenarioRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewScenarioService creates a new ScenarioService instance
func NewScenarioService(scenarioRepo domain.ScenarioRepository, logger *zap.Logger) *ScenarioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioService{
		ScenarioRepo: scenarioRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Create validates and stores a new scenario
func (s *ScenarioService) Create(ctx context.Context, name string, inputs domain.ProjectionInputs) (*domain.Scenario, error) {
	scenario := &domain.Scenario{
		ID:        uuid.New(),
		Name:      name,
		Inputs:    inputs,
		CreatedAt: s.now().UTC(),
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	if err := s.ScenarioRepo.Create(ctx, scenario); err != nil {
		return nil, err
	}

	s.logger.Info("scenario created",
		zap.String("scenario_id", scenario.ID.String()),
		zap.String("name", scenario.Name))

	return scenario, nil
}

// Get retrieves a stored scenario
func (s *ScenarioService) Get(ctx context.Context, id uuid.UUID) (*domain.Scenario, error) {
	return s.ScenarioRepo.GetByID(ctx, id)
}

// List retrieves stored scenarios, newest first
func (s *ScenarioService) List(ctx context.Context, limit int) ([]*domain.Scenario, error) {
	if limit < 0 {
		return nil, &domain.InvalidInputError{Field: "limit", Reason: "must not be negative"}
	}
	return s.ScenarioRepo.List(ctx, limit)
}

// Simulate loads a scenario and recomputes its metrics from scratch
func (s *ScenarioService) Simulate(ctx context.Context, id uuid.UUID) (*SimulationResult, error) {
	scenario, err := s.ScenarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics, err := returns.Evaluate(scenario.Inputs)
	if err != nil {
		return nil, err
	}

	if irrErr := metrics.IRR.Err(); irrErr != nil {
		s.logger.Warn("irr solver did not produce a rate",
			zap.String("scenario_id", id.String()),
			zap.String("status", string(metrics.IRR.Status)),
			zap.Int("iterations", metrics.IRR.Iterations))
	}

	return &SimulationResult{Scenario: scenario, Metrics: metrics}, nil
}
