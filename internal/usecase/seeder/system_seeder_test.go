package seeder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

// MockScenarioRepository is a mock implementation of ScenarioRepository
type MockScenarioRepository struct {
	mock.Mock
}

func (m *MockScenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	args := m.Called(ctx, scenario)
	return args.Error(0)
}

func (m *MockScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scenario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

func (m *MockScenarioRepository) List(ctx context.Context, limit int) ([]*domain.Scenario, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Scenario), args.Error(1)
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("scenario %s: %w", id, domain.ErrScenarioNotFound)
}

func TestSystemSeeder_Seed_ScenariosMissing(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockScenarioRepository)
	seeder := NewSystemSeeder(mockRepo, zap.NewNop())

	for _, ref := range ReferenceScenarios() {
		ref := ref
		mockRepo.On("GetByID", ctx, ref.ID).Return(nil, notFound(ref.ID))
		mockRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.Scenario) bool {
			return s.ID == ref.ID && s.Name == ref.Name && s.Inputs == ref.Inputs
		})).Return(nil)
	}

	created, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, created)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Create", 3)
}

func TestSystemSeeder_Seed_ScenariosExist(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockScenarioRepository)
	seeder := NewSystemSeeder(mockRepo, zap.NewNop())

	for _, ref := range ReferenceScenarios() {
		mockRepo.On("GetByID", ctx, ref.ID).Return(&domain.Scenario{ID: ref.ID, Name: ref.Name, Inputs: ref.Inputs}, nil)
	}

	created, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestSystemSeeder_Seed_PartialScenariosExist(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockScenarioRepository)
	seeder := NewSystemSeeder(mockRepo, zap.NewNop())

	mockRepo.On("GetByID", ctx, SYS_DEFAULT_PRESET).Return(&domain.Scenario{ID: SYS_DEFAULT_PRESET}, nil)
	mockRepo.On("GetByID", ctx, SYS_HIGH_LEVERAGE).Return(nil, notFound(SYS_HIGH_LEVERAGE))
	mockRepo.On("GetByID", ctx, SYS_ALL_EQUITY).Return(nil, notFound(SYS_ALL_EQUITY))

	mockRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.Scenario) bool {
		return s.ID == SYS_HIGH_LEVERAGE
	})).Return(nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.Scenario) bool {
		return s.ID == SYS_ALL_EQUITY
	})).Return(nil)

	created, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, created)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestSystemSeeder_Seed_LookupFailureStops(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockScenarioRepository)
	seeder := NewSystemSeeder(mockRepo, zap.NewNop())

	mockRepo.On("GetByID", ctx, SYS_DEFAULT_PRESET).Return(nil, errors.New("failed to get scenario by ID: connection refused"))

	created, err := seeder.Seed(ctx)

	assert.Error(t, err)
	assert.Equal(t, 0, created)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestReferenceScenarios_AreValid(t *testing.T) {
	for _, ref := range ReferenceScenarios() {
		s := domain.Scenario{ID: ref.ID, Name: ref.Name, Inputs: ref.Inputs}
		assert.NoError(t, s.Validate(), ref.Name)
	}
}
