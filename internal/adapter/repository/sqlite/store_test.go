package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

func newStore(t *testing.T) *ScenarioStore {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewScenarioStore(db)
}

func TestScenarioStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	inputs := domain.DefaultProjectionInputs()
	inputs.IncomeGrowthRate = 2.75
	inputs.CapRateSpread = 0.1
	inputs.LeverageRatio = 0

	scenario := &domain.Scenario{
		ID:        uuid.New(),
		Name:      "Porto Retail",
		Inputs:    inputs,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 123, time.UTC),
	}
	require.NoError(t, store.Create(ctx, scenario))

	got, err := store.GetByID(ctx, scenario.ID)
	require.NoError(t, err)
	assert.Equal(t, scenario.ID, got.ID)
	assert.Equal(t, scenario.Name, got.Name)
	assert.Equal(t, scenario.Inputs, got.Inputs)
	assert.True(t, scenario.CreatedAt.Equal(got.CreatedAt))
}

func TestScenarioStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	scenario := &domain.Scenario{ID: uuid.New(), Name: "dup", Inputs: domain.DefaultProjectionInputs(), CreatedAt: time.Now()}
	require.NoError(t, store.Create(ctx, scenario))

	err := store.Create(ctx, scenario)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create scenario")
}

func TestScenarioStore_GetByID_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
}

func TestScenarioStore_List(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, store.Create(ctx, &domain.Scenario{
			ID:        uuid.New(),
			Name:      name,
			Inputs:    domain.DefaultProjectionInputs(),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	tests := []struct {
		name  string
		limit int
		names []string
	}{
		{name: "all", limit: 0, names: []string{"newest", "middle", "oldest"}},
		{name: "limited", limit: 2, names: []string{"newest", "middle"}},
		{name: "limit above count", limit: 10, names: []string{"newest", "middle", "oldest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := store.List(ctx, tt.limit)
			require.NoError(t, err)

			var names []string
			for _, s := range list {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestScenarioStore_ListEmpty(t *testing.T) {
	list, err := newStore(t).List(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, list)
}
