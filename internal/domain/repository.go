package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScenarioRepository defines the interface for scenario persistence operations
type ScenarioRepository interface {
	// Create stores a new scenario
	Create(ctx context.Context, scenario *Scenario) error

	// GetByID retrieves a scenario by its ID
	// Returns an error wrapping ErrScenarioNotFound if it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Scenario, error)

	// List retrieves scenarios ordered by creation time, newest first
	// limit <= 0 means no limit
	List(ctx context.Context, limit int) ([]*Scenario, error)
}

// ChartCache stores rendered report charts keyed by content hash
type ChartCache interface {
	// Get returns the cached image and true on a hit
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores the image for ttl (0 means no expiry)
	Set(ctx context.Context, key string, image []byte, ttl time.Duration) error
}
