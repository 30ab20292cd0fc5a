package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scenario represents a saved set of projection assumptions for an asset
type Scenario struct {
	ID        uuid.UUID
	Name      string
	Inputs    ProjectionInputs
	CreatedAt time.Time
}

// Validate ensures the scenario adheres to domain rules
// Returns an error if validation fails
func (s *Scenario) Validate() error {
	if s.ID == uuid.Nil {
		return errors.New("scenario ID cannot be empty")
	}

	if s.Name == "" {
		return &InvalidInputError{Field: "scenario name", Reason: "cannot be empty"}
	}

	return s.Inputs.Validate()
}
