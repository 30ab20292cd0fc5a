package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

const scenarioColumns = `
	id, name, income_growth_rate, vacancy_rate, opex_percent, exit_cap_rate,
	holding_period_years, gross_revenue_base, sponsor_promote,
	leverage_ratio, debt_interest_rate, cap_rate_spread, created_at`

// scenarioRepository implements domain.ScenarioRepository
type scenarioRepository struct {
	db *DB
}

// NewScenarioRepository creates a new scenario repository
func NewScenarioRepository(db *DB) domain.ScenarioRepository {
	return &scenarioRepository{db: db}
}

// Create inserts a new scenario. Rates and amounts are stored as NUMERIC.
func (r *scenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	query := `
		INSERT INTO scenarios (` + scenarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	in := scenario.Inputs
	_, err := r.db.ExecContext(ctx, query,
		scenario.ID,
		scenario.Name,
		numeric(in.IncomeGrowthRate),
		numeric(in.VacancyRate),
		numeric(in.OpexPercent),
		numeric(in.ExitCapRate),
		in.HoldingPeriodYears,
		numeric(in.GrossRevenueBase),
		numeric(in.SponsorPromote),
		numeric(in.LeverageRatio),
		numeric(in.DebtInterestRate),
		numeric(in.CapRateSpread),
		scenario.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}

	return nil
}

// GetByID retrieves a scenario by its ID
func (r *scenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios WHERE id = $1`

	scenario, err := scanScenario(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scenario %s: %w", id, domain.ErrScenarioNotFound)
		}
		return nil, fmt.Errorf("failed to get scenario by ID: %w", err)
	}

	return scenario, nil
}

// List retrieves scenarios, newest first. A non-positive limit returns all of them.
func (r *scenarioRepository) List(ctx context.Context, limit int) ([]*domain.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*domain.Scenario
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}

	return scenarios, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*domain.Scenario, error) {
	var (
		s       domain.Scenario
		numbers [9]string
	)

	err := row.Scan(
		&s.ID,
		&s.Name,
		&numbers[0],
		&numbers[1],
		&numbers[2],
		&numbers[3],
		&s.Inputs.HoldingPeriodYears,
		&numbers[4],
		&numbers[5],
		&numbers[6],
		&numbers[7],
		&numbers[8],
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	targets := [9]*float64{
		&s.Inputs.IncomeGrowthRate,
		&s.Inputs.VacancyRate,
		&s.Inputs.OpexPercent,
		&s.Inputs.ExitCapRate,
		&s.Inputs.GrossRevenueBase,
		&s.Inputs.SponsorPromote,
		&s.Inputs.LeverageRatio,
		&s.Inputs.DebtInterestRate,
		&s.Inputs.CapRateSpread,
	}
	for i, raw := range numbers {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse numeric column: %w", err)
		}
		*targets[i] = d.InexactFloat64()
	}

	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

// numeric renders a float as the shortest decimal string that parses back to it
func numeric(v float64) string {
	return decimal.NewFromFloat(v).String()
}
