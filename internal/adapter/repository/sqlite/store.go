package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

// Open opens (or creates) the SQLite database at dsn and applies the schema.
// Use ":memory:" for a throwaway store.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// sqlite serialises writers anyway; one connection also keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the scenario table if needed
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS scenarios(
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		income_growth_rate TEXT NOT NULL,
		vacancy_rate TEXT NOT NULL,
		opex_percent TEXT NOT NULL,
		exit_cap_rate TEXT NOT NULL,
		holding_period_years INTEGER NOT NULL,
		gross_revenue_base TEXT NOT NULL,
		sponsor_promote TEXT NOT NULL,
		leverage_ratio TEXT NOT NULL,
		debt_interest_rate TEXT NOT NULL,
		cap_rate_spread TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to init sqlite schema: %w", err)
	}
	return nil
}

// ScenarioStore implements domain.ScenarioRepository on SQLite
type ScenarioStore struct{ db *sql.DB }

// NewScenarioStore wraps an opened database
func NewScenarioStore(db *sql.DB) *ScenarioStore { return &ScenarioStore{db: db} }

var _ domain.ScenarioRepository = (*ScenarioStore)(nil)

// Create inserts a new scenario; a duplicate ID is an error
func (s *ScenarioStore) Create(ctx context.Context, scenario *domain.Scenario) error {
	in := scenario.Inputs
	_, err := s.db.ExecContext(ctx, `INSERT INTO scenarios(
		id,name,income_growth_rate,vacancy_rate,opex_percent,exit_cap_rate,
		holding_period_years,gross_revenue_base,sponsor_promote,
		leverage_ratio,debt_interest_rate,cap_rate_spread,created_at
	) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		scenario.ID.String(), scenario.Name,
		text(in.IncomeGrowthRate), text(in.VacancyRate), text(in.OpexPercent), text(in.ExitCapRate),
		in.HoldingPeriodYears, text(in.GrossRevenueBase), text(in.SponsorPromote),
		text(in.LeverageRatio), text(in.DebtInterestRate), text(in.CapRateSpread),
		scenario.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}
	return nil
}

const selectScenario = `SELECT id,name,income_growth_rate,vacancy_rate,opex_percent,exit_cap_rate,
	holding_period_years,gross_revenue_base,sponsor_promote,
	leverage_ratio,debt_interest_rate,cap_rate_spread,created_at FROM scenarios`

// GetByID retrieves a scenario, wrapping ErrScenarioNotFound when absent
func (s *ScenarioStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scenario, error) {
	row := s.db.QueryRowContext(ctx, selectScenario+` WHERE id=?`, id.String())
	scenario, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scenario %s: %w", id, domain.ErrScenarioNotFound)
		}
		return nil, fmt.Errorf("failed to get scenario by ID: %w", err)
	}
	return scenario, nil
}

// List returns scenarios newest first; limit <= 0 means all
func (s *ScenarioStore) List(ctx context.Context, limit int) ([]*domain.Scenario, error) {
	query := selectScenario + ` ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []*domain.Scenario
	for rows.Next() {
		scenario, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		out = append(out, scenario)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}
	return out, nil
}

func scan(row interface{ Scan(...any) error }) (*domain.Scenario, error) {
	var (
		sc      domain.Scenario
		id      string
		created int64
		nums    [9]string
	)
	err := row.Scan(&id, &sc.Name,
		&nums[0], &nums[1], &nums[2], &nums[3],
		&sc.Inputs.HoldingPeriodYears, &nums[4], &nums[5],
		&nums[6], &nums[7], &nums[8], &created)
	if err != nil {
		return nil, err
	}

	if sc.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse scenario id: %w", err)
	}

	in := &sc.Inputs
	for i, target := range []*float64{
		&in.IncomeGrowthRate, &in.VacancyRate, &in.OpexPercent, &in.ExitCapRate,
		&in.GrossRevenueBase, &in.SponsorPromote,
		&in.LeverageRatio, &in.DebtInterestRate, &in.CapRateSpread,
	} {
		d, err := decimal.NewFromString(nums[i])
		if err != nil {
			return nil, fmt.Errorf("failed to parse numeric column: %w", err)
		}
		*target = d.InexactFloat64()
	}

	sc.CreatedAt = time.Unix(0, created).UTC()
	return &sc, nil
}

func text(v float64) string { return decimal.NewFromFloat(v).String() }
