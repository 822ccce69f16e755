package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	pkgpostgres "github.com/Nozima-Rustamova/credit-ML/pkg/postgres"
)

// IndividualProfileRepository implements port.IndividualProfileRepository
// using PostgreSQL.
type IndividualProfileRepository struct {
	db pkgpostgres.Querier
}

// NewIndividualProfileRepository creates a new PostgreSQL-backed individual
// profile repository.
func NewIndividualProfileRepository(db pkgpostgres.Querier) *IndividualProfileRepository {
	return &IndividualProfileRepository{db: db}
}

// Save persists a profile, upserting on ID.
func (r *IndividualProfileRepository) Save(ctx context.Context, profile *model.IndividualCreditProfile) error {
	query := `
		INSERT INTO individual_profiles (
			id, full_name, passport_number, yearly_income, existing_debt,
			collateral_value, credit_history_score, criminal_history,
			last_score, last_model_version, last_scored_at, external_synced_at,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			yearly_income = EXCLUDED.yearly_income,
			existing_debt = EXCLUDED.existing_debt,
			collateral_value = EXCLUDED.collateral_value,
			credit_history_score = EXCLUDED.credit_history_score,
			criminal_history = EXCLUDED.criminal_history,
			last_score = EXCLUDED.last_score,
			last_model_version = EXCLUDED.last_model_version,
			last_scored_at = EXCLUDED.last_scored_at,
			external_synced_at = EXCLUDED.external_synced_at,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID(),
		profile.FullName(),
		profile.PassportNumber(),
		profile.YearlyIncome(),
		profile.ExistingDebt(),
		profile.CollateralValue(),
		profile.CreditHistoryScore(),
		profile.CriminalHistory(),
		profile.LastScore(),
		nullableString(profile.LastModelVersion()),
		profile.LastScoredAt(),
		profile.ExternalSyncedAt(),
		profile.Version(),
		profile.CreatedAt(),
		profile.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save individual profile: %w", err)
	}
	return nil
}

const individualProfileColumns = `
	id, full_name, passport_number, yearly_income, existing_debt,
	collateral_value, credit_history_score, criminal_history,
	last_score, last_model_version, last_scored_at, external_synced_at,
	version, created_at, updated_at
`

// FindByID retrieves a profile by its unique identifier.
func (r *IndividualProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.IndividualCreditProfile, error) {
	query := `SELECT ` + individualProfileColumns + ` FROM individual_profiles WHERE id = $1`
	return scanIndividualProfile(r.db.QueryRow(ctx, query, id))
}

// FindSyncedBefore retrieves up to limit profiles whose external data was
// last synced before the cutoff. Never-synced profiles come first.
func (r *IndividualProfileRepository) FindSyncedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*model.IndividualCreditProfile, error) {
	query := `
		SELECT ` + individualProfileColumns + `
		FROM individual_profiles
		WHERE external_synced_at IS NULL OR external_synced_at < $1
		ORDER BY external_synced_at ASC NULLS FIRST
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale individual profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.IndividualCreditProfile
	for rows.Next() {
		profile, err := scanIndividualProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func scanIndividualProfile(row pgx.Row) (*model.IndividualCreditProfile, error) {
	var (
		id                 uuid.UUID
		fullName           string
		passportNumber     string
		yearlyIncome       decimal.Decimal
		existingDebt       decimal.Decimal
		collateralValue    decimal.Decimal
		creditHistoryScore *int
		criminalHistory    bool
		lastScore          *int
		lastModelVersion   *string
		lastScoredAt       *time.Time
		externalSyncedAt   *time.Time
		version            int
		createdAt          time.Time
		updatedAt          time.Time
	)

	err := row.Scan(
		&id, &fullName, &passportNumber, &yearlyIncome, &existingDebt,
		&collateralValue, &creditHistoryScore, &criminalHistory,
		&lastScore, &lastModelVersion, &lastScoredAt, &externalSyncedAt,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("individual profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan individual profile: %w", err)
	}

	return model.ReconstructIndividualCreditProfile(
		id, fullName, passportNumber, yearlyIncome, existingDebt,
		collateralValue, creditHistoryScore, criminalHistory,
		lastScore, stringValue(lastModelVersion), lastScoredAt, externalSyncedAt,
		version, createdAt, updatedAt,
	), nil
}
