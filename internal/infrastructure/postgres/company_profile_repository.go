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

// CompanyProfileRepository implements port.CompanyProfileRepository using
// PostgreSQL.
type CompanyProfileRepository struct {
	db pkgpostgres.Querier
}

// NewCompanyProfileRepository creates a new PostgreSQL-backed company
// profile repository.
func NewCompanyProfileRepository(db pkgpostgres.Querier) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

// Save persists a profile, upserting on ID.
func (r *CompanyProfileRepository) Save(ctx context.Context, profile *model.CompanyCreditProfile) error {
	query := `
		INSERT INTO company_profiles (
			id, legal_name, tax_id, revenue, net_income, assets, liabilities,
			last_score, last_model_version, last_scored_at, external_synced_at,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			legal_name = EXCLUDED.legal_name,
			revenue = EXCLUDED.revenue,
			net_income = EXCLUDED.net_income,
			assets = EXCLUDED.assets,
			liabilities = EXCLUDED.liabilities,
			last_score = EXCLUDED.last_score,
			last_model_version = EXCLUDED.last_model_version,
			last_scored_at = EXCLUDED.last_scored_at,
			external_synced_at = EXCLUDED.external_synced_at,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID(),
		profile.LegalName(),
		profile.TaxID(),
		profile.Revenue(),
		profile.NetIncome(),
		profile.Assets(),
		profile.Liabilities(),
		profile.LastScore(),
		nullableString(profile.LastModelVersion()),
		profile.LastScoredAt(),
		profile.ExternalSyncedAt(),
		profile.Version(),
		profile.CreatedAt(),
		profile.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save company profile: %w", err)
	}
	return nil
}

const companyProfileColumns = `
	id, legal_name, tax_id, revenue, net_income, assets, liabilities,
	last_score, last_model_version, last_scored_at, external_synced_at,
	version, created_at, updated_at
`

// FindByID retrieves a profile by its unique identifier.
func (r *CompanyProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CompanyCreditProfile, error) {
	query := `SELECT ` + companyProfileColumns + ` FROM company_profiles WHERE id = $1`
	return scanCompanyProfile(r.db.QueryRow(ctx, query, id))
}

// FindSyncedBefore retrieves up to limit profiles whose external data was
// last synced before the cutoff. Never-synced profiles come first.
func (r *CompanyProfileRepository) FindSyncedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*model.CompanyCreditProfile, error) {
	query := `
		SELECT ` + companyProfileColumns + `
		FROM company_profiles
		WHERE external_synced_at IS NULL OR external_synced_at < $1
		ORDER BY external_synced_at ASC NULLS FIRST
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale company profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.CompanyCreditProfile
	for rows.Next() {
		profile, err := scanCompanyProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func scanCompanyProfile(row pgx.Row) (*model.CompanyCreditProfile, error) {
	var (
		id               uuid.UUID
		legalName        string
		taxID            string
		revenue          decimal.Decimal
		netIncome        decimal.Decimal
		assets           decimal.Decimal
		liabilities      decimal.Decimal
		lastScore        *int
		lastModelVersion *string
		lastScoredAt     *time.Time
		externalSyncedAt *time.Time
		version          int
		createdAt        time.Time
		updatedAt        time.Time
	)

	err := row.Scan(
		&id, &legalName, &taxID, &revenue, &netIncome, &assets, &liabilities,
		&lastScore, &lastModelVersion, &lastScoredAt, &externalSyncedAt,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("company profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan company profile: %w", err)
	}

	return model.ReconstructCompanyCreditProfile(
		id, legalName, taxID, revenue, netIncome, assets, liabilities,
		lastScore, stringValue(lastModelVersion), lastScoredAt, externalSyncedAt,
		version, createdAt, updatedAt,
	), nil
}
