package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	pkgpostgres "github.com/Nozima-Rustamova/credit-ML/pkg/postgres"
)

// ExternalRecordRepository implements port.ExternalRecordRepository using
// PostgreSQL. One row per (source, subject_key); refreshes replace the row.
type ExternalRecordRepository struct {
	db pkgpostgres.Querier
}

// NewExternalRecordRepository creates a new PostgreSQL-backed external
// record repository.
func NewExternalRecordRepository(db pkgpostgres.Querier) *ExternalRecordRepository {
	return &ExternalRecordRepository{db: db}
}

// Save inserts or replaces the cached record for (source, subjectKey).
func (r *ExternalRecordRepository) Save(ctx context.Context, record *model.ExternalRecord) error {
	var payload []byte
	if record.Payload() != nil {
		var err error
		payload, err = json.Marshal(record.Payload())
		if err != nil {
			return fmt.Errorf("failed to marshal external record payload: %w", err)
		}
	}

	query := `
		INSERT INTO external_records (id, source, subject_key, payload, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (source, subject_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			fetched_at = EXCLUDED.fetched_at
	`

	_, err := r.db.Exec(ctx, query,
		record.ID(), record.Source(), record.SubjectKey(), payload, record.FetchedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save external record: %w", err)
	}
	return nil
}

// Find retrieves the cached record, or nil when none exists.
func (r *ExternalRecordRepository) Find(ctx context.Context, source, subjectKey string) (*model.ExternalRecord, error) {
	query := `
		SELECT id, source, subject_key, payload, fetched_at
		FROM external_records
		WHERE source = $1 AND subject_key = $2
	`

	var (
		id         uuid.UUID
		src        string
		key        string
		payloadRaw []byte
		fetchedAt  time.Time
	)

	err := r.db.QueryRow(ctx, query, source, subjectKey).Scan(&id, &src, &key, &payloadRaw, &fetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan external record: %w", err)
	}

	var payload map[string]any
	if len(payloadRaw) > 0 {
		if err := json.Unmarshal(payloadRaw, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal external record payload: %w", err)
		}
	}

	return model.ReconstructExternalRecord(id, src, key, payload, fetchedAt), nil
}
