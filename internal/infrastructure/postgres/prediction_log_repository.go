package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	pkgpostgres "github.com/Nozima-Rustamova/credit-ML/pkg/postgres"
)

// PredictionLogRepository implements port.PredictionLogRepository using
// PostgreSQL. The table is append-only; rows are only ever removed by
// PurgeOlderThan.
type PredictionLogRepository struct {
	db pkgpostgres.Querier
}

// NewPredictionLogRepository creates a new PostgreSQL-backed prediction log
// repository.
func NewPredictionLogRepository(db pkgpostgres.Querier) *PredictionLogRepository {
	return &PredictionLogRepository{db: db}
}

// Record appends an audit entry.
func (r *PredictionLogRepository) Record(ctx context.Context, entry *model.PredictionLog) error {
	explanation, err := marshalExplanation(entry.Explanation())
	if err != nil {
		return err
	}

	var features []byte
	if len(entry.Features()) > 0 {
		features, err = json.Marshal(entry.Features())
		if err != nil {
			return fmt.Errorf("failed to marshal features: %w", err)
		}
	}

	var metadata []byte
	if len(entry.Metadata()) > 0 {
		metadata, err = json.Marshal(entry.Metadata())
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	query := `
		INSERT INTO prediction_logs (
			id, subject_type, subject_id, request_id, score, model_version,
			explanation, features, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.Exec(ctx, query,
		entry.ID(),
		entry.SubjectType().String(),
		nullableUUID(entry.SubjectID()),
		entry.RequestID(),
		entry.Score(),
		entry.ModelVersion(),
		explanation,
		features,
		metadata,
		entry.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to record prediction: %w", err)
	}
	return nil
}

// FindBySubject retrieves entries for one subject, newest first.
func (r *PredictionLogRepository) FindBySubject(ctx context.Context, subjectType valueobject.ApplicantType, subjectID uuid.UUID, limit, offset int) ([]*model.PredictionLog, error) {
	query := `
		SELECT id, subject_type, subject_id, request_id, score, model_version,
			explanation, features, metadata, created_at
		FROM prediction_logs
		WHERE subject_type = $1 AND subject_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, subjectType.String(), subjectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction logs: %w", err)
	}
	defer rows.Close()

	var entries []*model.PredictionLog
	for rows.Next() {
		entry, err := scanPredictionLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// PurgeOlderThan deletes entries created before the cutoff and returns how
// many were removed.
func (r *PredictionLogRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM prediction_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge prediction logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPredictionLog(row pgx.Row) (*model.PredictionLog, error) {
	var (
		id             uuid.UUID
		subjectTypeStr string
		subjectID      *uuid.UUID
		requestID      *uuid.UUID
		score          int
		modelVersion   string
		explanationRaw []byte
		featuresRaw    []byte
		metadataRaw    []byte
		createdAt      time.Time
	)

	err := row.Scan(
		&id, &subjectTypeStr, &subjectID, &requestID, &score, &modelVersion,
		&explanationRaw, &featuresRaw, &metadataRaw, &createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan prediction log: %w", err)
	}

	subjectType, err := valueobject.ApplicantTypeFromString(subjectTypeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subject type: %w", err)
	}
	explanation, err := unmarshalExplanation(explanationRaw)
	if err != nil {
		return nil, err
	}

	var features service.FeatureSet
	if len(featuresRaw) > 0 {
		if err := json.Unmarshal(featuresRaw, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal features: %w", err)
		}
	}

	var metadata map[string]any
	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return model.ReconstructPredictionLog(
		id, subjectType, uuidValue(subjectID), requestID, score, modelVersion,
		explanation, features, metadata, createdAt,
	), nil
}
