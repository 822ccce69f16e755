package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	pkgpostgres "github.com/Nozima-Rustamova/credit-ML/pkg/postgres"
)

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = port.ErrNotFound

// CreditRequestRepository implements port.CreditRequestRepository using
// PostgreSQL.
type CreditRequestRepository struct {
	db pkgpostgres.Querier
}

// NewCreditRequestRepository creates a new PostgreSQL-backed credit request
// repository.
func NewCreditRequestRepository(db pkgpostgres.Querier) *CreditRequestRepository {
	return &CreditRequestRepository{db: db}
}

// Save persists a credit request, upserting on ID.
func (r *CreditRequestRepository) Save(ctx context.Context, request *model.CreditRequest) error {
	explanation, err := marshalExplanation(request.Explanation())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO credit_requests (
			id, applicant_type, subject_id, requested_amount, term_months,
			purpose, status, score, explanation, model_version, scored_at,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			score = EXCLUDED.score,
			explanation = EXCLUDED.explanation,
			model_version = EXCLUDED.model_version,
			scored_at = EXCLUDED.scored_at,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.Exec(ctx, query,
		request.ID(),
		request.ApplicantType().String(),
		request.SubjectID(),
		request.RequestedAmount(),
		request.TermMonths(),
		request.Purpose(),
		request.Status().String(),
		request.Score(),
		explanation,
		nullableString(request.ModelVersion()),
		request.ScoredAt(),
		request.Version(),
		request.CreatedAt(),
		request.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save credit request: %w", err)
	}
	return nil
}

const creditRequestColumns = `
	id, applicant_type, subject_id, requested_amount, term_months,
	purpose, status, score, explanation, model_version, scored_at,
	version, created_at, updated_at
`

// FindByID retrieves a credit request by its unique identifier.
func (r *CreditRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error) {
	query := `SELECT ` + creditRequestColumns + ` FROM credit_requests WHERE id = $1`
	return scanCreditRequest(r.db.QueryRow(ctx, query, id))
}

// FindPending retrieves up to limit pending requests, oldest first.
func (r *CreditRequestRepository) FindPending(ctx context.Context, limit int) ([]*model.CreditRequest, error) {
	query := `
		SELECT ` + creditRequestColumns + `
		FROM credit_requests
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.CreditRequest
	for rows.Next() {
		request, err := scanCreditRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func scanCreditRequest(row pgx.Row) (*model.CreditRequest, error) {
	var (
		id               uuid.UUID
		applicantTypeStr string
		subjectID        uuid.UUID
		requestedAmount  decimal.Decimal
		termMonths       int
		purpose          string
		statusStr        string
		score            *int
		explanationRaw   []byte
		modelVersion     *string
		scoredAt         *time.Time
		version          int
		createdAt        time.Time
		updatedAt        time.Time
	)

	err := row.Scan(
		&id, &applicantTypeStr, &subjectID, &requestedAmount, &termMonths,
		&purpose, &statusStr, &score, &explanationRaw, &modelVersion, &scoredAt,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("credit request: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan credit request: %w", err)
	}

	applicantType, err := valueobject.ApplicantTypeFromString(applicantTypeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse applicant type: %w", err)
	}
	status, err := valueobject.RequestStatusFromString(statusStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	explanation, err := unmarshalExplanation(explanationRaw)
	if err != nil {
		return nil, err
	}

	return model.ReconstructCreditRequest(
		id, applicantType, subjectID, requestedAmount, termMonths, purpose,
		status, score, explanation, stringValue(modelVersion), scoredAt,
		version, createdAt, updatedAt,
	), nil
}

func marshalExplanation(explanation valueobject.Explanation) ([]byte, error) {
	if len(explanation) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(explanation)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal explanation: %w", err)
	}
	return raw, nil
}

func unmarshalExplanation(raw []byte) (valueobject.Explanation, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var explanation valueobject.Explanation
	if err := json.Unmarshal(raw, &explanation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal explanation: %w", err)
	}
	return explanation, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func uuidValue(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
