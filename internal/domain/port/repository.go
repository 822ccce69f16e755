package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	"github.com/Nozima-Rustamova/credit-ML/pkg/events"
)

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("not found")

// CreditRequestRepository defines the persistence port for credit requests.
type CreditRequestRepository interface {
	// Save persists a new or updated credit request.
	Save(ctx context.Context, request *model.CreditRequest) error

	// FindByID retrieves a request by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error)

	// FindPending retrieves up to limit pending requests, oldest first.
	FindPending(ctx context.Context, limit int) ([]*model.CreditRequest, error)
}

// IndividualProfileRepository defines the persistence port for individual
// credit profiles.
type IndividualProfileRepository interface {
	Save(ctx context.Context, profile *model.IndividualCreditProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.IndividualCreditProfile, error)

	// FindSyncedBefore retrieves up to limit profiles whose external data was
	// last synced before the cutoff (never-synced profiles first).
	FindSyncedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*model.IndividualCreditProfile, error)
}

// CompanyProfileRepository defines the persistence port for company credit
// profiles.
type CompanyProfileRepository interface {
	Save(ctx context.Context, profile *model.CompanyCreditProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CompanyCreditProfile, error)
	FindSyncedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*model.CompanyCreditProfile, error)
}

// PredictionLogRepository defines the persistence port for the scoring audit
// log. Entries are append-only: there is no update operation.
type PredictionLogRepository interface {
	// Record appends an audit entry.
	Record(ctx context.Context, entry *model.PredictionLog) error

	// FindBySubject retrieves entries for one subject, newest first.
	FindBySubject(ctx context.Context, subjectType valueobject.ApplicantType, subjectID uuid.UUID, limit, offset int) ([]*model.PredictionLog, error)

	// PurgeOlderThan deletes entries created before the cutoff and returns
	// how many were removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ExternalRecordRepository caches government registry lookups.
type ExternalRecordRepository interface {
	// Save inserts or replaces the cached record for (source, subjectKey).
	Save(ctx context.Context, record *model.ExternalRecord) error

	// Find retrieves the cached record, or nil when none exists.
	Find(ctx context.Context, source, subjectKey string) (*model.ExternalRecord, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
