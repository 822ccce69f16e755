package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/event"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	"github.com/Nozima-Rustamova/credit-ML/pkg/events"
)

// CreditRequest is the aggregate root for a single credit application. It
// references its applicant profile by id only, so scoring history survives
// profile deletion.
type CreditRequest struct {
	id              uuid.UUID
	applicantType   valueobject.ApplicantType
	subjectID       uuid.UUID
	requestedAmount decimal.Decimal
	termMonths      int
	purpose         string
	status          valueobject.RequestStatus
	score           *int
	explanation     valueobject.Explanation
	modelVersion    string
	scoredAt        *time.Time
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []events.DomainEvent
}

// NewCreditRequest creates a request in PENDING status. The request starts
// unscored; call ApplyScore once the engine has run.
func NewCreditRequest(
	applicantType valueobject.ApplicantType,
	subjectID uuid.UUID,
	requestedAmount decimal.Decimal,
	termMonths int,
	purpose string,
) (*CreditRequest, error) {
	if applicantType.IsZero() {
		return nil, valueobject.ErrUnknownApplicantType
	}
	if subjectID == uuid.Nil {
		return nil, fmt.Errorf("subject ID is required")
	}
	if requestedAmount.IsNegative() || requestedAmount.IsZero() {
		return nil, fmt.Errorf("requested amount must be positive")
	}
	if termMonths <= 0 {
		return nil, fmt.Errorf("term months must be positive")
	}

	now := time.Now().UTC()

	return &CreditRequest{
		id:              uuid.New(),
		applicantType:   applicantType,
		subjectID:       subjectID,
		requestedAmount: requestedAmount,
		termMonths:      termMonths,
		purpose:         purpose,
		status:          valueobject.StatusPending,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructCreditRequest rebuilds a request from persisted data (no
// validation, no events).
func ReconstructCreditRequest(
	id uuid.UUID,
	applicantType valueobject.ApplicantType,
	subjectID uuid.UUID,
	requestedAmount decimal.Decimal,
	termMonths int,
	purpose string,
	status valueobject.RequestStatus,
	score *int,
	explanation valueobject.Explanation,
	modelVersion string,
	scoredAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *CreditRequest {
	return &CreditRequest{
		id:              id,
		applicantType:   applicantType,
		subjectID:       subjectID,
		requestedAmount: requestedAmount,
		termMonths:      termMonths,
		purpose:         purpose,
		status:          status,
		score:           score,
		explanation:     explanation,
		modelVersion:    modelVersion,
		scoredAt:        scoredAt,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ApplyScore records a scoring outcome on the request. This is the core
// domain operation: it emits CreditRequestScored and, below the review
// threshold, LowScoreDetected.
func (r *CreditRequest) ApplyScore(score int, explanation valueobject.Explanation, modelVersion string) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	if modelVersion == "" {
		return fmt.Errorf("model version is required")
	}

	now := time.Now().UTC()
	r.score = &score
	r.explanation = explanation.Clone()
	r.modelVersion = modelVersion
	r.scoredAt = &now
	r.updatedAt = now
	r.version++

	r.domainEvents = append(r.domainEvents, event.NewCreditRequestScored(
		r.id, r.applicantType.String(), score, modelVersion, now,
	))
	if score < event.LowScoreThreshold {
		r.domainEvents = append(r.domainEvents, event.NewLowScoreDetected(
			r.id, r.applicantType.String(), score, now,
		))
	}
	return nil
}

// Approve transitions PENDING -> APPROVED. The request must have been scored.
func (r *CreditRequest) Approve() error {
	if !r.status.IsPending() {
		return valueobject.ErrInvalidStatusTransition
	}
	if r.score == nil {
		return fmt.Errorf("cannot approve an unscored request")
	}
	r.status = valueobject.StatusApproved
	r.updatedAt = time.Now().UTC()
	r.version++
	return nil
}

// Reject transitions PENDING -> REJECTED.
func (r *CreditRequest) Reject() error {
	if !r.status.IsPending() {
		return valueobject.ErrInvalidStatusTransition
	}
	r.status = valueobject.StatusRejected
	r.updatedAt = time.Now().UTC()
	r.version++
	return nil
}

func (r *CreditRequest) ID() uuid.UUID                             { return r.id }
func (r *CreditRequest) ApplicantType() valueobject.ApplicantType  { return r.applicantType }
func (r *CreditRequest) SubjectID() uuid.UUID                      { return r.subjectID }
func (r *CreditRequest) RequestedAmount() decimal.Decimal          { return r.requestedAmount }
func (r *CreditRequest) TermMonths() int                           { return r.termMonths }
func (r *CreditRequest) Purpose() string                           { return r.purpose }
func (r *CreditRequest) Status() valueobject.RequestStatus         { return r.status }
func (r *CreditRequest) Score() *int                               { return r.score }
func (r *CreditRequest) Explanation() valueobject.Explanation      { return r.explanation.Clone() }
func (r *CreditRequest) ModelVersion() string                      { return r.modelVersion }
func (r *CreditRequest) ScoredAt() *time.Time                      { return r.scoredAt }
func (r *CreditRequest) Version() int                              { return r.version }
func (r *CreditRequest) CreatedAt() time.Time                      { return r.createdAt }
func (r *CreditRequest) UpdatedAt() time.Time                      { return r.updatedAt }

// DomainEvents returns events accumulated since the last ClearEvents.
func (r *CreditRequest) DomainEvents() []events.DomainEvent { return r.domainEvents }

// ClearEvents drops accumulated events (call after publishing).
func (r *CreditRequest) ClearEvents() { r.domainEvents = nil }
