package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nozima-Rustamova/credit-ML/pkg/events"
)

const (
	// EventTypeCreditRequestScored is emitted every time a credit request is scored.
	EventTypeCreditRequestScored = "credit.request.scored"

	// EventTypeLowScoreDetected is emitted when a scored request falls below
	// the low-score alert threshold.
	EventTypeLowScoreDetected = "credit.low_score.detected"
)

// LowScoreThreshold is the score below which a LowScoreDetected event fires.
const LowScoreThreshold = 30

// CreditRequestScored is published when a credit request has been scored,
// whether by the rule engine or by a statistical model.
type CreditRequestScored struct {
	events.BaseEvent
	RequestID     uuid.UUID `json:"request_id"`
	ApplicantType string    `json:"applicant_type"`
	Score         int       `json:"score"`
	ModelVersion  string    `json:"model_version"`
	ScoredAt      time.Time `json:"scored_at"`
}

// NewCreditRequestScored constructs a CreditRequestScored event.
func NewCreditRequestScored(requestID uuid.UUID, applicantType string, score int, modelVersion string, scoredAt time.Time) CreditRequestScored {
	return CreditRequestScored{
		BaseEvent:     events.NewBaseEvent(EventTypeCreditRequestScored, requestID, "CreditRequest"),
		RequestID:     requestID,
		ApplicantType: applicantType,
		Score:         score,
		ModelVersion:  modelVersion,
		ScoredAt:      scoredAt,
	}
}

// LowScoreDetected is published when a request scores below LowScoreThreshold,
// so downstream consumers can flag the applicant for manual review.
type LowScoreDetected struct {
	events.BaseEvent
	RequestID     uuid.UUID `json:"request_id"`
	ApplicantType string    `json:"applicant_type"`
	Score         int       `json:"score"`
	Threshold     int       `json:"threshold"`
	DetectedAt    time.Time `json:"detected_at"`
}

// NewLowScoreDetected constructs a LowScoreDetected event.
func NewLowScoreDetected(requestID uuid.UUID, applicantType string, score int, detectedAt time.Time) LowScoreDetected {
	return LowScoreDetected{
		BaseEvent:     events.NewBaseEvent(EventTypeLowScoreDetected, requestID, "CreditRequest"),
		RequestID:     requestID,
		ApplicantType: applicantType,
		Score:         score,
		Threshold:     LowScoreThreshold,
		DetectedAt:    detectedAt,
	}
}
