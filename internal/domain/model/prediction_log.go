package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
)

// PredictionLog is an append-only audit entry for a single scoring run. Once
// written it is never updated; entries leave the system only through the
// retention purge.
type PredictionLog struct {
	id           uuid.UUID
	subjectType  valueobject.ApplicantType
	subjectID    uuid.UUID
	requestID    *uuid.UUID
	score        int
	modelVersion string
	explanation  valueobject.Explanation
	features     service.FeatureSet
	metadata     map[string]any
	createdAt    time.Time
}

// NewPredictionLog creates an audit entry for a completed scoring run.
// The subject reference is weak: subjectID may be uuid.Nil when the scoring
// was manual or the subject was never persisted, and the entry stays valid
// after the subject is deleted. features is the raw input snapshot, kept
// verbatim for later review; metadata carries optional caller context and
// may be nil.
func NewPredictionLog(
	subjectType valueobject.ApplicantType,
	subjectID uuid.UUID,
	requestID *uuid.UUID,
	score int,
	modelVersion string,
	explanation valueobject.Explanation,
	features service.FeatureSet,
	metadata map[string]any,
) (*PredictionLog, error) {
	if subjectType.IsZero() {
		return nil, valueobject.ErrUnknownApplicantType
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	if modelVersion == "" {
		return nil, fmt.Errorf("model version is required")
	}

	return &PredictionLog{
		id:           uuid.New(),
		subjectType:  subjectType,
		subjectID:    subjectID,
		requestID:    requestID,
		score:        score,
		modelVersion: modelVersion,
		explanation:  explanation.Clone(),
		features:     features,
		metadata:     metadata,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructPredictionLog rebuilds an audit entry from persisted data.
func ReconstructPredictionLog(
	id uuid.UUID,
	subjectType valueobject.ApplicantType,
	subjectID uuid.UUID,
	requestID *uuid.UUID,
	score int,
	modelVersion string,
	explanation valueobject.Explanation,
	features service.FeatureSet,
	metadata map[string]any,
	createdAt time.Time,
) *PredictionLog {
	return &PredictionLog{
		id:           id,
		subjectType:  subjectType,
		subjectID:    subjectID,
		requestID:    requestID,
		score:        score,
		modelVersion: modelVersion,
		explanation:  explanation,
		features:     features,
		metadata:     metadata,
		createdAt:    createdAt,
	}
}

func (l *PredictionLog) ID() uuid.UUID                            { return l.id }
func (l *PredictionLog) SubjectType() valueobject.ApplicantType   { return l.subjectType }
func (l *PredictionLog) SubjectID() uuid.UUID                     { return l.subjectID }
func (l *PredictionLog) RequestID() *uuid.UUID                    { return l.requestID }
func (l *PredictionLog) Score() int                               { return l.score }
func (l *PredictionLog) ModelVersion() string                     { return l.modelVersion }
func (l *PredictionLog) Explanation() valueobject.Explanation     { return l.explanation.Clone() }
func (l *PredictionLog) Features() service.FeatureSet             { return l.features }
func (l *PredictionLog) Metadata() map[string]any                 { return l.metadata }
func (l *PredictionLog) CreatedAt() time.Time                     { return l.createdAt }
