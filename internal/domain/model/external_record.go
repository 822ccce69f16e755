package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// External record sources.
const (
	SourceSoliq   = "soliq"
	SourceKadastr = "kadastr"
)

// ExternalRecord is a cached snapshot of a government registry lookup
// (tax data from Soliq, land data from Kadastr), keyed by source plus the
// identifier used for the lookup.
type ExternalRecord struct {
	id         uuid.UUID
	source     string
	subjectKey string
	payload    map[string]any
	fetchedAt  time.Time
}

// NewExternalRecord caches a fresh registry response.
func NewExternalRecord(source, subjectKey string, payload map[string]any, fetchedAt time.Time) (*ExternalRecord, error) {
	if source != SourceSoliq && source != SourceKadastr {
		return nil, fmt.Errorf("unknown external record source: %s", source)
	}
	if subjectKey == "" {
		return nil, fmt.Errorf("subject key is required")
	}
	return &ExternalRecord{
		id:         uuid.New(),
		source:     source,
		subjectKey: subjectKey,
		payload:    payload,
		fetchedAt:  fetchedAt,
	}, nil
}

// ReconstructExternalRecord rebuilds a cached record from persisted data.
func ReconstructExternalRecord(id uuid.UUID, source, subjectKey string, payload map[string]any, fetchedAt time.Time) *ExternalRecord {
	return &ExternalRecord{
		id:         id,
		source:     source,
		subjectKey: subjectKey,
		payload:    payload,
		fetchedAt:  fetchedAt,
	}
}

// StaleAt reports whether the record is older than ttl at the given time.
func (r *ExternalRecord) StaleAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.fetchedAt) > ttl
}

func (r *ExternalRecord) ID() uuid.UUID           { return r.id }
func (r *ExternalRecord) Source() string          { return r.source }
func (r *ExternalRecord) SubjectKey() string      { return r.subjectKey }
func (r *ExternalRecord) Payload() map[string]any { return r.payload }
func (r *ExternalRecord) FetchedAt() time.Time    { return r.fetchedAt }
