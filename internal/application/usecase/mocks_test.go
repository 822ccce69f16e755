package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	"github.com/Nozima-Rustamova/credit-ML/pkg/events"
)

// --- Mock implementations ---

type mockCreditRequestRepository struct {
	saved       []*model.CreditRequest
	pending     []*model.CreditRequest
	saveFunc    func(ctx context.Context, request *model.CreditRequest) error
	findByID    func(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error)
	pendingFunc func(ctx context.Context, limit int) ([]*model.CreditRequest, error)
}

func (m *mockCreditRequestRepository) Save(ctx context.Context, request *model.CreditRequest) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, request)
	}
	m.saved = append(m.saved, request)
	return nil
}

func (m *mockCreditRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, fmt.Errorf("credit request not found")
}

func (m *mockCreditRequestRepository) FindPending(ctx context.Context, limit int) ([]*model.CreditRequest, error) {
	if m.pendingFunc != nil {
		return m.pendingFunc(ctx, limit)
	}
	if limit < len(m.pending) {
		return m.pending[:limit], nil
	}
	return m.pending, nil
}

type mockIndividualProfileRepository struct {
	profiles map[uuid.UUID]*model.IndividualCreditProfile
	stale    []*model.IndividualCreditProfile
	saveErr  error
	saves    int
}

func (m *mockIndividualProfileRepository) Save(_ context.Context, profile *model.IndividualCreditProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	if m.profiles == nil {
		m.profiles = map[uuid.UUID]*model.IndividualCreditProfile{}
	}
	m.profiles[profile.ID()] = profile
	return nil
}

func (m *mockIndividualProfileRepository) FindByID(_ context.Context, id uuid.UUID) (*model.IndividualCreditProfile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("individual profile not found")
}

func (m *mockIndividualProfileRepository) FindSyncedBefore(_ context.Context, _ time.Time, limit int) ([]*model.IndividualCreditProfile, error) {
	if limit < len(m.stale) {
		return m.stale[:limit], nil
	}
	return m.stale, nil
}

type mockCompanyProfileRepository struct {
	profiles map[uuid.UUID]*model.CompanyCreditProfile
	stale    []*model.CompanyCreditProfile
	saveErr  error
	saves    int
}

func (m *mockCompanyProfileRepository) Save(_ context.Context, profile *model.CompanyCreditProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	if m.profiles == nil {
		m.profiles = map[uuid.UUID]*model.CompanyCreditProfile{}
	}
	m.profiles[profile.ID()] = profile
	return nil
}

func (m *mockCompanyProfileRepository) FindByID(_ context.Context, id uuid.UUID) (*model.CompanyCreditProfile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("company profile not found")
}

func (m *mockCompanyProfileRepository) FindSyncedBefore(_ context.Context, _ time.Time, limit int) ([]*model.CompanyCreditProfile, error) {
	if limit < len(m.stale) {
		return m.stale[:limit], nil
	}
	return m.stale, nil
}

type mockPredictionLogRepository struct {
	recorded   []*model.PredictionLog
	recordErr  error
	entries    []*model.PredictionLog
	purged     int64
	purgeErr   error
	lastCutoff time.Time
}

func (m *mockPredictionLogRepository) Record(_ context.Context, entry *model.PredictionLog) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.recorded = append(m.recorded, entry)
	return nil
}

func (m *mockPredictionLogRepository) FindBySubject(_ context.Context, _ valueobject.ApplicantType, _ uuid.UUID, limit, offset int) ([]*model.PredictionLog, error) {
	if offset >= len(m.entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.entries) {
		end = len(m.entries)
	}
	return m.entries[offset:end], nil
}

func (m *mockPredictionLogRepository) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	if m.purgeErr != nil {
		return 0, m.purgeErr
	}
	m.lastCutoff = cutoff
	return m.purged, nil
}

type mockExternalRecordRepository struct {
	saved   []*model.ExternalRecord
	saveErr error
}

func (m *mockExternalRecordRepository) Save(_ context.Context, record *model.ExternalRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, record)
	return nil
}

func (m *mockExternalRecordRepository) Find(_ context.Context, source, subjectKey string) (*model.ExternalRecord, error) {
	for _, r := range m.saved {
		if r.Source() == source && r.SubjectKey() == subjectKey {
			return r, nil
		}
	}
	return nil, nil
}

type mockEventPublisher struct {
	published  []events.DomainEvent
	publishErr error
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockSoliqClient struct {
	record port.TaxRecord
	err    error
}

func (m *mockSoliqClient) FetchTaxRecord(_ context.Context, taxpayerID string) (port.TaxRecord, error) {
	if m.err != nil {
		return port.TaxRecord{}, m.err
	}
	rec := m.record
	rec.TaxpayerID = taxpayerID
	return rec, nil
}

type mockKadastrClient struct {
	record port.LandRecord
	err    error
}

func (m *mockKadastrClient) FetchLandRecord(_ context.Context, subjectKey string) (port.LandRecord, error) {
	if m.err != nil {
		return port.LandRecord{}, m.err
	}
	rec := m.record
	rec.SubjectKey = subjectKey
	return rec, nil
}

// --- Fixtures ---

func newAuditEntry(subjectID uuid.UUID, score int) (*model.PredictionLog, error) {
	return model.NewPredictionLog(
		valueobject.ApplicantIndividual, subjectID, nil,
		score, "rule/v1", nil, nil, nil,
	)
}

func newIndividualProfile() *model.IndividualCreditProfile {
	creditScore := 640
	p, err := model.NewIndividualCreditProfile(
		"Aziza Karimova", "AB1234567",
		decimal.NewFromInt(1_000_000),
		decimal.NewFromInt(100_000),
		decimal.NewFromInt(200_000),
		&creditScore,
		false,
	)
	if err != nil {
		panic(err)
	}
	return p
}

func newCompanyProfile() *model.CompanyCreditProfile {
	p, err := model.NewCompanyCreditProfile(
		"Tashkent Textiles LLC", "305123456",
		decimal.NewFromInt(5_000_000),
		decimal.NewFromInt(200_000),
		decimal.NewFromInt(10_000_000),
		decimal.NewFromInt(2_000_000),
	)
	if err != nil {
		panic(err)
	}
	return p
}
