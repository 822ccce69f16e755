package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
)

// CompanyCreditProfile holds the financial state of a company applying for credit.
type CompanyCreditProfile struct {
	id               uuid.UUID
	legalName        string
	taxID            string
	revenue          decimal.Decimal
	netIncome        decimal.Decimal
	assets           decimal.Decimal
	liabilities      decimal.Decimal
	lastScore        *int
	lastModelVersion string
	lastScoredAt     *time.Time
	externalSyncedAt *time.Time
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewCompanyCreditProfile creates a profile for a new corporate applicant.
// Net income may be negative; revenue, assets and liabilities may not.
func NewCompanyCreditProfile(
	legalName, taxID string,
	revenue, netIncome, assets, liabilities decimal.Decimal,
) (*CompanyCreditProfile, error) {
	if legalName == "" {
		return nil, fmt.Errorf("legal name is required")
	}
	if taxID == "" {
		return nil, fmt.Errorf("tax ID is required")
	}
	if revenue.IsNegative() {
		return nil, fmt.Errorf("revenue must not be negative")
	}
	if assets.IsNegative() {
		return nil, fmt.Errorf("assets must not be negative")
	}
	if liabilities.IsNegative() {
		return nil, fmt.Errorf("liabilities must not be negative")
	}

	now := time.Now().UTC()

	return &CompanyCreditProfile{
		id:          uuid.New(),
		legalName:   legalName,
		taxID:       taxID,
		revenue:     revenue,
		netIncome:   netIncome,
		assets:      assets,
		liabilities: liabilities,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructCompanyCreditProfile rebuilds a profile from persisted data
// (no validation, no events).
func ReconstructCompanyCreditProfile(
	id uuid.UUID,
	legalName, taxID string,
	revenue, netIncome, assets, liabilities decimal.Decimal,
	lastScore *int,
	lastModelVersion string,
	lastScoredAt, externalSyncedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *CompanyCreditProfile {
	return &CompanyCreditProfile{
		id:               id,
		legalName:        legalName,
		taxID:            taxID,
		revenue:          revenue,
		netIncome:        netIncome,
		assets:           assets,
		liabilities:      liabilities,
		lastScore:        lastScore,
		lastModelVersion: lastModelVersion,
		lastScoredAt:     lastScoredAt,
		externalSyncedAt: externalSyncedAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Features builds the scoring feature set for this profile.
func (p *CompanyCreditProfile) Features(requestedAmount decimal.Decimal) service.FeatureSet {
	return service.FeatureSet{
		service.FeatureRevenue:         p.revenue.InexactFloat64(),
		service.FeatureNetIncome:       p.netIncome.InexactFloat64(),
		service.FeatureAssets:          p.assets.InexactFloat64(),
		service.FeatureLiabilities:     p.liabilities.InexactFloat64(),
		service.FeatureRequestedAmount: requestedAmount.InexactFloat64(),
	}
}

// RecordScore stores the latest scoring outcome on the profile.
func (p *CompanyCreditProfile) RecordScore(score int, modelVersion string, scoredAt time.Time) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	p.lastScore = &score
	p.lastModelVersion = modelVersion
	p.lastScoredAt = &scoredAt
	p.updatedAt = time.Now().UTC()
	p.version++
	return nil
}

// ApplyExternalRecords merges tax registry data into the profile.
func (p *CompanyCreditProfile) ApplyExternalRecords(revenue, netIncome decimal.Decimal, syncedAt time.Time) {
	p.revenue = revenue
	p.netIncome = netIncome
	p.externalSyncedAt = &syncedAt
	p.updatedAt = time.Now().UTC()
	p.version++
}

func (p *CompanyCreditProfile) ID() uuid.UUID                 { return p.id }
func (p *CompanyCreditProfile) LegalName() string             { return p.legalName }
func (p *CompanyCreditProfile) TaxID() string                 { return p.taxID }
func (p *CompanyCreditProfile) Revenue() decimal.Decimal      { return p.revenue }
func (p *CompanyCreditProfile) NetIncome() decimal.Decimal    { return p.netIncome }
func (p *CompanyCreditProfile) Assets() decimal.Decimal       { return p.assets }
func (p *CompanyCreditProfile) Liabilities() decimal.Decimal  { return p.liabilities }
func (p *CompanyCreditProfile) LastScore() *int               { return p.lastScore }
func (p *CompanyCreditProfile) LastModelVersion() string      { return p.lastModelVersion }
func (p *CompanyCreditProfile) LastScoredAt() *time.Time      { return p.lastScoredAt }
func (p *CompanyCreditProfile) ExternalSyncedAt() *time.Time  { return p.externalSyncedAt }
func (p *CompanyCreditProfile) Version() int                  { return p.version }
func (p *CompanyCreditProfile) CreatedAt() time.Time          { return p.createdAt }
func (p *CompanyCreditProfile) UpdatedAt() time.Time          { return p.updatedAt }
