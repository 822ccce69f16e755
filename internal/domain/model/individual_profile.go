package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
)

// IndividualCreditProfile holds the financial state of a person applying for
// credit. It is the source the scoring feature set is built from.
type IndividualCreditProfile struct {
	id                 uuid.UUID
	fullName           string
	passportNumber     string
	yearlyIncome       decimal.Decimal
	existingDebt       decimal.Decimal
	collateralValue    decimal.Decimal
	creditHistoryScore *int
	criminalHistory    bool
	lastScore          *int
	lastModelVersion   string
	lastScoredAt       *time.Time
	externalSyncedAt   *time.Time
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewIndividualCreditProfile creates a profile for a new applicant.
func NewIndividualCreditProfile(
	fullName, passportNumber string,
	yearlyIncome, existingDebt, collateralValue decimal.Decimal,
	creditHistoryScore *int,
	criminalHistory bool,
) (*IndividualCreditProfile, error) {
	if fullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if passportNumber == "" {
		return nil, fmt.Errorf("passport number is required")
	}
	if yearlyIncome.IsNegative() {
		return nil, fmt.Errorf("yearly income must not be negative")
	}
	if existingDebt.IsNegative() {
		return nil, fmt.Errorf("existing debt must not be negative")
	}
	if collateralValue.IsNegative() {
		return nil, fmt.Errorf("collateral value must not be negative")
	}
	if creditHistoryScore != nil && (*creditHistoryScore < 300 || *creditHistoryScore > 850) {
		return nil, fmt.Errorf("credit history score must be between 300 and 850, got %d", *creditHistoryScore)
	}

	now := time.Now().UTC()

	return &IndividualCreditProfile{
		id:                 uuid.New(),
		fullName:           fullName,
		passportNumber:     passportNumber,
		yearlyIncome:       yearlyIncome,
		existingDebt:       existingDebt,
		collateralValue:    collateralValue,
		creditHistoryScore: creditHistoryScore,
		criminalHistory:    criminalHistory,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructIndividualCreditProfile rebuilds a profile from persisted data
// (no validation, no events).
func ReconstructIndividualCreditProfile(
	id uuid.UUID,
	fullName, passportNumber string,
	yearlyIncome, existingDebt, collateralValue decimal.Decimal,
	creditHistoryScore *int,
	criminalHistory bool,
	lastScore *int,
	lastModelVersion string,
	lastScoredAt, externalSyncedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *IndividualCreditProfile {
	return &IndividualCreditProfile{
		id:                 id,
		fullName:           fullName,
		passportNumber:     passportNumber,
		yearlyIncome:       yearlyIncome,
		existingDebt:       existingDebt,
		collateralValue:    collateralValue,
		creditHistoryScore: creditHistoryScore,
		criminalHistory:    criminalHistory,
		lastScore:          lastScore,
		lastModelVersion:   lastModelVersion,
		lastScoredAt:       lastScoredAt,
		externalSyncedAt:   externalSyncedAt,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Features builds the scoring feature set for this profile. requestedAmount
// comes from the credit request being scored, not from the profile itself.
func (p *IndividualCreditProfile) Features(requestedAmount decimal.Decimal) service.FeatureSet {
	f := service.FeatureSet{
		service.FeatureYearlyIncome:    p.yearlyIncome.InexactFloat64(),
		service.FeatureExistingDebt:    p.existingDebt.InexactFloat64(),
		service.FeatureRequestedAmount: requestedAmount.InexactFloat64(),
		service.FeatureCollateralValue: p.collateralValue.InexactFloat64(),
		service.FeatureCriminalHistory: p.criminalHistory,
	}
	if p.creditHistoryScore != nil {
		f[service.FeatureCreditHistoryScore] = *p.creditHistoryScore
	}
	return f
}

// RecordScore stores the latest scoring outcome on the profile.
func (p *IndividualCreditProfile) RecordScore(score int, modelVersion string, scoredAt time.Time) error {
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

// ApplyExternalRecords merges government registry data into the profile:
// declared income from Soliq and land holdings from Kadastr.
func (p *IndividualCreditProfile) ApplyExternalRecords(yearlyIncome, collateralValue decimal.Decimal, syncedAt time.Time) {
	p.yearlyIncome = yearlyIncome
	p.collateralValue = collateralValue
	p.externalSyncedAt = &syncedAt
	p.updatedAt = time.Now().UTC()
	p.version++
}

func (p *IndividualCreditProfile) ID() uuid.UUID                   { return p.id }
func (p *IndividualCreditProfile) FullName() string                { return p.fullName }
func (p *IndividualCreditProfile) PassportNumber() string          { return p.passportNumber }
func (p *IndividualCreditProfile) YearlyIncome() decimal.Decimal   { return p.yearlyIncome }
func (p *IndividualCreditProfile) ExistingDebt() decimal.Decimal   { return p.existingDebt }
func (p *IndividualCreditProfile) CollateralValue() decimal.Decimal { return p.collateralValue }
func (p *IndividualCreditProfile) CreditHistoryScore() *int        { return p.creditHistoryScore }
func (p *IndividualCreditProfile) CriminalHistory() bool           { return p.criminalHistory }
func (p *IndividualCreditProfile) LastScore() *int                 { return p.lastScore }
func (p *IndividualCreditProfile) LastModelVersion() string        { return p.lastModelVersion }
func (p *IndividualCreditProfile) LastScoredAt() *time.Time        { return p.lastScoredAt }
func (p *IndividualCreditProfile) ExternalSyncedAt() *time.Time    { return p.externalSyncedAt }
func (p *IndividualCreditProfile) Version() int                    { return p.version }
func (p *IndividualCreditProfile) CreatedAt() time.Time            { return p.createdAt }
func (p *IndividualCreditProfile) UpdatedAt() time.Time            { return p.updatedAt }
