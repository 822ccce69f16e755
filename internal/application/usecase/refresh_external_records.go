package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
)

// RefreshExternalRecords re-fetches government registry data for profiles
// whose cached records are older than the TTL. Bounded batch, fail-soft per
// profile.
type RefreshExternalRecords struct {
	individuals port.IndividualProfileRepository
	companies   port.CompanyProfileRepository
	records     port.ExternalRecordRepository
	soliq       port.SoliqClient
	kadastr     port.KadastrClient
	ttl         time.Duration
	batchSize   int
	logger      *slog.Logger
}

// NewRefreshExternalRecords creates a new RefreshExternalRecords use case.
func NewRefreshExternalRecords(
	individuals port.IndividualProfileRepository,
	companies port.CompanyProfileRepository,
	records port.ExternalRecordRepository,
	soliq port.SoliqClient,
	kadastr port.KadastrClient,
	ttl time.Duration,
	batchSize int,
	logger *slog.Logger,
) *RefreshExternalRecords {
	if batchSize <= 0 {
		batchSize = 50
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshExternalRecords{
		individuals: individuals,
		companies:   companies,
		records:     records,
		soliq:       soliq,
		kadastr:     kadastr,
		ttl:         ttl,
		batchSize:   batchSize,
		logger:      logger,
	}
}

// RefreshResult summarizes one refresh run.
type RefreshResult struct {
	Individuals int
	Companies   int
	Failed      int
}

// Execute refreshes one batch of stale profiles of each kind.
func (uc *RefreshExternalRecords) Execute(ctx context.Context) (RefreshResult, error) {
	cutoff := time.Now().UTC().Add(-uc.ttl)
	var result RefreshResult

	individuals, err := uc.individuals.FindSyncedBefore(ctx, cutoff, uc.batchSize)
	if err != nil {
		return result, fmt.Errorf("failed to select stale individual profiles: %w", err)
	}
	for _, profile := range individuals {
		if err := uc.refreshIndividual(ctx, profile); err != nil {
			result.Failed++
			uc.logger.WarnContext(ctx, "individual refresh failed",
				slog.String("profile_id", profile.ID().String()),
				slog.String("error", err.Error()))
			continue
		}
		result.Individuals++
	}

	companies, err := uc.companies.FindSyncedBefore(ctx, cutoff, uc.batchSize)
	if err != nil {
		return result, fmt.Errorf("failed to select stale company profiles: %w", err)
	}
	for _, profile := range companies {
		if err := uc.refreshCompany(ctx, profile); err != nil {
			result.Failed++
			uc.logger.WarnContext(ctx, "company refresh failed",
				slog.String("profile_id", profile.ID().String()),
				slog.String("error", err.Error()))
			continue
		}
		result.Companies++
	}

	uc.logger.InfoContext(ctx, "external record refresh complete",
		slog.Int("individuals", result.Individuals),
		slog.Int("companies", result.Companies),
		slog.Int("failed", result.Failed))
	return result, nil
}

func (uc *RefreshExternalRecords) refreshIndividual(ctx context.Context, profile *model.IndividualCreditProfile) error {
	tax, err := uc.soliq.FetchTaxRecord(ctx, profile.PassportNumber())
	if err != nil {
		return fmt.Errorf("soliq lookup failed: %w", err)
	}
	land, err := uc.kadastr.FetchLandRecord(ctx, profile.PassportNumber())
	if err != nil {
		return fmt.Errorf("kadastr lookup failed: %w", err)
	}

	now := time.Now().UTC()
	uc.cache(ctx, model.SourceSoliq, profile.PassportNumber(), map[string]any{
		"declared_income": tax.DeclaredIncome.String(),
	}, tax.FetchedAt)
	uc.cache(ctx, model.SourceKadastr, profile.PassportNumber(), map[string]any{
		"cadastral_value": land.CadastralValue.String(),
		"parcel_count":    land.ParcelCount,
	}, land.FetchedAt)

	profile.ApplyExternalRecords(tax.DeclaredIncome, land.CadastralValue, now)
	if err := uc.individuals.Save(ctx, profile); err != nil {
		return fmt.Errorf("failed to save refreshed profile: %w", err)
	}
	return nil
}

func (uc *RefreshExternalRecords) refreshCompany(ctx context.Context, profile *model.CompanyCreditProfile) error {
	tax, err := uc.soliq.FetchTaxRecord(ctx, profile.TaxID())
	if err != nil {
		return fmt.Errorf("soliq lookup failed: %w", err)
	}

	uc.cache(ctx, model.SourceSoliq, profile.TaxID(), map[string]any{
		"revenue":    tax.Revenue.String(),
		"net_income": tax.NetIncome.String(),
	}, tax.FetchedAt)

	profile.ApplyExternalRecords(tax.Revenue, tax.NetIncome, time.Now().UTC())
	if err := uc.companies.Save(ctx, profile); err != nil {
		return fmt.Errorf("failed to save refreshed profile: %w", err)
	}
	return nil
}

// cache stores the raw registry response; a cache failure is not worth
// failing the refresh for.
func (uc *RefreshExternalRecords) cache(ctx context.Context, source, subjectKey string, payload map[string]any, fetchedAt time.Time) {
	record, err := model.NewExternalRecord(source, subjectKey, payload, fetchedAt)
	if err == nil {
		err = uc.records.Save(ctx, record)
	}
	if err != nil {
		uc.logger.WarnContext(ctx, "external record cache write failed",
			slog.String("source", source),
			slog.String("subject_key", subjectKey),
			slog.String("error", err.Error()))
	}
}
