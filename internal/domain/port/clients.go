package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TaxRecord is a Soliq tax registry response. Individuals carry a declared
// yearly income; companies carry revenue and net income.
type TaxRecord struct {
	TaxpayerID     string
	DeclaredIncome decimal.Decimal
	Revenue        decimal.Decimal
	NetIncome      decimal.Decimal
	FetchedAt      time.Time
}

// LandRecord is a Kadastr land registry response.
type LandRecord struct {
	SubjectKey     string
	CadastralValue decimal.Decimal
	ParcelCount    int
	FetchedAt      time.Time
}

// SoliqClient fetches tax data from the Soliq registry.
type SoliqClient interface {
	FetchTaxRecord(ctx context.Context, taxpayerID string) (TaxRecord, error)
}

// KadastrClient fetches land holdings from the Kadastr registry, keyed by
// the owner identifier.
type KadastrClient interface {
	FetchLandRecord(ctx context.Context, subjectKey string) (LandRecord, error)
}
