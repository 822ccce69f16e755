// Package govdata provides mock clients for the Soliq tax registry and the
// Kadastr land registry. Responses are deterministic: the RNG is seeded from
// the lookup key, so the same identifier always yields the same record. They
// stand in for the real government APIs in development and test environments.
package govdata

import (
	"context"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
)

// MockSoliqClient implements port.SoliqClient with generated tax data.
type MockSoliqClient struct {
	logger *slog.Logger
}

// NewMockSoliqClient creates a mock Soliq client.
func NewMockSoliqClient(logger *slog.Logger) *MockSoliqClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &MockSoliqClient{logger: logger}
}

// FetchTaxRecord returns deterministic tax data for the taxpayer.
func (c *MockSoliqClient) FetchTaxRecord(ctx context.Context, taxpayerID string) (port.TaxRecord, error) {
	rng := seededRNG("soliq", taxpayerID)

	declaredIncome := decimal.NewFromInt(200_000 + rng.Int63n(4_800_000))
	revenue := decimal.NewFromInt(1_000_000 + rng.Int63n(49_000_000))
	// Net income between -10% and +20% of revenue.
	margin := -0.10 + rng.Float64()*0.30
	netIncome := revenue.Mul(decimal.NewFromFloat(margin)).Round(0)

	c.logger.DebugContext(ctx, "soliq lookup",
		slog.String("taxpayer_id", taxpayerID))

	return port.TaxRecord{
		TaxpayerID:     taxpayerID,
		DeclaredIncome: declaredIncome,
		Revenue:        revenue,
		NetIncome:      netIncome,
		FetchedAt:      time.Now().UTC(),
	}, nil
}

// MockKadastrClient implements port.KadastrClient with generated land data.
type MockKadastrClient struct {
	logger *slog.Logger
}

// NewMockKadastrClient creates a mock Kadastr client.
func NewMockKadastrClient(logger *slog.Logger) *MockKadastrClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &MockKadastrClient{logger: logger}
}

// FetchLandRecord returns deterministic land holdings for the subject. Around
// a quarter of subjects own no land at all.
func (c *MockKadastrClient) FetchLandRecord(ctx context.Context, subjectKey string) (port.LandRecord, error) {
	rng := seededRNG("kadastr", subjectKey)

	parcels := rng.Intn(4)
	value := decimal.Zero
	for i := 0; i < parcels; i++ {
		value = value.Add(decimal.NewFromInt(50_000 + rng.Int63n(450_000)))
	}

	c.logger.DebugContext(ctx, "kadastr lookup",
		slog.String("subject_key", subjectKey),
		slog.Int("parcels", parcels))

	return port.LandRecord{
		SubjectKey:     subjectKey,
		CadastralValue: value,
		ParcelCount:    parcels,
		FetchedAt:      time.Now().UTC(),
	}, nil
}

func seededRNG(source, key string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(source))
	h.Write([]byte(":"))
	h.Write([]byte(key))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
