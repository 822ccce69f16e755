package govdata_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nozima-Rustamova/credit-ML/internal/infrastructure/govdata"
)

func TestMockSoliqClient_Deterministic(t *testing.T) {
	client := govdata.NewMockSoliqClient(nil)

	first, err := client.FetchTaxRecord(context.Background(), "305123456")
	require.NoError(t, err)
	second, err := client.FetchTaxRecord(context.Background(), "305123456")
	require.NoError(t, err)

	assert.True(t, first.DeclaredIncome.Equal(second.DeclaredIncome))
	assert.True(t, first.Revenue.Equal(second.Revenue))
	assert.True(t, first.NetIncome.Equal(second.NetIncome))

	other, err := client.FetchTaxRecord(context.Background(), "305999999")
	require.NoError(t, err)
	assert.False(t, first.Revenue.Equal(other.Revenue))
}

func TestMockSoliqClient_Ranges(t *testing.T) {
	client := govdata.NewMockSoliqClient(nil)

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		rec, err := client.FetchTaxRecord(context.Background(), id)
		require.NoError(t, err)

		assert.True(t, rec.DeclaredIncome.GreaterThanOrEqual(decimal.NewFromInt(200_000)))
		assert.True(t, rec.Revenue.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)))
		// Margin stays within -10%..+20% of revenue.
		assert.True(t, rec.NetIncome.GreaterThanOrEqual(rec.Revenue.Mul(decimal.NewFromFloat(-0.11))))
		assert.True(t, rec.NetIncome.LessThanOrEqual(rec.Revenue.Mul(decimal.NewFromFloat(0.21))))
	}
}

func TestMockKadastrClient_Deterministic(t *testing.T) {
	client := govdata.NewMockKadastrClient(nil)

	first, err := client.FetchLandRecord(context.Background(), "AB1234567")
	require.NoError(t, err)
	second, err := client.FetchLandRecord(context.Background(), "AB1234567")
	require.NoError(t, err)

	assert.Equal(t, first.ParcelCount, second.ParcelCount)
	assert.True(t, first.CadastralValue.Equal(second.CadastralValue))
}

func TestMockKadastrClient_NoParcelsMeansZeroValue(t *testing.T) {
	client := govdata.NewMockKadastrClient(nil)

	// Scan a handful of keys; zero-parcel subjects must carry zero value.
	for _, key := range []string{"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8"} {
		rec, err := client.FetchLandRecord(context.Background(), key)
		require.NoError(t, err)
		if rec.ParcelCount == 0 {
			assert.True(t, rec.CadastralValue.IsZero())
		} else {
			assert.True(t, rec.CadastralValue.GreaterThanOrEqual(decimal.NewFromInt(50_000)))
		}
	}
}
