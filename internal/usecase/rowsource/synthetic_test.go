package rowsource

import (
	"context"
	"testing"

	rowsourcev1 "github.com/ChristopherRussell/polars-order-book/internal/domain/rowsource/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticReader_BoundedStreamEndsCleanly(t *testing.T) {
	r := NewSyntheticReader(SyntheticConfig{
		Symbol: "BTC-USD", Count: 5, BasePrice: 10000, Volatility: 0.01, MeanQty: 2, Seed: 1,
	})

	seen := 0
	for {
		row, err := r.Read(context.Background())
		if err == rowsourcev1.ErrEndOfStream {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, "BTC-USD", row.Symbol)
		assert.Greater(t, row.Price, int64(0))
		assert.Greater(t, row.Qty, int64(0))
		assert.Equal(t, int64(seen), row.Seq)
		seen++
	}
	assert.Equal(t, 5, seen)
}

func TestSyntheticReader_SameSeedIsDeterministic(t *testing.T) {
	cfg := SyntheticConfig{Symbol: "BTC-USD", Count: 3, BasePrice: 10000, Volatility: 0.02, MeanQty: 3, Seed: 42}
	a := NewSyntheticReader(cfg)
	b := NewSyntheticReader(cfg)

	for i := 0; i < 3; i++ {
		rowA, err := a.Read(context.Background())
		require.NoError(t, err)
		rowB, err := b.Read(context.Background())
		require.NoError(t, err)
		assert.Equal(t, rowA, rowB)
	}
}
