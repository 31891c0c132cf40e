package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTracked(t *testing.T, side Side, n int) *TrackedBookSide {
	t.Helper()
	tb, err := NewTrackedBookSide(side, n)
	require.NoError(t, err)
	return tb
}

func TestNewTrackedBookSide_NegativeCapacityFails(t *testing.T) {
	_, err := NewTrackedBookSide(Bid, -1)
	assert.ErrorIs(t, err, ErrCapacityInvalid)
}

func TestTrackedBookSide_CapacityZero_CacheAlwaysEmpty(t *testing.T) {
	tb := mustTracked(t, Bid, 0)
	require.NoError(t, tb.SetQty(100, 10))
	assert.Empty(t, tb.Snapshot())
}

func TestTrackedBookSide_DialectA_Scenario(t *testing.T) {
	// S1 from the spec: N=2, dialect A, bid side only.
	tb := mustTracked(t, Bid, 2)

	require.NoError(t, tb.SetQty(10, 100))
	assertSnapshot(t, tb, []PriceLevel{{Price: 10, Qty: 100}})

	require.NoError(t, tb.SetQty(10, 200))
	assertSnapshot(t, tb, []PriceLevel{{Price: 10, Qty: 200}})

	require.NoError(t, tb.SetQty(11, 50))
	assertSnapshot(t, tb, []PriceLevel{{Price: 11, Qty: 50}, {Price: 10, Qty: 200}})

	require.NoError(t, tb.SetQty(11, 0))
	assertSnapshot(t, tb, []PriceLevel{{Price: 10, Qty: 200}})
}

func TestTrackedBookSide_TopNEviction_Scenario(t *testing.T) {
	// S6 from the spec: N=2, inserts at 10, 11, 12 (qty 1 each), then deletes.
	tb := mustTracked(t, Bid, 2)

	require.NoError(t, tb.SetQty(10, 1))
	assertSnapshot(t, tb, []PriceLevel{{Price: 10, Qty: 1}})

	require.NoError(t, tb.SetQty(11, 1))
	assertSnapshot(t, tb, []PriceLevel{{Price: 11, Qty: 1}, {Price: 10, Qty: 1}})

	require.NoError(t, tb.SetQty(12, 1))
	assertSnapshot(t, tb, []PriceLevel{{Price: 12, Qty: 1}, {Price: 11, Qty: 1}})

	require.NoError(t, tb.Delete(12))
	assertSnapshot(t, tb, []PriceLevel{{Price: 11, Qty: 1}, {Price: 10, Qty: 1}})

	require.NoError(t, tb.Delete(11))
	assertSnapshot(t, tb, []PriceLevel{{Price: 10, Qty: 1}})
}

func TestTrackedBookSide_InsertWorseThanNth_NoCacheChange(t *testing.T) {
	tb := mustTracked(t, Bid, 2)
	require.NoError(t, tb.SetQty(10, 1))
	require.NoError(t, tb.SetQty(9, 1))
	before := tb.Snapshot()

	require.NoError(t, tb.SetQty(8, 1)) // worse than both cached entries
	assert.Equal(t, before, tb.Snapshot())
}

func TestTrackedBookSide_InsertBetterThanBest_ShiftsCacheDown(t *testing.T) {
	tb := mustTracked(t, Bid, 2)
	require.NoError(t, tb.SetQty(10, 1))
	require.NoError(t, tb.SetQty(9, 1))

	require.NoError(t, tb.SetQty(11, 1))
	assertSnapshot(t, tb, []PriceLevel{{Price: 11, Qty: 1}, {Price: 10, Qty: 1}})
}

func TestTrackedBookSide_RecomputeOracleEquivalence(t *testing.T) {
	tb := mustTracked(t, Bid, 3)
	prices := []int64{50, 40, 60, 45, 55, 65, 42}
	for i, p := range prices {
		require.NoError(t, tb.SetQty(p, int64(i+1)))
		oracle := tb.book.TopN(3)
		assert.Equal(t, oracle, tb.Snapshot(), "mismatch after inserting price %d", p)
	}
	require.NoError(t, tb.Delete(65))
	assert.Equal(t, tb.book.TopN(3), tb.Snapshot())
	require.NoError(t, tb.Delete(60))
	assert.Equal(t, tb.book.TopN(3), tb.Snapshot())
}

func assertSnapshot(t *testing.T, tb *TrackedBookSide, want []PriceLevel) {
	t.Helper()
	assert.Equal(t, want, tb.Snapshot())
}
