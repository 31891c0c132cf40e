package dispatch

import (
	"testing"

	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
	"github.com/ChristopherRussell/polars-order-book/internal/usecase/orderbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(t *testing.T, n int) *orderbook.OrderBook {
	t.Helper()
	ob, err := orderbook.New(n)
	require.NoError(t, err)
	return ob
}

func ptr(v int64) *int64 { return &v }

func TestDispatcher_DialectA_PriceLevelReplacement(t *testing.T) {
	d := New(newBook(t, 2), DialectPriceLevel)

	bid, _, err := d.Apply(Row{Side: orderbookv1.Bid, Price: 10, Qty: 100})
	require.NoError(t, err)
	assert.Equal(t, []orderbookv1.PriceLevel{{Price: 10, Qty: 100}}, bid)

	bid, _, err = d.Apply(Row{Side: orderbookv1.Bid, Price: 10, Qty: 0})
	require.NoError(t, err)
	assert.Empty(t, bid)
}

func TestDispatcher_DialectB_ZeroDeltaIsNoop(t *testing.T) {
	d := New(newBook(t, 2), DialectQuantityDelta)

	bid, _, err := d.Apply(Row{Side: orderbookv1.Bid, Price: 10, Qty: 0})
	require.NoError(t, err)
	assert.Empty(t, bid)
}

func TestDispatcher_DialectC_MalformedRow(t *testing.T) {
	d := New(newBook(t, 2), DialectDeltaModify)

	_, _, err := d.Apply(Row{Side: orderbookv1.Bid, Price: 10, Qty: 5, PrevPrice: ptr(9)})
	assert.ErrorIs(t, err, orderbookv1.ErrMalformedRow)

	_, _, err = d.Apply(Row{Side: orderbookv1.Bid, Price: 10, Qty: 5, PrevQty: ptr(3)})
	assert.ErrorIs(t, err, orderbookv1.ErrMalformedRow)
}

func TestDispatcher_DialectC_ReducesToAddQtyWhenAbsent(t *testing.T) {
	d := New(newBook(t, 2), DialectDeltaModify)

	bid, _, err := d.Apply(Row{Side: orderbookv1.Bid, Price: 10, Qty: 7})
	require.NoError(t, err)
	assert.Equal(t, []orderbookv1.PriceLevel{{Price: 10, Qty: 7}}, bid)
}

func TestDispatcher_DialectC_QuantityOnlyModify(t *testing.T) {
	book := newBook(t, 2)
	d := New(book, DialectDeltaModify)

	_, _, err := d.Apply(Row{Side: orderbookv1.Bid, Price: 10, Qty: 7})
	require.NoError(t, err)

	// prev_price == price: reduces to add_qty(price, qty - prev_qty).
	bid, _, err := d.Apply(Row{
		Side: orderbookv1.Bid, Price: 10, Qty: 12,
		PrevPrice: ptr(10), PrevQty: ptr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, []orderbookv1.PriceLevel{{Price: 10, Qty: 12}}, bid)
}

func TestDispatcher_DialectC_FullModify(t *testing.T) {
	book := newBook(t, 2)
	d := New(book, DialectDeltaModify)

	_, _, err := d.Apply(Row{Side: orderbookv1.Bid, Price: 100, Qty: 10})
	require.NoError(t, err)

	bid, _, err := d.Apply(Row{
		Side: orderbookv1.Bid, Price: 105, Qty: 20,
		PrevPrice: ptr(100), PrevQty: ptr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, []orderbookv1.PriceLevel{{Price: 105, Qty: 20}}, bid)
}

func TestDispatcher_DialectC_ModifyMismatchLeavesBookUnchanged(t *testing.T) {
	book := newBook(t, 2)
	d := New(book, DialectDeltaModify)

	_, _, err := d.Apply(Row{
		Side: orderbookv1.Bid, Price: 105, Qty: 20,
		PrevPrice: ptr(100), PrevQty: ptr(10),
	})
	assert.ErrorIs(t, err, orderbookv1.ErrModifyMismatch)

	bid, ask := book.TopN()
	assert.Empty(t, bid)
	assert.Empty(t, ask)
}

func TestDispatcher_UnknownDialectFails(t *testing.T) {
	d := New(newBook(t, 2), Dialect("unknown"))
	_, _, err := d.Apply(Row{Side: orderbookv1.Bid, Price: 1, Qty: 1})
	assert.ErrorIs(t, err, orderbookv1.ErrMalformedRow)
}
