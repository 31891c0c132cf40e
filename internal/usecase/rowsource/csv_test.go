package rowsource

import (
	"context"
	"strings"
	"testing"

	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
	rowsourcev1 "github.com/ChristopherRussell/polars-order-book/internal/domain/rowsource/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVReader_ReadsRowsThenEndOfStream(t *testing.T) {
	data := "BTC-USD,bid,10000,5,,,0\nBTC-USD,ask,10010,3,10005,2,1\n"
	r := NewCSVReader(strings.NewReader(data))

	row, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rowsourcev1.Row{Symbol: "BTC-USD", Side: orderbookv1.Bid, Price: 10000, Qty: 5, Seq: 0}, row)

	row, err = r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, orderbookv1.Ask, row.Side)
	require.NotNil(t, row.PrevPrice)
	assert.Equal(t, int64(10005), *row.PrevPrice)
	require.NotNil(t, row.PrevQty)
	assert.Equal(t, int64(2), *row.PrevQty)

	_, err = r.Read(context.Background())
	assert.ErrorIs(t, err, rowsourcev1.ErrEndOfStream)
}

func TestCSVReader_InvalidSideFails(t *testing.T) {
	r := NewCSVReader(strings.NewReader("BTC-USD,buy,10000,5,,,0\n"))
	_, err := r.Read(context.Background())
	assert.Error(t, err)
}
