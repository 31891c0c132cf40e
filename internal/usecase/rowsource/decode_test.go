package rowsource

import (
	"testing"

	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRow_FullDeltaModifyPayload(t *testing.T) {
	payload := `{"symbol":"BTC-USD","side":"ask","price":10010,"qty":3,"prev_price":10005,"prev_qty":2,"seq":7}`
	row, err := decodeRow([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "BTC-USD", row.Symbol)
	assert.Equal(t, orderbookv1.Ask, row.Side)
	assert.Equal(t, int64(10010), row.Price)
	assert.Equal(t, int64(3), row.Qty)
	require.NotNil(t, row.PrevPrice)
	assert.Equal(t, int64(10005), *row.PrevPrice)
	require.NotNil(t, row.PrevQty)
	assert.Equal(t, int64(2), *row.PrevQty)
	assert.Equal(t, int64(7), row.Seq)
}

func TestDecodeRow_NullPrevFieldsOmitted(t *testing.T) {
	payload := `{"symbol":"BTC-USD","side":"bid","price":10000,"qty":5,"seq":0}`
	row, err := decodeRow([]byte(payload))
	require.NoError(t, err)
	assert.Nil(t, row.PrevPrice)
	assert.Nil(t, row.PrevQty)
}

func TestDecodeRow_UnknownSideFails(t *testing.T) {
	payload := `{"symbol":"BTC-USD","side":"buy","price":10000,"qty":5,"seq":0}`
	_, err := decodeRow([]byte(payload))
	assert.Error(t, err)
}

func TestDecodeRow_MalformedJSONFails(t *testing.T) {
	_, err := decodeRow([]byte(`not json`))
	assert.Error(t, err)
}
