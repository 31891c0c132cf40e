// Package rowsource provides Reader implementations for
// internal/domain/rowsource/v1: a live Kafka consumer, a headerless CSV
// replay source, and a synthetic stream generator.
package rowsource

import (
	"encoding/json"
	"fmt"

	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
	rowsourcev1 "github.com/ChristopherRussell/polars-order-book/internal/domain/rowsource/v1"
	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
)

// wireRow mirrors the JSON shape documented for the Kafka row source: symbol,
// side, price, qty, and an optional prev_price/prev_qty pair used only under
// the delta-with-modify dialect.
type wireRow struct {
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	Price     int64  `json:"price"`
	Qty       int64  `json:"qty"`
	PrevPrice *int64 `json:"prev_price"`
	PrevQty   *int64 `json:"prev_qty"`
	Seq       int64  `json:"seq"`
}

func decodeRow(data []byte) (rowsourcev1.Row, error) {
	var w wireRow
	if err := json.Unmarshal(data, &w); err != nil {
		return rowsourcev1.Row{}, pkgerrors.NewErrorDetails(
			fmt.Sprintf("failed to decode row: %v", err), pkgerrors.RowSourceDecodeError, "decode")
	}

	side, err := parseSide(w.Side)
	if err != nil {
		return rowsourcev1.Row{}, err
	}

	return rowsourcev1.Row{
		Symbol:    w.Symbol,
		Side:      side,
		Price:     w.Price,
		Qty:       w.Qty,
		PrevPrice: w.PrevPrice,
		PrevQty:   w.PrevQty,
		Seq:       w.Seq,
	}, nil
}

func parseSide(s string) (orderbookv1.Side, error) {
	switch s {
	case "bid":
		return orderbookv1.Bid, nil
	case "ask":
		return orderbookv1.Ask, nil
	default:
		return 0, pkgerrors.NewErrorDetails(
			fmt.Sprintf("unknown side %q", s), pkgerrors.RowSourceDecodeError, "decode")
	}
}
