// Package dispatch reduces each of the three input dialects down to the
// primitive mutations exposed by internal/usecase/orderbook, and captures a
// top-N snapshot immediately after each row is applied.
package dispatch

import (
	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
	"github.com/ChristopherRussell/polars-order-book/internal/usecase/orderbook"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
)

// Dialect selects which of the three input encodings a Dispatcher reduces
// rows from. It is fixed for the lifetime of a Dispatcher. Aliased from
// pkg/config so the same enum travels from env-var configuration through to
// row decoding without a conversion at the boundary.
type Dialect = config.Dialect

const (
	// DialectPriceLevel is price-level replacement: Row.Qty replaces the
	// resting quantity at Row.Price outright.
	DialectPriceLevel = config.DialectPriceLevel
	// DialectQuantityDelta is quantity delta: Row.Qty is added to the
	// resting quantity at Row.Price.
	DialectQuantityDelta = config.DialectQuantityDelta
	// DialectDeltaModify is delta-with-modify: Row additionally carries an
	// optional (PrevPrice, PrevQty) describing a compound move.
	DialectDeltaModify = config.DialectDeltaModify
)

// Row is one input update in whichever dialect a Dispatcher was built for.
// PrevPrice and PrevQty are only meaningful under DialectDeltaModify; both
// nil means "no prior state referenced", exactly one non-nil is malformed.
type Row struct {
	Side      orderbookv1.Side
	Price     int64
	Qty       int64
	PrevPrice *int64
	PrevQty   *int64
}

// Dispatcher drives one OrderBook from a stream of Rows in a fixed dialect.
// It is stateless per row; all state lives in the OrderBook it wraps.
type Dispatcher struct {
	book    *orderbook.OrderBook
	dialect Dialect
}

// New constructs a Dispatcher over book for the given dialect.
func New(book *orderbook.OrderBook, dialect Dialect) *Dispatcher {
	return &Dispatcher{book: book, dialect: dialect}
}

// Apply reduces row to OrderBook primitives and returns the resulting
// combined top-N snapshot: (bid prefix, ask prefix). On error, the book is
// left exactly as it was before the call — the caller's row was not applied
// at all, partially or otherwise.
func (d *Dispatcher) Apply(row Row) (bid, ask []orderbookv1.PriceLevel, err error) {
	if err := d.dispatch(row); err != nil {
		return nil, nil, err
	}
	bid, ask = d.book.TopN()
	return bid, ask, nil
}

func (d *Dispatcher) dispatch(row Row) error {
	switch d.dialect {
	case DialectPriceLevel:
		return d.book.SetQty(row.Side, row.Price, row.Qty)

	case DialectQuantityDelta:
		if row.Qty == 0 {
			return nil
		}
		return d.book.AddQty(row.Side, row.Price, row.Qty)

	case DialectDeltaModify:
		return d.dispatchDeltaModify(row)

	default:
		return orderbookv1.ErrMalformedRow
	}
}

func (d *Dispatcher) dispatchDeltaModify(row Row) error {
	switch {
	case row.PrevPrice == nil && row.PrevQty == nil:
		if row.Qty == 0 {
			return nil
		}
		return d.book.AddQty(row.Side, row.Price, row.Qty)

	case row.PrevPrice != nil && row.PrevQty != nil:
		if *row.PrevPrice == row.Price {
			delta := row.Qty - *row.PrevQty
			if delta == 0 {
				return nil
			}
			return d.book.AddQty(row.Side, row.Price, delta)
		}
		return d.book.Modify(row.Side, row.Price, row.Qty, *row.PrevPrice, *row.PrevQty)

	default:
		return orderbookv1.ErrMalformedRow
	}
}
