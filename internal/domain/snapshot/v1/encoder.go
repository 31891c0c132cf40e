// Package snapshotv1 packs a top-N order book snapshot into the fixed-shape
// output record consumed by hosts: four parallel slices of length N per
// side, with positions beyond the book's actual depth left as sentinels.
package snapshotv1

import (
	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
)

// Snapshot is one fully-encoded output row. Price and Qty at the same index
// always co-occur: both nil (sentinel, empty slot) or both non-nil
// (populated slot). Nil pointers rather than a magic numeric sentinel keep
// "empty" unrepresentable as a valid price or quantity.
type Snapshot struct {
	BidPrice []*int64
	BidQty   []*int64
	AskPrice []*int64
	AskQty   []*int64
}

// Encoder packs (bid levels, ask levels) into a Snapshot of fixed width n.
type Encoder struct {
	n int
}

// NewEncoder constructs an Encoder that always emits n slots per side.
func NewEncoder(n int) *Encoder {
	return &Encoder{n: n}
}

// Encode packs bidLevels and askLevels, each already in best-first order and
// at most n long, into a Snapshot. It never truncates below n: short input
// is padded with sentinel (nil) slots out to n.
func (e *Encoder) Encode(bidLevels, askLevels []orderbookv1.PriceLevel) Snapshot {
	return Snapshot{
		BidPrice: e.prices(bidLevels),
		BidQty:   e.qtys(bidLevels),
		AskPrice: e.prices(askLevels),
		AskQty:   e.qtys(askLevels),
	}
}

func (e *Encoder) prices(levels []orderbookv1.PriceLevel) []*int64 {
	out := make([]*int64, e.n)
	for i := 0; i < e.n && i < len(levels); i++ {
		p := levels[i].Price
		out[i] = &p
	}
	return out
}

func (e *Encoder) qtys(levels []orderbookv1.PriceLevel) []*int64 {
	out := make([]*int64, e.n)
	for i := 0; i < e.n && i < len(levels); i++ {
		q := levels[i].Qty
		out[i] = &q
	}
	return out
}
