// Package orderbook composes a bid and ask TrackedBookSide into a single
// dialect-agnostic order book, exposing the primitive mutations
// (add_qty/set_qty/delete/modify) that internal/usecase/dispatch reduces
// each input dialect down to.
package orderbook

import (
	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
)

// OrderBook pairs a bid and an ask TrackedBookSide of the same capacity. It
// enforces no cross-side invariants: it is a pure aggregator and does not
// check for a crossed book.
type OrderBook struct {
	bids *orderbookv1.TrackedBookSide
	asks *orderbookv1.TrackedBookSide
}

// New constructs an OrderBook with top-N capacity n on both sides. It
// returns ErrCapacityInvalid if n is negative.
func New(n int) (*OrderBook, error) {
	bids, err := orderbookv1.NewTrackedBookSide(orderbookv1.Bid, n)
	if err != nil {
		return nil, err
	}
	asks, err := orderbookv1.NewTrackedBookSide(orderbookv1.Ask, n)
	if err != nil {
		return nil, err
	}
	return &OrderBook{bids: bids, asks: asks}, nil
}

// side returns the TrackedBookSide for the given side tag.
func (ob *OrderBook) side(side orderbookv1.Side) *orderbookv1.TrackedBookSide {
	if side == orderbookv1.Bid {
		return ob.bids
	}
	return ob.asks
}

// Bids returns the bid TrackedBookSide.
func (ob *OrderBook) Bids() *orderbookv1.TrackedBookSide {
	return ob.bids
}

// Asks returns the ask TrackedBookSide.
func (ob *OrderBook) Asks() *orderbookv1.TrackedBookSide {
	return ob.asks
}

// AddQty applies a signed delta at price on the given side.
func (ob *OrderBook) AddQty(side orderbookv1.Side, price, delta int64) error {
	return ob.side(side).AddQty(price, delta)
}

// SetQty unconditionally replaces the quantity at price on the given side.
func (ob *OrderBook) SetQty(side orderbookv1.Side, price, qty int64) error {
	return ob.side(side).SetQty(price, qty)
}

// Delete removes price entirely on the given side.
func (ob *OrderBook) Delete(side orderbookv1.Side, price int64) error {
	return ob.side(side).Delete(price)
}

// Modify removes the previous (prevPrice, prevQty) and installs the new
// (newPrice, newQty) atomically with respect to the top-N cache: either both
// effects land, or the operation fails and the book is left unchanged. The
// error is ErrModifyMismatch when prevPrice cannot supply prevQty, and the
// insert step's own error when installing the new level fails.
//
// Staging: prevPrice must currently hold at least prevQty (removing prevQty
// must not underflow); only once that is confirmed are both mutations
// applied, in fixed order (remove old, then insert new). If the insert step
// somehow fails for a validated input, the removal is rolled back — a safety
// net, not a routine path.
func (ob *OrderBook) Modify(side orderbookv1.Side, newPrice, newQty, prevPrice, prevQty int64) error {
	bookSide := ob.side(side)

	curQty, exists := bookSide.Peek(prevPrice)
	if !exists || curQty < prevQty {
		return orderbookv1.ErrModifyMismatch
	}

	if err := bookSide.AddQty(prevPrice, -prevQty); err != nil {
		return orderbookv1.ErrModifyMismatch
	}

	if err := bookSide.AddQty(newPrice, newQty); err != nil {
		_ = bookSide.AddQty(prevPrice, prevQty) // rollback safety net
		return err
	}

	return nil
}

// TopN returns both sides' top-N caches: (bid prefix, ask prefix).
func (ob *OrderBook) TopN() ([]orderbookv1.PriceLevel, []orderbookv1.PriceLevel) {
	return ob.bids.Snapshot(), ob.asks.Snapshot()
}
