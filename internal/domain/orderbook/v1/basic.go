package orderbookv1

// BasicTrackedBookSide is the top-of-book-only fast path used internally by
// TrackedBookSide when N == 1: rather than a full price->quantity map paired
// with an ordered btree index and an N-slice cache, it tracks only the
// current best (price, qty) directly. The one operation this trades away is
// O(1) re-discovery of the new best after the current best is deleted — that
// case rescans the remaining map, which is acceptable because there is no
// ordered index to consult instead.
type BasicTrackedBookSide struct {
	side Side
	qty  map[int64]int64
	best PriceLevel
	has  bool
}

// NewBasicTrackedBookSide constructs an empty BasicTrackedBookSide for side.
func NewBasicTrackedBookSide(side Side) *BasicTrackedBookSide {
	return &BasicTrackedBookSide{side: side, qty: make(map[int64]int64)}
}

// Side returns the side this BasicTrackedBookSide tracks.
func (b *BasicTrackedBookSide) Side() Side {
	return b.side
}

// Len returns the number of distinct prices held.
func (b *BasicTrackedBookSide) Len() int {
	return len(b.qty)
}

// Peek returns the current quantity at price, and whether price is present.
func (b *BasicTrackedBookSide) Peek(price int64) (int64, bool) {
	q, ok := b.qty[price]
	return q, ok
}

// Best returns the best level, or false if the side is empty.
func (b *BasicTrackedBookSide) Best() (PriceLevel, bool) {
	return b.best, b.has
}

// Snapshot returns the best level as a length-0-or-1 slice, matching the
// general TrackedBookSide.Snapshot contract for N == 1.
func (b *BasicTrackedBookSide) Snapshot() []PriceLevel {
	if !b.has {
		return nil
	}
	return []PriceLevel{b.best}
}

// AddQty applies a signed delta at price. See BookSide.AddQty for semantics.
func (b *BasicTrackedBookSide) AddQty(price, delta int64) error {
	cur, exists := b.qty[price]
	if !exists {
		switch {
		case delta > 0:
			b.qty[price] = delta
			b.considerNew(price, delta)
			return nil
		case delta == 0:
			return ErrZeroInsert
		default:
			return ErrDeleteMissingLevel
		}
	}

	newQty := cur + delta
	switch {
	case newQty > 0:
		b.qty[price] = newQty
		if b.has && b.best.Price == price {
			b.best.Qty = newQty
		}
		return nil
	case newQty == 0:
		delete(b.qty, price)
		b.onRemoved(price)
		return nil
	default:
		return ErrQuantityUnderflow
	}
}

// SetQty unconditionally replaces the quantity at price. See BookSide.SetQty
// for semantics.
func (b *BasicTrackedBookSide) SetQty(price, newQty int64) error {
	if newQty < 0 {
		return ErrQuantityUnderflow
	}
	if newQty == 0 {
		if _, exists := b.qty[price]; exists {
			delete(b.qty, price)
			b.onRemoved(price)
		}
		return nil
	}
	_, existed := b.qty[price]
	b.qty[price] = newQty
	switch {
	case existed && b.has && b.best.Price == price:
		b.best.Qty = newQty
	case !existed:
		b.considerNew(price, newQty)
	}
	return nil
}

// Delete removes price entirely. Fails with ErrDeleteMissingLevel if absent.
func (b *BasicTrackedBookSide) Delete(price int64) error {
	if _, exists := b.qty[price]; !exists {
		return ErrDeleteMissingLevel
	}
	delete(b.qty, price)
	b.onRemoved(price)
	return nil
}

func (b *BasicTrackedBookSide) considerNew(price, qty int64) {
	if !b.has || b.side.Better(price, b.best.Price) {
		b.best = PriceLevel{Price: price, Qty: qty}
		b.has = true
	}
}

func (b *BasicTrackedBookSide) onRemoved(price int64) {
	if !b.has || b.best.Price != price {
		return
	}
	b.has = false
	for p, q := range b.qty {
		if !b.has || b.side.Better(p, b.best.Price) {
			b.best = PriceLevel{Price: p, Qty: q}
			b.has = true
		}
	}
}
