package orderbookv1

import "github.com/google/btree"

const btreeDegree = 32

// priceItem wraps a price for use as a btree.Item. Both sides share one
// ascending Less; Bid iterates the tree with Descend, Ask with Ascend, the
// same split used by the B-tree order book examples this package is
// grounded on.
type priceItem int64

func (a priceItem) Less(b btree.Item) bool {
	return a < b.(priceItem)
}

// BookSide is one side of the book: a price -> quantity map for O(1) point
// lookup, plus a btree ordered index over the same prices for O(log n)
// best-first access. Every stored quantity is strictly positive; a
// quantity-zero outcome deletes the key.
type BookSide struct {
	side  Side
	qty   map[int64]int64
	index *btree.BTree
}

// NewBookSide constructs an empty BookSide for the given side.
func NewBookSide(side Side) *BookSide {
	return &BookSide{
		side:  side,
		qty:   make(map[int64]int64),
		index: btree.New(btreeDegree),
	}
}

// Side returns the side this BookSide was constructed with.
func (b *BookSide) Side() Side {
	return b.side
}

// Peek returns the current quantity at price, and whether price is present.
func (b *BookSide) Peek(price int64) (int64, bool) {
	q, ok := b.qty[price]
	return q, ok
}

// Len returns the number of distinct prices on this side.
func (b *BookSide) Len() int {
	return len(b.qty)
}

// AddQty applies a signed delta at price.
//
//   - If price is absent and delta > 0, a new level is created.
//   - If price is absent and delta <= 0, this fails: ErrZeroInsert when
//     delta == 0 (ambiguous create), ErrDeleteMissingLevel otherwise.
//   - If price is present, delta is applied; a zero result deletes the
//     level, a negative result fails with ErrQuantityUnderflow.
func (b *BookSide) AddQty(price, delta int64) error {
	cur, exists := b.qty[price]
	if !exists {
		switch {
		case delta > 0:
			b.insert(price, delta)
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
		return nil
	case newQty == 0:
		b.remove(price)
		return nil
	default:
		return ErrQuantityUnderflow
	}
}

// SetQty unconditionally replaces the quantity at price. newQty == 0 deletes
// the level (a no-op if already absent); newQty < 0 fails.
func (b *BookSide) SetQty(price, newQty int64) error {
	if newQty < 0 {
		return ErrQuantityUnderflow
	}
	if newQty == 0 {
		if _, exists := b.qty[price]; exists {
			b.remove(price)
		}
		return nil
	}
	if _, exists := b.qty[price]; !exists {
		b.insert(price, newQty)
		return nil
	}
	b.qty[price] = newQty
	return nil
}

// Delete removes price entirely. Fails with ErrDeleteMissingLevel if absent.
func (b *BookSide) Delete(price int64) error {
	if _, exists := b.qty[price]; !exists {
		return ErrDeleteMissingLevel
	}
	b.remove(price)
	return nil
}

// Best returns the best level by side ordering, or false if the side is empty.
func (b *BookSide) Best() (PriceLevel, bool) {
	var item btree.Item
	if b.side == Bid {
		item = b.index.Max()
	} else {
		item = b.index.Min()
	}
	if item == nil {
		return PriceLevel{}, false
	}
	price := int64(item.(priceItem))
	return PriceLevel{Price: price, Qty: b.qty[price]}, true
}

// TopN returns up to n PriceLevels in best-first order. It is a bounded,
// one-shot materialization (not a reusable iterator), but satisfies the same
// contract as spec's top_n_iter: best-first, at most n items, finite.
func (b *BookSide) TopN(n int) []PriceLevel {
	if n <= 0 {
		return nil
	}
	out := make([]PriceLevel, 0, n)
	visit := func(item btree.Item) bool {
		price := int64(item.(priceItem))
		out = append(out, PriceLevel{Price: price, Qty: b.qty[price]})
		return len(out) < n
	}
	if b.side == Bid {
		b.index.Descend(visit)
	} else {
		b.index.Ascend(visit)
	}
	return out
}

// NthBest returns the k-th best level (0-indexed), or false if the side has
// k or fewer levels. Used by TrackedBookSide to refill its cache's tail
// after a deletion shortens it below N.
func (b *BookSide) NthBest(k int) (PriceLevel, bool) {
	if k < 0 {
		return PriceLevel{}, false
	}
	var found PriceLevel
	var ok bool
	i := 0
	visit := func(item btree.Item) bool {
		if i == k {
			price := int64(item.(priceItem))
			found = PriceLevel{Price: price, Qty: b.qty[price]}
			ok = true
			return false
		}
		i++
		return true
	}
	if b.side == Bid {
		b.index.Descend(visit)
	} else {
		b.index.Ascend(visit)
	}
	return found, ok
}

func (b *BookSide) insert(price, qty int64) {
	b.qty[price] = qty
	b.index.ReplaceOrInsert(priceItem(price))
}

func (b *BookSide) remove(price int64) {
	delete(b.qty, price)
	b.index.Delete(priceItem(price))
}
