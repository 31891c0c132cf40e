package orderbookv1

// TrackedBookSide wraps a BookSide and maintains an incrementally updated
// cache of its top-N price levels, so that reading the top of book never
// has to rescan the underlying BookSide. Capacity N is fixed at
// construction; N == 0 is legal and keeps the cache permanently empty.
//
// For N == 1 (top-of-book-only tracking), TrackedBookSide delegates
// entirely to a BasicTrackedBookSide instead of building a BookSide plus a
// one-element cache: the specialization skips the btree index and any
// slice bookkeeping, since there is nothing to rank beyond the single best
// level. See BasicTrackedBookSide for the tradeoff this makes. N == 0 does
// NOT route to the basic tracker — BasicTrackedBookSide always tracks the
// single best level with no capacity awareness, which would make Snapshot
// return one level instead of staying permanently empty.
type TrackedBookSide struct {
	book  *BookSide // nil when basic is in use
	basic *BasicTrackedBookSide // nil when n > 1
	n     int
	cache []PriceLevel
}

// NewTrackedBookSide constructs a TrackedBookSide of capacity n for the
// given side. It returns ErrCapacityInvalid if n is negative.
func NewTrackedBookSide(side Side, n int) (*TrackedBookSide, error) {
	if n < 0 {
		return nil, ErrCapacityInvalid
	}
	if n == 1 {
		return &TrackedBookSide{basic: NewBasicTrackedBookSide(side), n: n}, nil
	}
	return &TrackedBookSide{
		book:  NewBookSide(side),
		n:     n,
		cache: make([]PriceLevel, 0, n),
	}, nil
}

// Side returns the side this TrackedBookSide tracks.
func (t *TrackedBookSide) Side() Side {
	if t.basic != nil {
		return t.basic.Side()
	}
	return t.book.Side()
}

// Capacity returns N.
func (t *TrackedBookSide) Capacity() int {
	return t.n
}

// Len returns the number of distinct prices in the underlying book (which
// may exceed the cache's length).
func (t *TrackedBookSide) Len() int {
	if t.basic != nil {
		return t.basic.Len()
	}
	return t.book.Len()
}

// Peek returns the current quantity at price in the underlying book.
func (t *TrackedBookSide) Peek(price int64) (int64, bool) {
	if t.basic != nil {
		return t.basic.Peek(price)
	}
	return t.book.Peek(price)
}

// Best returns the best level, or false if the side is empty.
func (t *TrackedBookSide) Best() (PriceLevel, bool) {
	if t.basic != nil {
		return t.basic.Best()
	}
	return t.book.Best()
}

// Snapshot returns a copy of the current top-N cache, best-first.
func (t *TrackedBookSide) Snapshot() []PriceLevel {
	if t.basic != nil {
		return t.basic.Snapshot()
	}
	out := make([]PriceLevel, len(t.cache))
	copy(out, t.cache)
	return out
}

// AddQty applies a signed delta at price, maintaining the top-N cache
// incrementally. See BookSide.AddQty for the mutation semantics.
func (t *TrackedBookSide) AddQty(price, delta int64) error {
	if t.basic != nil {
		return t.basic.AddQty(price, delta)
	}
	oldQty, existed := t.book.Peek(price)
	if err := t.book.AddQty(price, delta); err != nil {
		return err
	}
	newQty, stillExists := t.book.Peek(price)
	t.reconcileCache(price, existed, oldQty, stillExists, newQty)
	return nil
}

// SetQty unconditionally replaces the quantity at price, maintaining the
// top-N cache incrementally. See BookSide.SetQty for the mutation semantics.
func (t *TrackedBookSide) SetQty(price, newQty int64) error {
	if t.basic != nil {
		return t.basic.SetQty(price, newQty)
	}
	oldQty, existed := t.book.Peek(price)
	if err := t.book.SetQty(price, newQty); err != nil {
		return err
	}
	finalQty, stillExists := t.book.Peek(price)
	t.reconcileCache(price, existed, oldQty, stillExists, finalQty)
	return nil
}

// Delete removes price entirely, maintaining the top-N cache incrementally.
// Fails with ErrDeleteMissingLevel if absent.
func (t *TrackedBookSide) Delete(price int64) error {
	if t.basic != nil {
		return t.basic.Delete(price)
	}
	_, existed := t.book.Peek(price)
	if err := t.book.Delete(price); err != nil {
		return err
	}
	t.reconcileCache(price, existed, 0, false, 0)
	return nil
}

// reconcileCache applies the incremental update protocol: classify the
// mutation's outcome from the before/after presence of price, then patch the
// cache in place rather than recomputing top-N from scratch.
func (t *TrackedBookSide) reconcileCache(price int64, existed bool, oldQty int64, stillExists bool, newQty int64) {
	if t.n == 0 {
		return
	}
	switch {
	case !existed && stillExists:
		t.insertCache(PriceLevel{Price: price, Qty: newQty})
	case existed && !stillExists:
		t.removeCache(price)
	case existed && stillExists:
		// Quantity changed in place; price is unchanged so the level's
		// rank cannot change and no reordering is needed.
		t.updateCacheQty(price, newQty)
	default:
		// !existed && !stillExists: a no-op mutation (SetQty(price, 0) on
		// a price that was already absent).
	}
}

// insertCache inserts a newly created level into the sorted cache, dropping
// the worst entry if this pushes the cache past capacity. A level strictly
// worse than the current worst cached entry (when the cache is already full)
// leaves the cache untouched.
func (t *TrackedBookSide) insertCache(level PriceLevel) {
	side := t.Side()
	idx := len(t.cache)
	for i, existing := range t.cache {
		if !side.Better(existing.Price, level.Price) {
			idx = i
			break
		}
	}
	if idx == len(t.cache) && len(t.cache) == t.n {
		return
	}
	t.cache = append(t.cache, PriceLevel{})
	copy(t.cache[idx+1:], t.cache[idx:])
	t.cache[idx] = level
	if len(t.cache) > t.n {
		t.cache = t.cache[:t.n]
	}
}

// updateCacheQty patches the quantity of a cached level in place. A no-op if
// price's rank is at or below the cache's depth (not cached).
func (t *TrackedBookSide) updateCacheQty(price, qty int64) {
	for i := range t.cache {
		if t.cache[i].Price == price {
			t.cache[i].Qty = qty
			return
		}
	}
}

// removeCache removes a deleted level from the cache, if present, and pulls
// in the next-best level from the underlying book to refill the tail when
// the book is deep enough to supply one.
func (t *TrackedBookSide) removeCache(price int64) {
	idx := -1
	for i := range t.cache {
		if t.cache[i].Price == price {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	t.cache = append(t.cache[:idx], t.cache[idx+1:]...)
	if len(t.cache) < t.n {
		if next, ok := t.book.NthBest(len(t.cache)); ok {
			t.cache = append(t.cache, next)
		}
	}
}
