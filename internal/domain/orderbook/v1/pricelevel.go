package orderbookv1

// PriceLevel is a single price on one side of the book together with its
// aggregated resting quantity. Quantity is strictly positive for any level
// actually stored in a BookSide; a zero-quantity PriceLevel is only ever a
// transient value passed around while an update is being applied.
type PriceLevel struct {
	Price int64
	Qty   int64
}

// ApplyDelta adds delta to the level's quantity and returns the resulting
// quantity. It returns ErrQuantityUnderflow if the result would be negative.
// A zero result is legal and signals the caller to remove the level.
func (p PriceLevel) ApplyDelta(delta int64) (int64, error) {
	newQty := p.Qty + delta
	if newQty < 0 {
		return 0, ErrQuantityUnderflow
	}
	return newQty, nil
}
