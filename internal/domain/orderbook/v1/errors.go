package orderbookv1

import "errors"

// Error taxonomy for book-side and order-book mutations. These are sentinel
// errors; the host engine reports them wrapped in a RowError carrying the
// row's sequence number, and maps them to pkg/errors codes for metrics.
var (
	// ErrDeleteMissingLevel is returned when a decrement or delete targets a
	// price the book does not contain.
	ErrDeleteMissingLevel = errors.New("order book: delete missing level")
	// ErrQuantityUnderflow is returned when a mutation would leave an
	// aggregate quantity negative.
	ErrQuantityUnderflow = errors.New("order book: quantity underflow")
	// ErrZeroInsert is returned for a create-operation with zero quantity.
	ErrZeroInsert = errors.New("order book: zero insert")
	// ErrModifyMismatch is returned when a dialect-C row's prev_price/prev_qty
	// does not correspond to an existing level.
	ErrModifyMismatch = errors.New("order book: modify mismatch")
	// ErrMalformedRow is returned for a dialect-C row with exactly one of
	// prev_price/prev_qty present.
	ErrMalformedRow = errors.New("order book: malformed row")
	// ErrCapacityInvalid is returned when N is configured negative.
	ErrCapacityInvalid = errors.New("order book: capacity invalid")
)
