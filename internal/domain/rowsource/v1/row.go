// Package rowsourcev1 defines the wire-agnostic shape of one input update
// row, decoded from whichever transport (Kafka, CSV, synthetic generator)
// produced it.
package rowsourcev1

import (
	"context"
	"errors"

	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
)

// ErrEndOfStream is returned by Reader.Read once its underlying source is
// exhausted — a finite CSV file or a bounded synthetic run. A live Kafka
// reader never returns it; it blocks until ctx is canceled instead.
var ErrEndOfStream = errors.New("rowsource: end of stream")

// Row is one decoded update in whichever dialect the reader was configured
// for. PrevPrice and PrevQty are only ever populated under the
// delta-with-modify dialect; Seq is the row's position in its source stream,
// used to report per-row errors without the dispatcher needing to know it.
type Row struct {
	Symbol    string
	Side      orderbookv1.Side
	Price     int64
	Qty       int64
	PrevPrice *int64
	PrevQty   *int64
	Seq       int64
}

// Reader produces a stream of Rows, one at a time.
type Reader interface {
	// Read blocks until the next row is available, ctx is canceled, or the
	// stream ends (ErrEndOfStream).
	Read(ctx context.Context) (Row, error)
	// Close releases any resources held by the reader.
	Close() error
}
