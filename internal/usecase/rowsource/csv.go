package rowsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	rowsourcev1 "github.com/ChristopherRussell/polars-order-book/internal/domain/rowsource/v1"
	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
)

// CSVReader replays rows from a headerless CSV with columns:
// symbol,side,price,qty,prev_price,prev_qty,seq
// prev_price and prev_qty are empty strings when absent.
type CSVReader struct {
	reader *csv.Reader
	closer io.Closer
}

var _ rowsourcev1.Reader = (*CSVReader)(nil)

// NewCSVReader builds a CSVReader over r. If r also implements io.Closer,
// Close releases it.
func NewCSVReader(r io.Reader) *CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 7

	closer, _ := r.(io.Closer)
	return &CSVReader{reader: cr, closer: closer}
}

// Read returns the next row, or rowsourcev1.ErrEndOfStream at EOF.
func (r *CSVReader) Read(ctx context.Context) (rowsourcev1.Row, error) {
	record, err := r.reader.Read()
	if err == io.EOF {
		return rowsourcev1.Row{}, rowsourcev1.ErrEndOfStream
	}
	if err != nil {
		return rowsourcev1.Row{}, pkgerrors.NewErrorDetails(
			fmt.Sprintf("failed to read csv row: %v", err), pkgerrors.RowSourceDecodeError, "decode")
	}
	return parseCSVRecord(record)
}

// Close releases the underlying reader, if closeable.
func (r *CSVReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func parseCSVRecord(record []string) (rowsourcev1.Row, error) {
	side, err := parseSide(record[1])
	if err != nil {
		return rowsourcev1.Row{}, err
	}

	price, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return rowsourcev1.Row{}, decodeErrf("invalid price %q", record[2])
	}
	qty, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return rowsourcev1.Row{}, decodeErrf("invalid qty %q", record[3])
	}

	prevPrice, err := parseOptionalInt(record[4])
	if err != nil {
		return rowsourcev1.Row{}, decodeErrf("invalid prev_price %q", record[4])
	}
	prevQty, err := parseOptionalInt(record[5])
	if err != nil {
		return rowsourcev1.Row{}, decodeErrf("invalid prev_qty %q", record[5])
	}

	seq, err := strconv.ParseInt(record[6], 10, 64)
	if err != nil {
		return rowsourcev1.Row{}, decodeErrf("invalid seq %q", record[6])
	}

	return rowsourcev1.Row{
		Symbol:    record[0],
		Side:      side,
		Price:     price,
		Qty:       qty,
		PrevPrice: prevPrice,
		PrevQty:   prevQty,
		Seq:       seq,
	}, nil
}

func parseOptionalInt(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeErrf(format string, args ...any) error {
	return pkgerrors.NewErrorDetails(fmt.Sprintf(format, args...), pkgerrors.RowSourceDecodeError, "decode")
}
