package rowsource

import (
	"context"
	"math"
	"math/rand"

	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
	rowsourcev1 "github.com/ChristopherRussell/polars-order-book/internal/domain/rowsource/v1"
)

// SyntheticConfig parameterizes SyntheticReader's random stream.
type SyntheticConfig struct {
	Symbol string
	// Count is the number of rows to generate before ErrEndOfStream.
	Count int
	// BasePrice is the starting price of the geometric random walk.
	BasePrice int64
	// Volatility is the standard deviation of the walk's per-step log-return.
	Volatility float64
	// MeanQty is the mean of the exponential quantity distribution.
	MeanQty float64
	// Seed seeds the reader's random source for reproducible replay.
	Seed int64
}

// SyntheticReader generates a bounded stream of price-level rows: price
// follows a geometric random walk, quantity is drawn from an exponential
// distribution, and side alternates by a fair coin flip — enough to exercise
// sustained insert/update/evict traffic without a real feed.
type SyntheticReader struct {
	cfg   SyntheticConfig
	rng   *rand.Rand
	price float64
	seq   int64
}

var _ rowsourcev1.Reader = (*SyntheticReader)(nil)

// NewSyntheticReader builds a SyntheticReader from cfg.
func NewSyntheticReader(cfg SyntheticConfig) *SyntheticReader {
	return &SyntheticReader{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		price: float64(cfg.BasePrice),
	}
}

// Read returns the next generated row, or rowsourcev1.ErrEndOfStream once
// cfg.Count rows have been produced.
func (s *SyntheticReader) Read(ctx context.Context) (rowsourcev1.Row, error) {
	if s.seq >= int64(s.cfg.Count) {
		return rowsourcev1.Row{}, rowsourcev1.ErrEndOfStream
	}

	logReturn := s.rng.NormFloat64() * s.cfg.Volatility
	s.price *= math.Exp(logReturn)
	price := int64(s.price)
	if price < 1 {
		price = 1
	}

	qty := int64(s.rng.ExpFloat64() * s.cfg.MeanQty)
	if qty < 1 {
		qty = 1
	}

	side := orderbookv1.Bid
	if s.rng.Float64() < 0.5 {
		side = orderbookv1.Ask
	}

	row := rowsourcev1.Row{
		Symbol: s.cfg.Symbol,
		Side:   side,
		Price:  price,
		Qty:    qty,
		Seq:    s.seq,
	}
	s.seq++
	return row, nil
}

// Close is a no-op; SyntheticReader holds no external resources.
func (s *SyntheticReader) Close() error { return nil }
