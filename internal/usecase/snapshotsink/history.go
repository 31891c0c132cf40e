package snapshotsink

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/snapshot/v1"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
	"github.com/ChristopherRussell/polars-order-book/pkg/questdb"
	"github.com/jackc/pgx/v5"
)

// HistoryRecord is one row of the full snapshot history: the top-of-book
// values broken out as columns for indexed querying, plus the full encoded
// snapshot as a JSON column for depth beyond the top.
type HistoryRecord struct {
	Symbol   string
	Seq      int64
	Snapshot snapshotv1.Snapshot
}

// HistorySink batches HistoryRecords and flushes them into QuestDB with
// CopyFrom once cfg.BatchSize is reached, or on an explicit Flush — the same
// discipline the columnar store expects for write throughput.
type HistorySink struct {
	client    questdb.Client
	table     string
	batchSize int
	log       *logger.Logger

	buf []HistoryRecord
}

// NewHistorySink builds a HistorySink over client using cfg's table name and
// batch size.
func NewHistorySink(client questdb.Client, cfg config.QuestDBConfig, log *logger.Logger) *HistorySink {
	return &HistorySink{
		client:    client,
		table:     cfg.Table,
		batchSize: cfg.BatchSize,
		log:       log,
		buf:       make([]HistoryRecord, 0, cfg.BatchSize),
	}
}

// Add buffers rec, flushing automatically once the batch is full.
func (h *HistorySink) Add(ctx context.Context, rec HistoryRecord) error {
	h.buf = append(h.buf, rec)
	if len(h.buf) >= h.batchSize {
		return h.Flush(ctx)
	}
	return nil
}

// Flush writes any buffered records to QuestDB via CopyFrom and clears the
// buffer, regardless of whether the write succeeds.
func (h *HistorySink) Flush(ctx context.Context) error {
	if len(h.buf) == 0 {
		return nil
	}
	records := h.buf
	h.buf = h.buf[:0]

	n, err := h.client.CopyFrom(ctx,
		pgx.Identifier{h.table},
		[]string{"symbol", "seq", "best_bid_price", "best_bid_qty", "best_ask_price", "best_ask_qty", "snapshot_json"},
		&historyCopySource{records: records},
	)
	if err != nil {
		h.log.ErrorContext(ctx, err, logger.NewField("rows", len(records)))
		return err
	}

	h.log.DebugContext(ctx, "flushed snapshot history batch", logger.NewField("rows", n))
	return nil
}

// historyCopySource adapts []HistoryRecord to pgx.CopyFromSource.
type historyCopySource struct {
	records []HistoryRecord
	idx     int
	err     error
}

func (s *historyCopySource) Next() bool {
	return s.idx < len(s.records)
}

func (s *historyCopySource) Values() ([]any, error) {
	rec := s.records[s.idx]
	s.idx++

	payload, err := json.Marshal(rec.Snapshot)
	if err != nil {
		s.err = pkgerrors.NewErrorDetails("failed to marshal snapshot for history row", pkgerrors.QuestDBCopyError, "marshal")
		return nil, s.err
	}

	var bestBidPrice, bestBidQty, bestAskPrice, bestAskQty *int64
	if len(rec.Snapshot.BidPrice) > 0 {
		bestBidPrice, bestBidQty = rec.Snapshot.BidPrice[0], rec.Snapshot.BidQty[0]
	}
	if len(rec.Snapshot.AskPrice) > 0 {
		bestAskPrice, bestAskQty = rec.Snapshot.AskPrice[0], rec.Snapshot.AskQty[0]
	}

	return []any{rec.Symbol, rec.Seq, bestBidPrice, bestBidQty, bestAskPrice, bestAskQty, string(payload)}, nil
}

func (s *historyCopySource) Err() error {
	return s.err
}
