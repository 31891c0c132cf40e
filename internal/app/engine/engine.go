// Package engine wires a row source through the dispatcher to the snapshot
// sinks, one OrderBook per symbol, each driven by its own goroutine so no
// symbol's processing can stall another's.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	orderbookv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/orderbook/v1"
	rowsourcev1 "github.com/ChristopherRussell/polars-order-book/internal/domain/rowsource/v1"
	snapshotv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/snapshot/v1"
	"github.com/ChristopherRussell/polars-order-book/internal/usecase/dispatch"
	"github.com/ChristopherRussell/polars-order-book/internal/usecase/orderbook"
	"github.com/ChristopherRussell/polars-order-book/internal/usecase/snapshotsink"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
)

// RowError reports a row the dispatcher rejected, tagged with the row's
// stream-relative position so a replay harness can report "row <i>: <err>"
// without the dispatcher itself needing to track offsets.
type RowError struct {
	Symbol string
	Seq    int64
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Seq, e.Symbol, e.Err)
}

// Unwrap exposes the underlying dispatcher error for errors.Is/As.
func (e *RowError) Unwrap() error { return e.Err }

// symbolPipeline holds the per-symbol state the engine keeps entirely on its
// own goroutine: an OrderBook-backed dispatcher, an encoder, and the inbound
// row queue for rows belonging to this symbol.
type symbolPipeline struct {
	dispatcher *dispatch.Dispatcher
	encoder    *snapshotv1.Encoder
	rows       chan rowsourcev1.Row
	seq        int64
}

// Engine reads rows from a single Reader and fans them out to one
// goroutine-driven OrderBook per symbol.
type Engine struct {
	reader  rowsourcev1.Reader
	cache   *snapshotsink.RedisCache
	history *snapshotsink.HistorySink
	metrics *Metrics
	log     *logger.Logger
	cfg     config.OrderBookConfig

	symbols sync.Map // string -> *symbolPipeline

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	errs chan *RowError
}

// New builds an Engine over reader, publishing snapshots to cache and
// history, and reporting rejected rows on a bounded channel callers can
// drain with Errors().
func New(
	reader rowsourcev1.Reader,
	cache *snapshotsink.RedisCache,
	history *snapshotsink.HistorySink,
	metrics *Metrics,
	log *logger.Logger,
	cfg config.OrderBookConfig,
) *Engine {
	return &Engine{
		reader:  reader,
		cache:   cache,
		history: history,
		metrics: metrics,
		log:     log,
		cfg:     cfg,
		errs:    make(chan *RowError, 256),
	}
}

// Errors returns the channel of rejected rows. Callers should drain it
// alongside Start to avoid blocking the engine once it fills.
func (e *Engine) Errors() <-chan *RowError { return e.errs }

// Start launches the reader loop. It returns immediately; processing runs on
// background goroutines until ctx is canceled or the source ends.
func (e *Engine) Start(ctx context.Context) {
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.wg.Add(1)
	go e.runReader()
}

// Stop cancels all processing, waits for it to finish, and then flushes any
// buffered history rows.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		e.log.Warn("engine stop timeout exceeded")
		return ctx.Err()
	}

	return e.history.Flush(ctx)
}

func (e *Engine) runReader() {
	defer e.wg.Done()
	defer e.reader.Close()

	for {
		select {
		case <-e.ctx.Done():
			return
		default:
		}

		row, err := e.reader.Read(e.ctx)
		if err != nil {
			if errors.Is(err, rowsourcev1.ErrEndOfStream) {
				e.log.Info("row source exhausted")
				e.cancel()
				return
			}
			if e.ctx.Err() != nil {
				return
			}
			e.log.Error(err, logger.NewField("operation", "read_row"))
			continue
		}

		e.pipelineFor(row.Symbol).rows <- row
	}
}

// pipelineFor returns the symbol's pipeline, creating it (and its processing
// goroutine) on first use.
func (e *Engine) pipelineFor(symbol string) *symbolPipeline {
	if existing, ok := e.symbols.Load(symbol); ok {
		return existing.(*symbolPipeline)
	}

	book, err := orderbook.New(e.cfg.Levels)
	if err != nil {
		// Levels is not validated before this point; orderbook.New rejects a
		// negative value here, and the process cannot proceed without a book.
		e.log.GetZap().Fatal(err.Error())
	}

	pipeline := &symbolPipeline{
		dispatcher: dispatch.New(book, e.cfg.Dialect),
		encoder:    snapshotv1.NewEncoder(e.cfg.Levels),
		rows:       make(chan rowsourcev1.Row, 256),
	}

	actual, loaded := e.symbols.LoadOrStore(symbol, pipeline)
	if loaded {
		return actual.(*symbolPipeline)
	}

	e.wg.Add(1)
	go e.runSymbol(symbol, pipeline)
	return pipeline
}

func (e *Engine) runSymbol(symbol string, pipeline *symbolPipeline) {
	defer e.wg.Done()

	for {
		select {
		case <-e.ctx.Done():
			return
		case row := <-pipeline.rows:
			e.processRow(symbol, pipeline, row)
		}
	}
}

func (e *Engine) processRow(symbol string, pipeline *symbolPipeline, row rowsourcev1.Row) {
	bid, ask, err := pipeline.dispatcher.Apply(dispatch.Row{
		Side:      row.Side,
		Price:     row.Price,
		Qty:       row.Qty,
		PrevPrice: row.PrevPrice,
		PrevQty:   row.PrevQty,
	})
	if err != nil {
		e.metrics.DispatchErrors.WithLabelValues(symbol, errorCode(err)).Inc()
		e.reportRowError(&RowError{Symbol: symbol, Seq: row.Seq, Err: err})
		return
	}

	e.metrics.RowsProcessed.WithLabelValues(symbol).Inc()
	e.metrics.BookDepth.WithLabelValues(symbol, orderbookv1.Bid.String()).Set(float64(len(bid)))
	e.metrics.BookDepth.WithLabelValues(symbol, orderbookv1.Ask.String()).Set(float64(len(ask)))

	snap := pipeline.encoder.Encode(bid, ask)

	if err := e.cache.Store(e.ctx, symbol, snap); err != nil {
		e.log.ErrorContext(e.ctx, err, logger.NewField("symbol", symbol))
	} else {
		e.metrics.SnapshotsStored.WithLabelValues(symbol).Inc()
	}

	pipeline.seq++
	if err := e.history.Add(e.ctx, snapshotsink.HistoryRecord{Symbol: symbol, Seq: pipeline.seq, Snapshot: snap}); err != nil {
		e.log.ErrorContext(e.ctx, err, logger.NewField("symbol", symbol))
	}
}

func (e *Engine) reportRowError(rowErr *RowError) {
	select {
	case e.errs <- rowErr:
	default:
		e.log.Warn("row error channel full, dropping", logger.NewField("symbol", rowErr.Symbol))
	}
}

// errorCode maps a dispatcher error to the ErrorCode vocabulary used for
// metrics labeling, without introducing an import cycle back into
// internal/domain/orderbook/v1.
func errorCode(err error) string {
	switch {
	case errors.Is(err, orderbookv1.ErrDeleteMissingLevel):
		return string(pkgerrors.OrderBookDeleteMissingLevel)
	case errors.Is(err, orderbookv1.ErrQuantityUnderflow):
		return string(pkgerrors.OrderBookQuantityUnderflow)
	case errors.Is(err, orderbookv1.ErrZeroInsert):
		return string(pkgerrors.OrderBookZeroInsert)
	case errors.Is(err, orderbookv1.ErrModifyMismatch):
		return string(pkgerrors.OrderBookModifyMismatch)
	case errors.Is(err, orderbookv1.ErrMalformedRow):
		return string(pkgerrors.OrderBookMalformedRow)
	case errors.Is(err, orderbookv1.ErrCapacityInvalid):
		return string(pkgerrors.OrderBookCapacityInvalid)
	default:
		return string(pkgerrors.GeneralInternalServerError)
	}
}
