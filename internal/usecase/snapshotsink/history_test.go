package snapshotsink

import (
	"context"
	"testing"

	snapshotv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/snapshot/v1"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	"github.com/ChristopherRussell/polars-order-book/pkg/questdb"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuestDBClient records the values of every row its CopyFrom calls drain
// (one entry per row, not per call) so tests can assert on batching without
// a live QuestDB instance.
type fakeQuestDBClient struct {
	copyFromCalls [][]any
}

var _ questdb.Client = (*fakeQuestDBClient)(nil)

func (f *fakeQuestDBClient) Exec(ctx context.Context, sql string, args ...any) error { return nil }

func (f *fakeQuestDBClient) Query(ctx context.Context, sql string, args ...any) (questdb.RowsInterface, error) {
	return nil, nil
}

func (f *fakeQuestDBClient) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (f *fakeQuestDBClient) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }

func (f *fakeQuestDBClient) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	var n int64
	for rowSrc.Next() {
		values, err := rowSrc.Values()
		if err != nil {
			return n, err
		}
		f.copyFromCalls = append(f.copyFromCalls, values)
		n++
	}
	return n, rowSrc.Err()
}

func (f *fakeQuestDBClient) Ping(ctx context.Context) error { return nil }
func (f *fakeQuestDBClient) Close()                         {}
func (f *fakeQuestDBClient) Pool() *pgxpool.Pool             { return nil }

func TestHistorySink_FlushesAutomaticallyAtBatchSize(t *testing.T) {
	fake := &fakeQuestDBClient{}
	cfg := config.QuestDBConfig{Table: "orderbook_snapshots", BatchSize: 2}
	sink := NewHistorySink(fake, cfg, newTestLogger(t))

	price := int64(100)
	snap := snapshotv1.Snapshot{BidPrice: []*int64{&price}, BidQty: []*int64{&price}, AskPrice: []*int64{nil}, AskQty: []*int64{nil}}

	require.NoError(t, sink.Add(context.Background(), HistoryRecord{Symbol: "BTC-USD", Seq: 1, Snapshot: snap}))
	assert.Empty(t, fake.copyFromCalls)

	require.NoError(t, sink.Add(context.Background(), HistoryRecord{Symbol: "BTC-USD", Seq: 2, Snapshot: snap}))
	assert.Len(t, fake.copyFromCalls, 2)
}

func TestHistorySink_FlushIsNoopWhenEmpty(t *testing.T) {
	fake := &fakeQuestDBClient{}
	cfg := config.QuestDBConfig{Table: "orderbook_snapshots", BatchSize: 10}
	sink := NewHistorySink(fake, cfg, newTestLogger(t))

	require.NoError(t, sink.Flush(context.Background()))
	assert.Empty(t, fake.copyFromCalls)
}
