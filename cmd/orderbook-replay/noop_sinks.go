package main

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ChristopherRussell/polars-order-book/pkg/questdb"
	v9 "github.com/redis/go-redis/v9"
)

// noopRedisClient discards everything; used in -redis=false replay runs so
// the engine's snapshot cache step has somewhere to write without a live
// Redis instance.
type noopRedisClient struct{}

func (noopRedisClient) Connect(ctx context.Context) error    { return nil }
func (noopRedisClient) Disconnect(ctx context.Context) error { return nil }
func (noopRedisClient) Ping(ctx context.Context) error       { return nil }
func (noopRedisClient) Reconnect(ctx context.Context) bool   { return true }
func (noopRedisClient) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}
func (noopRedisClient) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return nil
}
func (noopRedisClient) Del(ctx context.Context, keys ...string) (int64, error) { return 0, nil }
func (noopRedisClient) Publish(ctx context.Context, channel string, message any) (int64, error) {
	return 0, nil
}
func (noopRedisClient) Subscribe(ctx context.Context, channels ...string) (*v9.PubSub, error) {
	return nil, errors.New("subscribe unsupported without a live redis instance")
}

// noopQuestDBClient drains CopyFrom batches without writing anywhere; used
// in -questdb=false replay runs to exercise the history sink's batching
// without a live QuestDB instance.
type noopQuestDBClient struct{}

func (noopQuestDBClient) Exec(ctx context.Context, sql string, args ...any) error { return nil }
func (noopQuestDBClient) Query(ctx context.Context, sql string, args ...any) (questdb.RowsInterface, error) {
	return nil, nil
}
func (noopQuestDBClient) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (noopQuestDBClient) Begin(ctx context.Context) (pgx.Tx, error)                     { return nil, nil }
func (noopQuestDBClient) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	var n int64
	for rowSrc.Next() {
		if _, err := rowSrc.Values(); err != nil {
			return n, err
		}
		n++
	}
	return n, rowSrc.Err()
}
func (noopQuestDBClient) Ping(ctx context.Context) error { return nil }
func (noopQuestDBClient) Close()                         {}
func (noopQuestDBClient) Pool() *pgxpool.Pool            { return nil }
