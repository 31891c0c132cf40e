package snapshotsink

import (
	"context"
	"testing"
	"time"

	snapshotv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/snapshot/v1"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
	v9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedisClient is a minimal in-memory stand-in for pkg/redis.Client,
// enough to exercise RedisCache without a live Redis instance.
type fakeRedisClient struct {
	store     map[string]string
	published map[string][]string
}

func newFakeRedisClient() *fakeRedisClient {
	return &fakeRedisClient{store: map[string]string{}, published: map[string][]string{}}
}

func (f *fakeRedisClient) Connect(ctx context.Context) error    { return nil }
func (f *fakeRedisClient) Disconnect(ctx context.Context) error { return nil }
func (f *fakeRedisClient) Ping(ctx context.Context) error       { return nil }
func (f *fakeRedisClient) Reconnect(ctx context.Context) bool   { return true }

func (f *fakeRedisClient) Get(ctx context.Context, key string) (string, error) {
	return f.store[key], nil
}

func (f *fakeRedisClient) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	}
	return nil
}

func (f *fakeRedisClient) Del(ctx context.Context, keys ...string) (int64, error) {
	for _, k := range keys {
		delete(f.store, k)
	}
	return int64(len(keys)), nil
}

func (f *fakeRedisClient) Publish(ctx context.Context, channel string, message any) (int64, error) {
	switch v := message.(type) {
	case []byte:
		f.published[channel] = append(f.published[channel], string(v))
	case string:
		f.published[channel] = append(f.published[channel], v)
	}
	return 1, nil
}

func (f *fakeRedisClient) Subscribe(ctx context.Context, channels ...string) (*v9.PubSub, error) {
	return nil, nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.ErrorLevel)
	require.NoError(t, err)
	return log
}

func TestRedisCache_StoreThenLoad(t *testing.T) {
	fake := newFakeRedisClient()
	cfg := config.RedisConfig{SnapshotChannelPrefix: "orderbook:snapshot:", DefaultTTL: time.Minute}
	cache := NewRedisCache(fake, cfg, newTestLogger(t))

	price, qty := int64(100), int64(5)
	snap := snapshotv1.Snapshot{
		BidPrice: []*int64{&price}, BidQty: []*int64{&qty},
		AskPrice: []*int64{nil}, AskQty: []*int64{nil},
	}

	require.NoError(t, cache.Store(context.Background(), "BTC-USD", snap))

	loaded, err := cache.Load(context.Background(), "BTC-USD")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.BidPrice, 1)
	assert.Equal(t, int64(100), *loaded.BidPrice[0])
	assert.Nil(t, loaded.AskPrice[0])

	assert.Len(t, fake.published["orderbook:snapshot:BTC-USD"], 1)
}

func TestRedisCache_LoadMissingSymbolReturnsNil(t *testing.T) {
	fake := newFakeRedisClient()
	cfg := config.RedisConfig{SnapshotChannelPrefix: "orderbook:snapshot:"}
	cache := NewRedisCache(fake, cfg, newTestLogger(t))

	loaded, err := cache.Load(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
