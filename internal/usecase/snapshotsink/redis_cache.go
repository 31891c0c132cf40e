// Package snapshotsink publishes each row's encoded snapshot to the host's
// two durability targets: a latest-value-per-symbol cache in Redis, and a
// batched full-history sink in QuestDB.
package snapshotsink

import (
	"context"
	"encoding/json"
	"fmt"

	snapshotv1 "github.com/ChristopherRussell/polars-order-book/internal/domain/snapshot/v1"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
	"github.com/ChristopherRussell/polars-order-book/pkg/redis"
)

// RedisCache keeps the most recent snapshot per symbol, keyed under cfg's
// prefix, and publishes each update to the symbol's channel for live
// subscribers (see internal/usecase/broadcast).
type RedisCache struct {
	client redis.Client
	cfg    config.RedisConfig
	log    *logger.Logger
}

// NewRedisCache builds a RedisCache over client, using cfg's prefix, TTL, and
// channel naming.
func NewRedisCache(client redis.Client, cfg config.RedisConfig, log *logger.Logger) *RedisCache {
	return &RedisCache{client: client, cfg: cfg, log: log}
}

// Store writes snap as the latest snapshot for symbol and publishes it to
// the symbol's snapshot channel.
func (c *RedisCache) Store(ctx context.Context, symbol string, snap snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.NewErrorDetails(
			fmt.Sprintf("failed to marshal snapshot for %s: %v", symbol, err), pkgerrors.RedisSetError, "marshal")
	}

	if err := c.client.Set(ctx, c.key(symbol), buf, c.cfg.DefaultTTL); err != nil {
		c.log.ErrorContext(ctx, err, logger.NewField("symbol", symbol))
		return err
	}

	if _, err := c.client.Publish(ctx, c.channel(symbol), buf); err != nil {
		c.log.ErrorContext(ctx, err, logger.NewField("symbol", symbol))
		return err
	}
	return nil
}

// Load reads the latest snapshot stored for symbol, or (nil, nil) if none
// has been stored yet.
func (c *RedisCache) Load(ctx context.Context, symbol string) (*snapshotv1.Snapshot, error) {
	data, err := c.client.Get(ctx, c.key(symbol))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	var snap snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, pkgerrors.NewErrorDetails(
			fmt.Sprintf("failed to unmarshal snapshot for %s: %v", symbol, err), pkgerrors.RedisGetError, "unmarshal")
	}
	return &snap, nil
}

func (c *RedisCache) key(symbol string) string {
	return c.cfg.SnapshotChannelPrefix + "latest:" + symbol
}

func (c *RedisCache) channel(symbol string) string {
	return c.cfg.SnapshotChannelPrefix + symbol
}
