// Package redis wraps github.com/redis/go-redis/v9 with the connect/retry
// discipline and error-code wrapping used across the host layer. It exposes
// only the subset of Redis actually needed here: point get/set/del for the
// latest-snapshot-per-symbol cache, and pub/sub for snapshot fan-out.
package redis

import (
	"context"
	"time"

	v9 "github.com/redis/go-redis/v9"
)

// Client defines the Redis operations the snapshot sink and broadcast
// components depend on.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) bool

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)

	Publish(ctx context.Context, channel string, message any) (int64, error)
	Subscribe(ctx context.Context, channels ...string) (*v9.PubSub, error)
}
