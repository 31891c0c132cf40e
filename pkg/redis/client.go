package redis

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger *logger.Logger
	config *Config
	rdb    *redis.Client
}

// NewClient creates a new Redis client with the provided logger and config.
// It does not connect until Connect is called.
func NewClient(log *logger.Logger, config *Config) Client {
	return &client{logger: log, config: config}
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil || c.config.Addr == "" {
		return pkgerrors.NewErrorDetails("redis config is empty", pkgerrors.RedisConfigError, "connect")
	}

	c.rdb = redis.NewClient(&redis.Options{
		Addr:            c.config.Addr,
		Username:        c.config.Username,
		Password:        c.config.Password,
		DB:              c.config.DB,
		MaxRetries:      c.config.MaxRetries,
		MinRetryBackoff: c.config.MinRetryBackoff,
		MaxRetryBackoff: c.config.MaxRetryBackoff,
		DialTimeout:     c.config.ConnectTimeout,
		ReadTimeout:     c.config.ConnectTimeout,
		WriteTimeout:    c.config.ConnectTimeout,
		PoolSize:        c.config.PoolSize,
	})

	return c.rdb.Ping(ctx).Err()
}

// Reconnect retries Connect with exponential backoff and jitter, matching
// the reconnect discipline used elsewhere in the host layer's redis client.
func (c *client) Reconnect(ctx context.Context) bool {
	baseDelay := c.config.MinRetryBackoff
	maxDelay := c.config.MaxRetryBackoff

	for i := 0; i < c.config.MaxRetries; i++ {
		backoff := min(baseDelay*time.Duration(math.Pow(2, float64(i))), maxDelay)
		jitter := time.Duration(rand.IntN(1000)) * time.Millisecond
		totalDelay := backoff + jitter

		c.logger.Info("reconnecting to redis",
			logger.NewField("attempt", i+1),
			logger.NewField("delay", totalDelay),
		)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(totalDelay):
			connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := c.Connect(connectCtx)
			cancel()
			if err == nil {
				c.logger.Info("reconnected to redis", logger.NewField("attempt", i+1))
				return true
			}
			c.logger.Error(pkgerrors.TracerFromError(err), logger.NewField("attempt", i+1))
		}
	}
	return false
}

func (c *client) Disconnect(ctx context.Context) error {
	return c.rdb.Close()
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return pkgerrors.NewErrorDetails("failed to ping redis", pkgerrors.RedisPingError, "ping")
	}
	return nil
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", pkgerrors.NewErrorDetails("failed to get value from redis", pkgerrors.RedisGetError, "get")
	}
	return val, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		return pkgerrors.NewErrorDetails("failed to set value in redis", pkgerrors.RedisSetError, "set")
	}
	return nil
}

func (c *client) Del(ctx context.Context, keys ...string) (int64, error) {
	deleted, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, pkgerrors.NewErrorDetails("failed to delete keys from redis", pkgerrors.RedisDelError, "del")
	}
	return deleted, nil
}

func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	n, err := c.rdb.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, pkgerrors.NewErrorDetails("failed to publish message to redis", pkgerrors.RedisPublishError, "publish")
	}
	return n, nil
}

func (c *client) Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error) {
	pubSub := c.rdb.Subscribe(ctx, channels...)
	if _, err := pubSub.Receive(ctx); err != nil {
		return nil, pkgerrors.NewErrorDetails("failed to subscribe to redis channels", pkgerrors.RedisSubscribeError, "subscribe")
	}
	return pubSub, nil
}
