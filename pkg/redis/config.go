package redis

import "time"

// Config holds the configuration for a standalone Redis client.
type Config struct {
	Addr            string
	Username        string
	Password        string
	DB              int
	ConnectTimeout  time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	PoolSize        int
}
