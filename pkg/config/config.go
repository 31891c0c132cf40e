// Package config loads engine configuration from the environment using
// caarlos0/env struct tags, with an optional .env file via joho/godotenv.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Dialect selects which of the three input encodings a stream uses. It is a
// Go string-backed enum so it round-trips cleanly through env vars and JSON
// row payloads alike.
type Dialect string

const (
	// DialectPriceLevel is price-level replacement (set_qty per row).
	DialectPriceLevel Dialect = "price_level"
	// DialectQuantityDelta is quantity delta (add_qty per row).
	DialectQuantityDelta Dialect = "quantity_delta"
	// DialectDeltaModify is delta-with-modify (add_qty/modify per row).
	DialectDeltaModify Dialect = "delta_modify"
)

// Config is the top-level application configuration, assembled from
// environment variables grouped by prefix.
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	QuestDB  QuestDBConfig  `envPrefix:"QUESTDB_"`
	OrderBook OrderBookConfig `envPrefix:"ORDERBOOK_"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Name     string `env:"NAME" envDefault:"orderbook-engine"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// MetricsAddr is read from APP_METRICS_ADDR but is not used by the
	// replay CLI, which takes its /metrics address from the -metrics-addr
	// flag instead.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
}

// KafkaConfig describes the input row topic.
type KafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"orderbook-updates"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"orderbook-engine"`
	MinBytes      int      `env:"MIN_BYTES" envDefault:"1"`
	MaxBytes      int      `env:"MAX_BYTES" envDefault:"10485760"`
}

// RedisConfig configures the latest-snapshot cache client.
type RedisConfig struct {
	Addr            string        `env:"ADDR" envDefault:"localhost:6379"`
	Username        string        `env:"USERNAME"`
	Password        string        `env:"PASSWORD"`
	DB              int           `env:"DB" envDefault:"0"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	MaxRetries      int           `env:"MAX_RETRIES" envDefault:"3"`
	MinRetryBackoff time.Duration `env:"MIN_RETRY_BACKOFF" envDefault:"100ms"`
	MaxRetryBackoff time.Duration `env:"MAX_RETRY_BACKOFF" envDefault:"2s"`
	PoolSize        int           `env:"POOL_SIZE" envDefault:"10"`
	DefaultTTL      time.Duration `env:"DEFAULT_TTL" envDefault:"5m"`
	SnapshotChannelPrefix string  `env:"SNAPSHOT_CHANNEL_PREFIX" envDefault:"orderbook:snapshot:"`
}

// QuestDBConfig configures the columnar snapshot-history sink.
type QuestDBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"8812"`
	Database string `env:"DATABASE" envDefault:"qdb"`
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"quest"`

	MaxConns        int32         `env:"MAX_CONNS" envDefault:"25"`
	MinConns        int32         `env:"MIN_CONNS" envDefault:"5"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"30m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`

	Table      string `env:"TABLE" envDefault:"orderbook_snapshots"`
	BatchSize  int    `env:"BATCH_SIZE" envDefault:"500"`
}

// OrderBookConfig configures the core engine's per-symbol behavior.
type OrderBookConfig struct {
	// Levels is N, the top-N depth tracked and emitted per side.
	Levels  int    `env:"LEVELS" envDefault:"10"`
	Dialect Dialect `env:"DIALECT" envDefault:"price_level"`
}

// Load reads configuration from the environment, applying a .env file first
// if one is present in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
