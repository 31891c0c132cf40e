package questdb

import "time"

// Config holds the connection parameters for a QuestDB client, mirroring the
// fields env-decorated on pkg/config.QuestDBConfig without carrying the env
// tags into this package.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration

	ConnectTimeout time.Duration
}
