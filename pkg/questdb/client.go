package questdb

import (
	"context"
	"fmt"

	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// client is the default Client implementation, backed by a pgxpool.Pool.
type client struct {
	pool   *pgxpool.Pool
	config Config
}

var _ Client = (*client)(nil)

// NewClient connects to QuestDB's Postgres wire endpoint and returns a Client.
func NewClient(ctx context.Context, config Config) (Client, error) {
	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		config.Username, config.Password, config.Host, config.Port, config.Database)

	pgxConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, pkgerrors.NewErrorDetails("failed to parse questdb config", pkgerrors.QuestDBQueryError, "connect")
	}

	pgxConfig.MaxConns = config.MaxConns
	pgxConfig.MinConns = config.MinConns
	pgxConfig.MaxConnLifetime = config.MaxConnLifetime
	pgxConfig.MaxConnIdleTime = config.MaxConnIdleTime
	pgxConfig.ConnConfig.ConnectTimeout = config.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	if err != nil {
		return nil, pkgerrors.NewErrorDetails("failed to create questdb pool", pkgerrors.QuestDBQueryError, "connect")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, pkgerrors.NewErrorDetails("failed to ping questdb", pkgerrors.QuestDBQueryError, "connect")
	}

	return &client{pool: pool, config: config}, nil
}

func (c *client) Pool() *pgxpool.Pool { return c.pool }

func (c *client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

func (c *client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *client) Exec(ctx context.Context, sql string, args ...any) error {
	if tx, ok := GetTx(ctx); ok {
		_, err := tx.Exec(ctx, sql, args...)
		return err
	}
	_, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return pkgerrors.NewErrorDetails("failed to execute questdb statement", pkgerrors.QuestDBQueryError, "exec")
	}
	return nil
}

func (c *client) Query(ctx context.Context, sql string, args ...any) (RowsInterface, error) {
	if tx, ok := GetTx(ctx); ok {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return nil, pkgerrors.NewErrorDetails("failed to query questdb", pkgerrors.QuestDBQueryError, "query")
		}
		return NewRowsWrapper(rows), nil
	}

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, pkgerrors.NewErrorDetails("failed to query questdb", pkgerrors.QuestDBQueryError, "query")
	}
	return NewRowsWrapper(rows), nil
}

func (c *client) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx, ok := GetTx(ctx); ok {
		return tx.QueryRow(ctx, sql, args...)
	}
	return c.pool.QueryRow(ctx, sql, args...)
}

func (c *client) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.pool.Begin(ctx)
}

// CopyFrom bulk-inserts rows, used for flushing buffered snapshot history.
func (c *client) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	var (
		n   int64
		err error
	)
	if tx, ok := GetTx(ctx); ok {
		n, err = tx.CopyFrom(ctx, tableName, columnNames, rowSrc)
	} else {
		n, err = c.pool.CopyFrom(ctx, tableName, columnNames, rowSrc)
	}
	if err != nil {
		return 0, pkgerrors.NewErrorDetails("failed to copy rows into questdb", pkgerrors.QuestDBCopyError, "copy_from")
	}
	return n, nil
}
