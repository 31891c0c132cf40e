// Package questdb wraps github.com/jackc/pgx/v5's pgxpool against a QuestDB
// instance, exposing query/exec/transaction/CopyFrom access for the snapshot
// history sink.
package questdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RowsInterface wraps pgx.Rows so callers can be tested against a fake.
type RowsInterface interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// RowsWrapper adapts pgx.Rows to RowsInterface.
type RowsWrapper struct {
	rows pgx.Rows
}

// NewRowsWrapper wraps rows as a RowsInterface.
func NewRowsWrapper(rows pgx.Rows) RowsInterface {
	return &RowsWrapper{rows: rows}
}

func (r *RowsWrapper) Next() bool            { return r.rows.Next() }
func (r *RowsWrapper) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *RowsWrapper) Close()                { r.rows.Close() }
func (r *RowsWrapper) Err() error            { return r.rows.Err() }

// Client defines the QuestDB operations the snapshot history sink depends on.
type Client interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (RowsInterface, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	Begin(ctx context.Context) (pgx.Tx, error)

	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)

	Ping(ctx context.Context) error
	Close()

	Pool() *pgxpool.Pool
}
