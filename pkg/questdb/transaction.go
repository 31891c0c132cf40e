package questdb

import (
	"context"

	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
	"github.com/jackc/pgx/v5"
)

type contextKey string

const txKey contextKey = "questdb_transaction"

// Begin starts a transaction and returns a context carrying it, for Exec,
// Query, QueryRow, and CopyFrom to pick up transparently.
func Begin(ctx context.Context, c Client) (context.Context, error) {
	tx, err := c.Begin(ctx)
	if err != nil {
		return nil, pkgerrors.NewErrorDetails("failed to begin questdb transaction", pkgerrors.QuestDBQueryError, "begin")
	}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction carried by ctx.
func Commit(ctx context.Context) error {
	tx, ok := GetTx(ctx)
	if !ok {
		return pkgerrors.NewErrorDetails("no questdb transaction in context", pkgerrors.QuestDBQueryError, "commit")
	}
	return tx.Commit(ctx)
}

// Rollback rolls back the transaction carried by ctx.
func Rollback(ctx context.Context) error {
	tx, ok := GetTx(ctx)
	if !ok {
		return pkgerrors.NewErrorDetails("no questdb transaction in context", pkgerrors.QuestDBQueryError, "rollback")
	}
	return tx.Rollback(ctx)
}

// GetTx extracts the transaction embedded in ctx by Begin, if any.
func GetTx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}
