// Package ctxutil carries small pieces of correlation state through a
// context.Context so the logger can attach them to every line without every
// call site threading them through explicitly.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type key string

const (
	requestIDKey key = "x-request-id"
	symbolKey    key = "symbol"
)

// WithRequestID returns a context carrying id, generating one if id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request id carried by ctx, or "" if none.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithSymbol returns a context carrying the trading symbol a goroutine is
// processing, e.g. "BTC-USD".
func WithSymbol(ctx context.Context, symbol string) context.Context {
	return context.WithValue(ctx, symbolKey, symbol)
}

// GetSymbol returns the symbol carried by ctx, or "" if none.
func GetSymbol(ctx context.Context) string {
	symbol, _ := ctx.Value(symbolKey).(string)
	return symbol
}
