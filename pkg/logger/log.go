// Package logger wraps go.uber.org/zap with the request/symbol correlation
// fields the engine attaches to every line, and with stack-trace-aware error
// logging that understands pkg/errors.ErrorTracer.
package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/ChristopherRussell/polars-order-book/pkg/ctxutil"
	pkgerrors "github.com/ChristopherRussell/polars-order-book/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger to provide structured logging with correlation
// fields and stack-trace-aware error logging.
type Logger struct {
	logger *zap.Logger
}

// Field holds a key-value pair to be written to a log line.
type Field struct {
	Key   string
	Value any
}

// NewField returns a Field with the given key and value.
func NewField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Level represents the severity level of the log.
type Level string

const (
	// DebugLevel is used for debug messages.
	DebugLevel Level = "debug"
	// InfoLevel is used for informational messages.
	InfoLevel Level = "info"
	// WarnLevel is used for warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel is used for error messages.
	ErrorLevel Level = "error"
)

func (level Level) zapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New creates a Logger at the given level, writing JSON to stderr (zap's
// production configuration).
func New(level Level) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	cfg.EncoderConfig.MessageKey = "message"

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger: zl}, nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// GetZap returns the underlying zap.Logger.
func (l *Logger) GetZap() *zap.Logger {
	return l.logger
}

// Info writes a log line at info level.
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, convertFields(fields)...)
}

// InfoContext writes a log line at info level with correlation fields from ctx.
func (l *Logger) InfoContext(ctx context.Context, message string, fields ...Field) {
	l.Info(message, appendCorrelation(ctx, fields)...)
}

// Warn writes a log line at warn level.
func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, convertFields(fields)...)
}

// WarnContext writes a log line at warn level with correlation fields from ctx.
func (l *Logger) WarnContext(ctx context.Context, message string, fields ...Field) {
	l.Warn(message, appendCorrelation(ctx, fields)...)
}

// Debug writes a log line at debug level.
func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, convertFields(fields)...)
}

// DebugContext writes a log line at debug level with correlation fields from ctx.
func (l *Logger) DebugContext(ctx context.Context, message string, fields ...Field) {
	l.Debug(message, appendCorrelation(ctx, fields)...)
}

// Error writes a log line at error level, attaching err's stack trace if it
// carries one via pkgerrors.StackTracer.
func (l *Logger) Error(err error, fields ...Field) {
	zapFields := convertFields(fields)
	stacktrace := ""
	if tracer, ok := err.(pkgerrors.StackTracer); ok {
		stacktrace = strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace()))
	}

	if ce := l.logger.Check(zapcore.ErrorLevel, err.Error()); ce != nil {
		if stacktrace != "" {
			ce.Stack = stacktrace
		}
		ce.Write(zapFields...)
	}
}

// ErrorContext writes a log line at error level with correlation fields from ctx.
func (l *Logger) ErrorContext(ctx context.Context, err error, fields ...Field) {
	l.Error(err, appendCorrelation(ctx, fields)...)
}

// WithFields returns a child logger with fields attached to every line.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{logger: l.logger.With(convertFields(fields)...)}
}

func convertFields(fields []Field) []zapcore.Field {
	zapFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}

func appendCorrelation(ctx context.Context, fields []Field) []Field {
	out := append(fields, NewField("request_id", ctxutil.GetRequestID(ctx)))
	if symbol := ctxutil.GetSymbol(ctx); symbol != "" {
		out = append(out, NewField("symbol", symbol))
	}
	return out
}
