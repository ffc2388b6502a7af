package logger

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

var nop = zap.NewNop()

// ContextWithLogger returns ctx carrying l as its request logger.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the request logger of ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return nop
}

// WithIndex returns ctx whose request logger tags every entry with the
// index a request targets.
func WithIndex(ctx context.Context, index string) context.Context {
	return ContextWithLogger(ctx, FromContext(ctx).With(zap.String("index", index)))
}
