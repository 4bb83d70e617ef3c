// Package logger builds the process zap logger and carries per-request
// loggers through context.
package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// Config selects the level and encoding of the process logger.
type Config struct {
	Level  string
	Format string // "json" or "console"
}

// New builds a logger from cfg. Unknown levels fall back to info.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(cfg.Level)))); err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	if strings.EqualFold(cfg.Format, "console") {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build()
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID returns a ctx whose logger carries request_id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(zap.String("request_id", requestID)))
}

// FromContext returns the logger stored in ctx, or the global logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.L()
}
