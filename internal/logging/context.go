package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// FromContext returns the logger stored in ctx by WithLogger, or the
// default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithSource narrows the context logger to one source file, and to one
// comment block of it when line is positive.
func WithSource(ctx context.Context, path string, line int) context.Context {
	logger := FromContext(ctx).With(FieldPath, path)
	if line > 0 {
		logger = logger.With(FieldLine, line)
	}
	return WithLogger(ctx, logger)
}
