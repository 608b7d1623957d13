// Package contextutil carries request-scoped values across package
// boundaries. Today that is only the structured logger the HTTP middleware
// attaches to each request.
package contextutil

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerKey contextKey = "logger"

// LoggerKey returns the context key the HTTP middleware uses to attach a
// request-scoped logger. Exported so middleware and context consumers agree
// on a single key.
func LoggerKey() contextKey {
	return loggerKey
}

// LoggerFromContext returns the request-scoped logger, or the process-wide
// default when none was attached. Callers never get nil back.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
