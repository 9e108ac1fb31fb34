package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hdrmap"
)

// Ensure LoggingEmitter implements hdrmap.Emitter.
var _ hdrmap.Emitter = (*LoggingEmitter)(nil)

// LoggingEmitter wraps an Emitter with logging.
type LoggingEmitter struct {
	next   hdrmap.Emitter
	logger *slog.Logger
}

// NewLoggingEmitter creates a new LoggingEmitter.
func NewLoggingEmitter(next hdrmap.Emitter, logger *slog.Logger) *LoggingEmitter {
	return &LoggingEmitter{next: next, logger: logger}
}

// Emit delegates to the wrapped emitter and logs the operation.
func (e *LoggingEmitter) Emit(ctx context.Context, result *hdrmap.Result) (err error) {
	defer func(begin time.Time) {
		e.logger.Info("emit",
			"run", result.RunID,
			"headers", len(result.Headers),
			"identifiers", result.Headers.IdentifierCount(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Emit(ctx, result)
}
