// Package logging provides the zerolog setup shared by the world generation
// pipeline and its callers.
package logging

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	runIDKey contextKey = "run_id"
	loggerKey contextKey = "logger"
)

// InitLogger initializes the global logger.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// WithRun attaches a run identifier to the context, deriving a scoped logger
// that tags every entry with it. Callers use this to correlate the stage
// logs emitted by a single generate() invocation.
func WithRun(ctx context.Context, seed int64) context.Context {
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Int64("seed", seed).Logger()
	ctx = context.WithValue(ctx, runIDKey, runID)
	ctx = context.WithValue(ctx, loggerKey, logger)
	return ctx
}

// FromContext returns the logger scoped to the context, or the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// RunID returns the run identifier stashed in the context, if any.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// StageTimer logs the start and, via the returned func, the completion of a
// pipeline stage along with its wall-clock duration.
func StageTimer(ctx context.Context, stage string) func() {
	logger := FromContext(ctx)
	start := time.Now()
	logger.Debug().Str("stage", stage).Msg("stage started")
	return func() {
		logger.Info().
			Str("stage", stage).
			Dur("elapsed", time.Since(start)).
			Msg("stage completed")
	}
}
