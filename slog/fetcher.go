package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/alert-new/recipes"
)

// Ensure LoggingFetcher implements recipes.Fetcher.
var _ recipes.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with timing and outcome logging.
type LoggingFetcher struct {
	next   recipes.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next recipes.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, spec recipes.FetchSpec) (string, error) {
	begin := time.Now()
	payload, err := f.next.Fetch(ctx, spec)
	if err != nil {
		f.logger.Error("fetch failed",
			"url", spec.URL,
			"render", spec.Render,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}
	f.logger.Info("fetch",
		"url", spec.URL,
		"render", spec.Render,
		"bytes", len(payload),
		"duration", time.Since(begin),
	)
	return payload, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
