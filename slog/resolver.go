// Package slog provides logging decorators for the engine's collaborator
// interfaces. The engine core stays log-free; callers opt in by wrapping.
package slog

import (
	"log/slog"
	"time"

	"github.com/alert-new/recipes"
)

// Ensure LoggingResolver implements recipes.Resolver.
var _ recipes.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with debug logging for dispatch decisions.
type LoggingResolver struct {
	next   recipes.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next recipes.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve resolves the URL, logging which recipe claimed it.
func (r *LoggingResolver) Resolve(url string) *recipes.Recipe {
	begin := time.Now()
	rec := r.next.Resolve(url)
	r.logger.Info("recipe dispatch",
		"url", url,
		"recipe", rec.ID,
		"duration", time.Since(begin),
	)
	return rec
}

// LookupByIdentity delegates to the wrapped resolver.
func (r *LoggingResolver) LookupByIdentity(id string) (*recipes.Recipe, bool) {
	return r.next.LookupByIdentity(id)
}

// ListAll delegates to the wrapped resolver.
func (r *LoggingResolver) ListAll() []*recipes.Recipe {
	return r.next.ListAll()
}
