// Package http provides a plain HTTP implementation of recipes.Fetcher.
// It honors the recipe's declared request headers and URL transform (both
// carried by the FetchSpec) but does not execute JavaScript: specs flagged
// Render are refused, so callers skip rendering recipes by default.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/alert-new/recipes"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// defaultUserAgent is sent when the recipe declares no User-Agent of its own.
const defaultUserAgent = "alert-new-recipes/1.0 (+https://github.com/alert-new/recipes)"

// Ensure Fetcher implements recipes.Fetcher at compile time.
var _ recipes.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves payloads over plain HTTP. Suitable for static pages
// and JSON endpoints; rendering recipes need rod.Fetcher.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter Limiter
}

// Limiter gates requests per domain. Implemented by DomainLimiter.
type Limiter interface {
	Wait(ctx context.Context, domain string) error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLimiter rate-limits requests through the given limiter.
func WithLimiter(l Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the payload described by spec.
func (f *Fetcher) Fetch(ctx context.Context, spec recipes.FetchSpec) (string, error) {
	if spec.Render {
		return "", recipes.Errorf(recipes.EINVALID, "%q requires a rendering fetcher", spec.URL)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, domainOf(spec.URL)); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spec.URL, nil)
	if err != nil {
		return "", recipes.Errorf(recipes.EINVALID, "invalid fetch URL %q: %v", spec.URL, err)
	}

	req.Header.Set("User-Agent", defaultUserAgent)
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", recipes.Errorf(recipes.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, spec.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
