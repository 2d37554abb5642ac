// Package rod provides a rendering implementation of recipes.Fetcher using
// Chrome browser automation. It serves recipes flagged RequiresRendering;
// the engine itself never executes scripts.
package rod

import (
	"context"

	"github.com/alert-new/recipes"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements recipes.Fetcher at compile time.
var _ recipes.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, recipes.Errorf(recipes.EINTERNAL, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, recipes.Errorf(recipes.EINTERNAL, "connecting to browser: %v", err)
	}

	return &Fetcher{browser: browser}, nil
}

// Fetch navigates to the spec's URL and returns the rendered HTML. The
// recipe's static headers are applied to every request the page makes.
func (f *Fetcher) Fetch(ctx context.Context, spec recipes.FetchSpec) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Create a new page
	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if len(spec.Headers) > 0 {
		pairs := make([]string, 0, len(spec.Headers)*2)
		for k, v := range spec.Headers {
			pairs = append(pairs, k, v)
		}
		cleanup, err := page.SetExtraHeaders(pairs)
		if err != nil {
			return "", err
		}
		defer cleanup()
	}

	// Navigate to URL
	if err := page.Navigate(spec.URL); err != nil {
		return "", err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Get rendered HTML
	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
