package recipes

import "context"

// FetchSpec tells a Fetcher how to retrieve the payload for one subject URL.
// It is derived from the owning Recipe, so fetcher implementations never
// need the Recipe itself.
type FetchSpec struct {
	// URL is the URL to request, after the recipe's TransformURL.
	URL string

	// Headers are static request headers declared by the recipe.
	Headers map[string]string

	// Render signals the payload must come from a script-executing
	// fetcher. Plain HTTP fetchers refuse such specs.
	Render bool
}

// NewFetchSpec builds the FetchSpec for fetching the payload of rawURL
// under Recipe r, applying the recipe's URL transform and headers.
func NewFetchSpec(r *Recipe, rawURL string) FetchSpec {
	spec := FetchSpec{URL: rawURL, Render: r.RequiresRendering}
	if r.TransformURL != nil {
		spec.URL = r.TransformURL(rawURL)
	}
	if len(r.Headers) > 0 {
		spec.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			spec.Headers[k] = v
		}
	}
	return spec
}

// Fetcher retrieves page payloads for extraction. Fetching is an external
// collaborator concern: the engine core never performs network I/O, and
// retry, backoff and timeouts live with Fetcher implementations.
type Fetcher interface {
	// Fetch retrieves the payload described by spec.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, spec FetchSpec) (payload string, err error)

	// Close releases fetcher resources.
	Close() error
}

// MetadataExtractor pulls generic page metadata out of raw HTML. It backs
// the fallback recipe, which has no site-specific signals to lean on.
type MetadataExtractor interface {
	Metadata(html string) (*PageMetadata, error)
}

// PageMetadata is generic descriptive metadata extracted from a page.
type PageMetadata struct {
	Title       string
	Description string
	Author      string
	SiteName    string
	Image       string
	URL         string

	// Excerpt is the opening of the page's main content, for pages that
	// declare no description of their own.
	Excerpt string
}
