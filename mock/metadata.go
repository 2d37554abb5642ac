package mock

import "github.com/alert-new/recipes"

var _ recipes.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of recipes.MetadataExtractor.
type MetadataExtractor struct {
	MetadataFn func(html string) (*recipes.PageMetadata, error)
}

func (m *MetadataExtractor) Metadata(html string) (*recipes.PageMetadata, error) {
	return m.MetadataFn(html)
}
