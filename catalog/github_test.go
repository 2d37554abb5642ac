package catalog_test

import (
	"context"
	"testing"

	"github.com/alert-new/recipes/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const githubRepoJSON = `{
	"full_name": "golang/go",
	"description": "The Go programming language",
	"language": "Go",
	"stargazers_count": 123456,
	"forks_count": 17890,
	"open_issues_count": 9001
}`

func TestGitHub(t *testing.T) {
	t.Parallel()

	rec := catalog.GitHub()
	ctx := context.Background()

	t.Run("extracts counters from the API payload", func(t *testing.T) {
		t.Parallel()

		fields, err := rec.Extract(ctx, githubRepoJSON, "https://github.com/golang/go")
		require.NoError(t, err)

		assert.Equal(t, 123456.0, fields["stars"].Float())
		assert.Equal(t, 17890.0, fields["forks"].Float())
		assert.Equal(t, 9001.0, fields["openIssues"].Float())
		assert.Equal(t, "The Go programming language", fields["description"].String())
		assert.Equal(t, "Go", fields["language"].String())
		assert.Equal(t, "golang", fields["owner"].String())
		assert.Equal(t, "go", fields["repo"].String())
	})

	t.Run("rewrites repository URLs to the REST API", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://api.github.com/repos/golang/go", rec.TransformURL("https://github.com/golang/go"))
		assert.Equal(t, "https://api.github.com/repos/golang/go", rec.TransformURL("https://github.com/golang/go/"))
		// Anything that is not a plain repository URL passes through.
		assert.Equal(t, "https://github.com/golang/go/issues", rec.TransformURL("https://github.com/golang/go/issues"))
	})

	t.Run("requests the JSON media type", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "application/vnd.github+json", rec.Headers["Accept"])
	})

	t.Run("owns repository URLs only", func(t *testing.T) {
		t.Parallel()

		assert.True(t, rec.Ownership.Owns("https://github.com/golang/go"))
		assert.True(t, rec.Ownership.Owns("https://github.com/golang/go/"))
		assert.False(t, rec.Ownership.Owns("https://github.com/golang/go/issues"))
		assert.False(t, rec.Ownership.Owns("https://github.com/golang"))
	})
}
