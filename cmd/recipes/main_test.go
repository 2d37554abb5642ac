package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alert-new/recipes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against the built-in catalog and returns its output.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	err = NewMain().Run(context.Background(), args, &out, &errBuf)
	return out.String(), errBuf.String(), err
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no arguments", func(t *testing.T) {
		t.Parallel()
		_, _, err := run(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := run(t, "help")
		require.NoError(t, err)
		assert.Contains(t, stdout, "recipes")
	})
}

func TestListCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "list")
	require.NoError(t, err)

	for _, id := range []string{"amazon", "ebay", "github", "youtube", "twitter", "feed", "generic"} {
		assert.Contains(t, stdout, id)
	}
	assert.Contains(t, stdout, "(rendering)")
}

func TestShowCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints the projection as JSON", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "show", "github")
		require.NoError(t, err)

		var p recipes.Projection
		require.NoError(t, json.Unmarshal([]byte(stdout), &p))
		assert.Equal(t, "github", p.ID)
		assert.NotEmpty(t, p.URLPattern)
		assert.NotEmpty(t, p.Fields)
	})

	t.Run("unknown identity", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "show", "nope")
		require.Error(t, err)
		assert.Equal(t, recipes.ENOTFOUND, recipes.ErrorCode(err))
		assert.Contains(t, stderr, "nope")
	})
}

func TestResolveCmd(t *testing.T) {
	t.Parallel()

	t.Run("dispatches to a site recipe", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := run(t, "resolve", "https://www.amazon.com/dp/B09B8V1LZ3")
		require.NoError(t, err)
		assert.Contains(t, stdout, "amazon")
	})

	t.Run("falls back to generic", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := run(t, "resolve", "https://unclaimed.example/page")
		require.NoError(t, err)
		assert.Contains(t, stdout, "generic")
	})
}

func TestExtractCmd(t *testing.T) {
	t.Parallel()

	t.Run("extracts from a payload file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "repo.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"stargazers_count":42,"forks_count":7,"open_issues_count":1}`), 0o644))

		stdout, _, err := run(t, "extract", "https://github.com/golang/go", "--file", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "recipe: github")
		assert.Contains(t, stdout, `"stars": 42`)
	})

	t.Run("forced recipe overrides dispatch", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		page := `<html><head><meta property="og:title" content="A Page"></head></html>`
		require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

		stdout, _, err := run(t, "extract", "https://www.amazon.com/dp/B09B8V1LZ3", "--file", path, "--recipe", "generic")
		require.NoError(t, err)
		assert.Contains(t, stdout, "recipe: generic")
		assert.Contains(t, stdout, `"title": "A Page"`)
	})

	t.Run("rendering recipes are refused without --render or --file", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "extract", "https://x.com/jack/status/20")
		require.Error(t, err)
		assert.Equal(t, recipes.EINVALID, recipes.ErrorCode(err))
		assert.Contains(t, stderr, "--render")
	})

	t.Run("unknown forced recipe", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "extract", "https://a.test/", "--recipe", "nope")
		require.Error(t, err)
		assert.Equal(t, recipes.ENOTFOUND, recipes.ErrorCode(err))
	})
}

func TestValidateCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 errors")
}
