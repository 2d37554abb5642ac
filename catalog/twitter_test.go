package catalog_test

import (
	"context"
	"testing"

	"github.com/alert-new/recipes/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twitterPostPage = `<html><head>
	<meta property="og:description" content="just setting up my twttr">
</head><body>
	<span>121.9K Reposts</span>
	<span>180.6K Likes</span>
</body></html>`

func TestTwitter(t *testing.T) {
	t.Parallel()

	rec := catalog.Twitter()
	ctx := context.Background()

	t.Run("requires a rendering fetcher", func(t *testing.T) {
		t.Parallel()
		assert.True(t, rec.RequiresRendering)
	})

	t.Run("extracts the post and its counters", func(t *testing.T) {
		t.Parallel()

		fields, err := rec.Extract(ctx, twitterPostPage, "https://x.com/jack/status/20")
		require.NoError(t, err)

		assert.Equal(t, "just setting up my twttr", fields["text"].String())
		assert.Equal(t, "@jack", fields["author"].String())
		assert.Equal(t, "20", fields["postId"].String())
		assert.Equal(t, 180600.0, fields["likes"].Float())
		assert.Equal(t, 121900.0, fields["reposts"].Float())
	})

	t.Run("ownership covers both hostnames", func(t *testing.T) {
		t.Parallel()

		assert.True(t, rec.Ownership.Owns("https://x.com/jack/status/20"))
		assert.True(t, rec.Ownership.Owns("https://twitter.com/jack/status/20"))
		assert.False(t, rec.Ownership.Owns("https://x.com/jack"))
	})
}
