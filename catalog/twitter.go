package catalog

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/extract"
)

var (
	twitterLikesRE   = regexp.MustCompile(`([0-9][0-9.,]*[KkMm]?)\s+Likes\b`)
	twitterRepostsRE = regexp.MustCompile(`([0-9][0-9.,]*[KkMm]?)\s+(?:Reposts|Retweets)\b`)
)

// Twitter tracks engagement on one post. The page is client-rendered, so
// the recipe is flagged RequiresRendering: plain fetchers skip it and the
// payload must come from a script-executing fetcher.
func Twitter() *recipes.Recipe {
	pipeline := &extract.Pipeline{
		URLFields: func(u *url.URL, fields recipes.FieldMap) {
			parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
			if len(parts) == 3 && parts[1] == "status" {
				fields.Fill("author", recipes.Text("@"+parts[0]))
				fields.Fill("postId", recipes.Text(parts[2]))
			}
		},
		Meta: []extract.MetaRule{
			{Field: "text", Names: []string{"og:description", "description"}},
		},
		Patterns: []extract.PatternRule{
			{Field: "likes", Patterns: []*regexp.Regexp{twitterLikesRE}, Parse: extract.CountValue},
			{Field: "reposts", Patterns: []*regexp.Regexp{twitterRepostsRE}, Parse: extract.CountValue},
		},
	}

	return &recipes.Recipe{
		ID:          "twitter",
		Name:        "X post",
		Description: "Tracks the like and repost counts of a post on X (Twitter).",
		Icon:        "message-circle",
		Category:    recipes.CategorySocial,
		Tags:        []string{"social", "engagement"},
		Maintainers: []string{maintainer},
		Examples: []recipes.Example{
			{
				URL:   "https://x.com/jack/status/20",
				Title: "just setting up my twttr",
			},
		},
		Ownership:         recipes.Pattern(`^https?://(www\.)?(twitter|x)\.com/[^/]+/status/\d+`),
		RequiresRendering: true,
		Fields: []recipes.Field{
			{Key: "text", Label: "Post text", Type: recipes.TypeText, Primary: true},
			{Key: "author", Label: "Author", Type: recipes.TypeText},
			{Key: "likes", Label: "Likes", Type: recipes.TypeNumber, Noisy: true},
			{Key: "reposts", Label: "Reposts", Type: recipes.TypeNumber, Noisy: true},
			{Key: "postId", Label: "Post ID", Type: recipes.TypeText},
		},
		Alerts: []recipes.AlertTemplate{
			{
				ID:          "likes-above",
				Label:       "Likes reach…",
				Description: "Notify when the post passes a like milestone.",
				When:        "likes >= input",
				Icon:        "heart",
			},
		},
		Extract: pipeline.Run,
	}
}
