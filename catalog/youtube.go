package catalog

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/extract"
	"github.com/alert-new/recipes/normalize"
)

var (
	youtubeViewsRE   = regexp.MustCompile(`"viewCount"\s*:\s*"(\d+)"`)
	youtubeLikesRE   = regexp.MustCompile(`"label"\s*:\s*"([0-9][0-9.,]*[KkMmBb]?) likes"`)
	youtubeChannelRE = regexp.MustCompile(`"ownerChannelName"\s*:\s*"([^"]+)"`)
	youtubeDateRE    = regexp.MustCompile(`"publishDate"\s*:\s*"([0-9T:.+\-]+)"`)
)

// YouTube tracks the engagement counters of one video. Ownership is a
// predicate because watch URLs span two hosts (youtube.com/watch and the
// youtu.be shortener) with disjoint shapes.
func YouTube() *recipes.Recipe {
	pipeline := &extract.Pipeline{
		URLFields: func(u *url.URL, fields recipes.FieldMap) {
			if id := videoID(u); id != "" {
				fields.Fill("videoId", recipes.Text(id))
			}
		},
		Meta: []extract.MetaRule{
			{Field: "title", Names: []string{"og:title", "twitter:title", "title"}},
			{Field: "image", Names: []string{"og:image"}, Parse: extract.URLValue},
		},
		Patterns: []extract.PatternRule{
			{Field: "views", Patterns: []*regexp.Regexp{youtubeViewsRE}, Parse: extract.CountValue},
			{Field: "likes", Patterns: []*regexp.Regexp{youtubeLikesRE}, Parse: extract.CountValue},
			{Field: "channel", Patterns: []*regexp.Regexp{youtubeChannelRE}},
			{Field: "published", Patterns: []*regexp.Regexp{youtubeDateRE}, Parse: publishDateValue},
		},
	}

	return &recipes.Recipe{
		ID:          "youtube",
		Name:        "YouTube video",
		Description: "Tracks the view and like counts of a YouTube video.",
		Icon:        "play",
		Category:    recipes.CategoryVideo,
		Tags:        []string{"video", "engagement"},
		Maintainers: []string{maintainer},
		Examples: []recipes.Example{
			{
				URL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				Title: "Rick Astley – Never Gonna Give You Up",
			},
			{
				URL:   "https://youtu.be/dQw4w9WgXcQ",
				Title: "Short-link form",
			},
		},
		Ownership: recipes.Predicate(func(rawURL string) bool {
			switch normalize.Domain(rawURL) {
			case "youtu.be":
				return true
			case "youtube.com", "m.youtube.com":
				return strings.Contains(rawURL, "/watch")
			}
			return false
		}),
		Fields: []recipes.Field{
			{Key: "title", Label: "Title", Type: recipes.TypeText, Primary: true},
			{Key: "views", Label: "Views", Type: recipes.TypeNumber, Noisy: true},
			{Key: "likes", Label: "Likes", Type: recipes.TypeNumber, Noisy: true},
			{Key: "channel", Label: "Channel", Type: recipes.TypeText},
			{Key: "published", Label: "Published", Type: recipes.TypeTimestamp},
			{Key: "image", Label: "Thumbnail", Type: recipes.TypeURL},
			{Key: "videoId", Label: "Video ID", Type: recipes.TypeText},
		},
		Alerts: []recipes.AlertTemplate{
			{
				ID:          "views-above",
				Label:       "Views reach…",
				Description: "Notify when the video passes a view milestone.",
				When:        "views >= input",
				Icon:        "eye",
			},
		},
		Extract: pipeline.Run,
	}
}

// videoID pulls the video identifier from either URL shape.
func videoID(u *url.URL) string {
	if strings.HasSuffix(u.Hostname(), "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	return u.Query().Get("v")
}

// publishDateValue parses YouTube's publish date, which has drifted between
// date-only and full RFC 3339 over the years.
func publishDateValue(match string) (recipes.Value, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, match); err == nil {
			return recipes.Timestamp(t), true
		}
	}
	return recipes.None, false
}
