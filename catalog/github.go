package catalog

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/extract"
)

var githubRepoRE = regexp.MustCompile(`^https?://github\.com/([\w.-]+)/([\w.-]+?)/?$`)

// GitHub tracks repository activity counters. The subject URL is rewritten
// to the REST API, so the payload arriving at the routine is JSON and flows
// through the structured-data stage directly.
func GitHub() *recipes.Recipe {
	pipeline := &extract.Pipeline{
		URLFields: func(u *url.URL, fields recipes.FieldMap) {
			parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
			if len(parts) >= 2 {
				fields.Fill("owner", recipes.Text(parts[0]))
				fields.Fill("repo", recipes.Text(parts[1]))
			}
		},
		Structured: []extract.StructuredRule{{
			Match: func(obj map[string]any) bool {
				_, ok := obj["stargazers_count"]
				return ok
			},
			Map: func(obj map[string]any, fields recipes.FieldMap) {
				if stars, ok := extract.Num(obj, "stargazers_count"); ok {
					fields.Fill("stars", recipes.Number(stars))
				}
				if forks, ok := extract.Num(obj, "forks_count"); ok {
					fields.Fill("forks", recipes.Number(forks))
				}
				if issues, ok := extract.Num(obj, "open_issues_count"); ok {
					fields.Fill("openIssues", recipes.Number(issues))
				}
				if desc := extract.Str(obj, "description"); desc != "" {
					fields.Fill("description", recipes.Text(desc))
				}
				if lang := extract.Str(obj, "language"); lang != "" {
					fields.Fill("language", recipes.Text(lang))
				}
			},
		}},
	}

	return &recipes.Recipe{
		ID:          "github",
		Name:        "GitHub repository",
		Description: "Tracks the star, fork and open-issue counts of a GitHub repository.",
		Icon:        "github",
		Category:    recipes.CategoryDeveloper,
		Tags:        []string{"developer", "repository"},
		Maintainers: []string{maintainer},
		Examples: []recipes.Example{
			{
				URL:      "https://github.com/golang/go",
				Title:    "golang/go",
				Subtitle: "The Go programming language",
			},
		},
		Ownership: recipes.Pattern(`^https?://github\.com/[\w.-]+/[\w.-]+/?$`),
		Fields: []recipes.Field{
			{Key: "stars", Label: "Stars", Type: recipes.TypeNumber, Primary: true},
			{Key: "forks", Label: "Forks", Type: recipes.TypeNumber},
			{Key: "openIssues", Label: "Open issues", Type: recipes.TypeNumber, Noisy: true},
			{Key: "description", Label: "Description", Type: recipes.TypeText},
			{Key: "language", Label: "Language", Type: recipes.TypeText},
			{Key: "owner", Label: "Owner", Type: recipes.TypeText},
			{Key: "repo", Label: "Repository", Type: recipes.TypeText},
		},
		Alerts: []recipes.AlertTemplate{
			{
				ID:          "stars-above",
				Label:       "Stars reach…",
				Description: "Notify when the repository passes a star milestone.",
				When:        "stars >= input",
				Icon:        "star",
			},
		},
		TransformURL: func(rawURL string) string {
			if m := githubRepoRE.FindStringSubmatch(rawURL); m != nil {
				return "https://api.github.com/repos/" + m[1] + "/" + m[2]
			}
			return rawURL
		},
		Headers: map[string]string{
			"Accept": "application/vnd.github+json",
		},
		Extract: pipeline.Run,
	}
}
