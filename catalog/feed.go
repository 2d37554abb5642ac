package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/normalize"
	"github.com/beevik/etree"
)

// Feed tracks the newest entry of an RSS or Atom feed. Feeds are XML, not
// HTML or JSON, so this routine bypasses the pipeline entirely; recipes
// are free to hand-roll extraction when the payload shape calls for it.
func Feed() *recipes.Recipe {
	return &recipes.Recipe{
		ID:          "feed",
		Name:        "RSS/Atom feed",
		Description: "Tracks the newest entry and entry count of an RSS or Atom feed.",
		Icon:        "rss",
		Category:    recipes.CategoryFeeds,
		Tags:        []string{"feed", "news"},
		Maintainers: []string{maintainer},
		Examples: []recipes.Example{
			{
				URL:   "https://go.dev/blog/feed.atom",
				Title: "The Go Blog",
			},
			{
				URL:   "https://news.ycombinator.com/rss",
				Title: "Hacker News front page",
			},
		},
		Ownership: recipes.Predicate(func(rawURL string) bool {
			lower := strings.ToLower(rawURL)
			for _, suffix := range []string{".xml", ".rss", ".atom", "/feed", "/rss"} {
				if strings.HasSuffix(lower, suffix) {
					return true
				}
			}
			return false
		}),
		Fields: []recipes.Field{
			{Key: "latest", Label: "Newest entry", Type: recipes.TypeText, Primary: true},
			{Key: "latestUrl", Label: "Newest entry link", Type: recipes.TypeURL},
			{Key: "published", Label: "Published", Type: recipes.TypeTimestamp},
			{Key: "title", Label: "Feed title", Type: recipes.TypeText},
			{Key: "entries", Label: "Entry count", Type: recipes.TypeNumber, Noisy: true},
		},
		Alerts: []recipes.AlertTemplate{
			{
				ID:          "new-entry",
				Label:       "New entry published",
				Description: "Notify whenever the newest entry changes.",
				When:        "latest != previous.latest",
				Icon:        "rss",
			},
		},
		Extract: extractFeed,
	}
}

func extractFeed(ctx context.Context, payload string, rawURL string) (recipes.FieldMap, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(payload); err != nil {
		return nil, recipes.Errorf(recipes.EINVALID, "failed to parse feed XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, recipes.Errorf(recipes.EINVALID, "feed has no root element")
	}

	fields := recipes.FieldMap{}
	switch root.Tag {
	case "rss":
		extractRSS(root, fields)
	case "feed":
		extractAtom(root, fields)
	default:
		return nil, recipes.Errorf(recipes.EINVALID, "unrecognized feed root element %q", root.Tag)
	}

	return fields, ctx.Err()
}

func extractRSS(root *etree.Element, fields recipes.FieldMap) {
	channel := root.SelectElement("channel")
	if channel == nil {
		return
	}

	fillText(fields, "title", channel.SelectElement("title"))

	items := channel.SelectElements("item")
	fields.Fill("entries", recipes.Number(float64(len(items))))
	if len(items) == 0 {
		return
	}

	first := items[0]
	fillText(fields, "latest", first.SelectElement("title"))
	if link := first.SelectElement("link"); link != nil {
		if href := strings.TrimSpace(link.Text()); href != "" {
			fields.Fill("latestUrl", recipes.URL(href))
		}
	}
	if pub := first.SelectElement("pubDate"); pub != nil {
		fillTime(fields, "published", pub.Text(), time.RFC1123Z, time.RFC1123)
	}
}

func extractAtom(root *etree.Element, fields recipes.FieldMap) {
	fillText(fields, "title", root.SelectElement("title"))

	entries := root.SelectElements("entry")
	fields.Fill("entries", recipes.Number(float64(len(entries))))
	if len(entries) == 0 {
		return
	}

	first := entries[0]
	fillText(fields, "latest", first.SelectElement("title"))
	if link := first.SelectElement("link"); link != nil {
		if href := link.SelectAttrValue("href", ""); href != "" {
			fields.Fill("latestUrl", recipes.URL(href))
		}
	}
	for _, tag := range []string{"published", "updated"} {
		if el := first.SelectElement(tag); el != nil {
			fillTime(fields, "published", el.Text(), time.RFC3339)
			break
		}
	}
}

func fillText(fields recipes.FieldMap, key string, el *etree.Element) {
	if el == nil {
		return
	}
	if text := normalize.Whitespace(el.Text()); text != "" {
		fields.Fill(key, recipes.Text(text))
	}
}

func fillTime(fields recipes.FieldMap, key string, raw string, layouts ...string) {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			fields.Fill(key, recipes.Timestamp(t))
			return
		}
	}
}
