package api

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sebastiantruijens/moviegrid/pkg/movie"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	titleSelectors = []string{
		"h1.movie-title",
		".movie-details h1",
		"h1",
	}

	plotSelectors = []string{
		"[data-field=plot]",
		".movie-plot",
		".plot",
		"p.description",
	}

	posterSelectors = []string{
		"img.movie-poster",
		".movie-details img",
	}
)

// FetchDetails fetches and scrapes the detail page for title.
func (c *Client) FetchDetails(ctx context.Context, title string) (*movie.Details, error) {
	body, err := c.get(ctx, movie.Link(title), "text/html")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse detail page: %w", ErrFetch, err)
	}

	return ParseDetails(doc, title), nil
}

// ParseDetails extracts movie details from a detail page. Fields that
// cannot be found are left empty, except the title which falls back to
// the given one.
func ParseDetails(doc *goquery.Document, title string) *movie.Details {
	d := &movie.Details{
		Title:  firstText(doc, titleSelectors),
		Plot:   firstText(doc, plotSelectors),
		Poster: firstAttr(doc, posterSelectors, "src"),
	}

	// Fallbacks from meta tags.
	if d.Title == "" {
		d.Title = metaContent(doc, "og:title")
	}
	if d.Title == "" {
		d.Title = cleanText(doc.Find("title").First().Text())
	}
	if d.Title == "" {
		d.Title = title
	}

	if d.Plot == "" {
		d.Plot = metaContent(doc, "og:description")
	}
	if d.Plot == "" {
		d.Plot = cleanText(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	}

	if d.Poster == "" {
		d.Poster = metaContent(doc, "og:image")
	}

	d.Facts = parseFacts(doc)

	return d
}

// parseFacts collects labelled values from "<strong>Label:</strong> value"
// paragraphs, then from definition lists. The first value for a label wins.
func parseFacts(doc *goquery.Document) []movie.Fact {
	var facts []movie.Fact

	seen := map[string]bool{}
	add := func(label, value string) {
		label = strings.TrimSuffix(cleanText(label), ":")
		value = cleanText(value)
		if label == "" || value == "" || seen[label] {
			return
		}

		seen[label] = true
		facts = append(facts, movie.Fact{Label: label, Value: value})
	}

	doc.Find("p, li").Each(func(_ int, item *goquery.Selection) {
		strong := item.ChildrenFiltered("strong, b").First()
		if strong.Length() == 0 {
			return
		}

		label := cleanText(strong.Text())
		if !strings.HasSuffix(label, ":") {
			return
		}

		value := strings.TrimPrefix(cleanText(item.Text()), label)
		add(label, value)
	})

	doc.Find("dl dt").Each(func(_ int, dt *goquery.Selection) {
		add(dt.Text(), dt.NextFiltered("dd").Text())
	})

	return facts
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := cleanText(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}

	return ""
}

func firstAttr(doc *goquery.Document, selectors []string, attr string) string {
	for _, selector := range selectors {
		if v, ok := doc.Find(selector).First().Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}

func metaContent(doc *goquery.Document, property string) string {
	return cleanText(doc.Find(`meta[property="` + property + `"]`).AttrOr("content", ""))
}

func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
