// Package poster supplies poster sources for movie cards, substituting a
// generated placeholder when a movie has no poster or its poster cannot be
// loaded.
package poster

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sebastiantruijens/moviegrid/pkg/movie"
)

const (
	// TextMissing is shown when a movie has no poster.
	TextMissing = "Image Not Found"
	// TextFailed is shown when a poster fails to load.
	TextFailed = "No Image"

	Width  = 300
	Height = 450

	// DefaultConcurrency bounds the number of concurrent probes.
	DefaultConcurrency = 4
)

// Placeholder returns a 300x450 SVG data URI bearing text.
func Placeholder(text string) string {
	svg := fmt.Sprintf(
		`<svg xmlns='http://www.w3.org/2000/svg' width='%[1]d' height='%[2]d' viewBox='0 0 %[1]d %[2]d'>`+
			`<rect width='%[1]d' height='%[2]d' fill='#f3f4f6'/>`+
			`<text x='50%%' y='50%%' dominant-baseline='middle' text-anchor='middle' fill='#9ca3af' font-family='sans-serif' font-size='20'>%[3]s</text>`+
			`</svg>`,
		Width, Height, text,
	)

	return "data:image/svg+xml;utf8," + url.PathEscape(svg)
}

// Key returns the poster URL of r as probed by [Prober.Probe], or "" when
// r has no poster. Look up failed posters with it.
func Key(r *movie.Record) string {
	return strings.TrimSpace(r.Poster)
}

// Source returns the poster to show for r. failed reports whether r's
// poster is known to have failed to load.
func Source(r *movie.Record, failed bool) string {
	switch {
	case Key(r) == "":
		return Placeholder(TextMissing)
	case failed:
		return Placeholder(TextFailed)
	}

	return Key(r)
}

// Label returns a short text describing the poster state of r, for
// displays that cannot show images.
func Label(r *movie.Record, failed bool) string {
	switch {
	case Key(r) == "":
		return TextMissing
	case failed:
		return TextFailed
	}

	return "Poster"
}

// Prober checks whether poster URLs can be loaded.
type Prober struct {
	client      *http.Client
	concurrency int
}

// NewProber creates a new [Prober]. A non-positive concurrency uses
// [DefaultConcurrency].
func NewProber(client *http.Client, concurrency int) *Prober {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Prober{client: client, concurrency: concurrency}
}

// Probe issues a HEAD request for every distinct non-empty poster URL in
// records and returns the set of URLs, as given by [Key], that failed to
// load. A HEAD answered with 403 or 405 is retried as a GET. Records without
// a poster are skipped; they always use the placeholder.
func (p *Prober) Probe(ctx context.Context, records []movie.Record) map[string]bool {
	urls := make([]string, 0, len(records))
	seen := map[string]bool{}

	for i := range records {
		u := Key(&records[i])
		if u == "" || seen[u] {
			continue
		}

		seen[u] = true
		urls = append(urls, u)
	}

	results := make([]bool, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, u := range urls {
		g.Go(func() error {
			results[i] = !p.load(ctx, u)
			return nil
		})
	}

	// Probes never return errors.
	_ = g.Wait()

	failed := map[string]bool{}
	for i, u := range urls {
		if results[i] {
			failed[u] = true
		}
	}

	return failed
}

func (p *Prober) load(ctx context.Context, u string) bool {
	status, err := p.status(ctx, http.MethodHead, u)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusForbidden) {
		// Some image hosts only answer GET.
		status, err = p.status(ctx, http.MethodGet, u)
	}

	if err != nil {
		slog.Debug("probe poster", slog.String("url", u), slog.Any("err", err))
		return false
	}

	if status >= http.StatusBadRequest {
		slog.Debug("probe poster",
			slog.String("url", u),
			slog.Int("status", status),
		)

		return false
	}

	return true
}

func (p *Prober) status(ctx context.Context, method, u string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
