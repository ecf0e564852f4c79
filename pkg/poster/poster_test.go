package poster_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/moviegrid/pkg/movie"
	"github.com/sebastiantruijens/moviegrid/pkg/poster"
)

func decode(t *testing.T, src string) string {
	t.Helper()

	const prefix = "data:image/svg+xml;utf8,"
	require.True(t, strings.HasPrefix(src, prefix), src)

	svg, err := url.PathUnescape(strings.TrimPrefix(src, prefix))
	require.NoError(t, err)

	return svg
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	svg := decode(t, poster.Placeholder(poster.TextFailed))
	assert.Contains(t, svg, "width='300'")
	assert.Contains(t, svg, "height='450'")
	assert.Contains(t, svg, ">No Image</text>")
	assert.Equal(t, poster.Placeholder("x"), poster.Placeholder("x"))
}

func TestSource(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		record   movie.Record
		wantText string
		wantURL  string
		failed   bool
	}{
		"absent poster": {
			record:   movie.Record{Title: "a"},
			wantText: poster.TextMissing,
		},
		"absent poster that also failed": {
			record:   movie.Record{Title: "a", Poster: " "},
			failed:   true,
			wantText: poster.TextMissing,
		},
		"failed poster": {
			record:   movie.Record{Title: "a", Poster: "https://img.example.com/a.jpg"},
			failed:   true,
			wantText: poster.TextFailed,
		},
		"loaded poster": {
			record:  movie.Record{Title: "a", Poster: "https://img.example.com/a.jpg"},
			wantURL: "https://img.example.com/a.jpg",
		},
		"padded poster": {
			record:  movie.Record{Title: "a", Poster: "  https://img.example.com/a.jpg\n"},
			wantURL: "https://img.example.com/a.jpg",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := poster.Source(&tc.record, tc.failed)
			if tc.wantURL != "" {
				assert.Equal(t, tc.wantURL, got)
				assert.Equal(t, "Poster", poster.Label(&tc.record, tc.failed))
				return
			}

			assert.Contains(t, decode(t, got), ">"+tc.wantText+"<")
			assert.Equal(t, tc.wantText, poster.Label(&tc.record, tc.failed))
		})
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()

	var heads atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			heads.Add(1)
		}
		if strings.HasSuffix(r.URL.Path, "/missing.jpg") {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	records := []movie.Record{
		{Title: "ok", Poster: srv.URL + "/ok.jpg"},
		{Title: "ok again", Poster: srv.URL + "/ok.jpg"},
		{Title: "missing", Poster: srv.URL + "/missing.jpg"},
		{Title: "missing padded", Poster: " " + srv.URL + "/missing.jpg "},
		{Title: "none"},
		{Title: "bad url", Poster: "://nope"},
	}

	p := poster.NewProber(srv.Client(), 1)
	failed := p.Probe(t.Context(), records)

	assert.Equal(t, map[string]bool{
		srv.URL + "/missing.jpg": true,
		"://nope":                true,
	}, failed)
	assert.Equal(t, int32(2), heads.Load())
}

func TestHeadRejectedFallsBackToGet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead && !strings.HasPrefix(r.URL.Path, "/head/") {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		switch r.URL.Path {
		case "/get/ok.jpg", "/head/ok.jpg":
			w.WriteHeader(http.StatusOK)
		case "/get/private.jpg":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	tcs := map[string]struct {
		path       string
		wantFailed bool
	}{
		"head not allowed, get ok": {
			path: "/get/ok.jpg",
		},
		"head not allowed, get missing": {
			path:       "/get/missing.jpg",
			wantFailed: true,
		},
		"head not allowed, get forbidden": {
			path:       "/get/private.jpg",
			wantFailed: true,
		},
		"head ok": {
			path: "/head/ok.jpg",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			u := srv.URL + tc.path
			p := poster.NewProber(srv.Client(), 1)
			failed := p.Probe(t.Context(), []movie.Record{{Title: "a", Poster: u}})

			assert.Equal(t, tc.wantFailed, failed[u])
		})
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://img.example.com/a.jpg", poster.Key(&movie.Record{Poster: "\thttps://img.example.com/a.jpg "}))
	assert.Empty(t, poster.Key(&movie.Record{Poster: "   "}))
}
