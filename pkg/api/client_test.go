package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/moviegrid/pkg/api"
	"github.com/sebastiantruijens/moviegrid/pkg/movie"
)

const detailPage = `<!DOCTYPE html>
<html>
<head>
  <title>The Matrix | moviegrid</title>
  <meta property="og:image" content="https://img.example.com/matrix.jpg">
</head>
<body>
  <div class="movie-details">
    <h1 class="movie-title">The   Matrix</h1>
    <p class="plot">A hacker learns
      the truth.</p>
    <p><strong>Director:</strong> Lana Wachowski, Lilly Wachowski</p>
    <p><strong>Runtime:</strong> 136 min</p>
    <p>No label here.</p>
    <dl>
      <dt>Country</dt><dd>United States</dd>
      <dt>Director</dt><dd>duplicate</dd>
    </dl>
  </div>
</body>
</html>`

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /all-movies", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"movies": [
			{"id": "The%20Matrix", "title": "The Matrix", "rating": "8.7", "votes": "1,900,000", "year": "1999"},
			{"title": "Matrix Reloaded", "rating": "7.1"}
		]}`))
	})
	mux.HandleFunc("GET /api/movies/{title}/recommendations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.PathValue("title") != "The Matrix" {
			_, _ = w.Write([]byte(`{"error": "Movie not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"recommendations": [{"title": "Inception", "plot": "Dreams."}]}`))
	})
	mux.HandleFunc("GET /movie/{title}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("title") != "The Matrix" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(detailPage))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()

	c, err := api.NewClient(baseURL)
	require.NoError(t, err)

	return c
}

func TestFetchCatalog(t *testing.T) {
	t.Parallel()

	srv := newBackend(t)
	c := newClient(t, srv.URL+"/")

	got, err := c.FetchCatalog(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, movie.Record{
		ID: "The%20Matrix", Title: "The Matrix", Rating: "8.7", Votes: "1,900,000", Year: "1999",
	}, got[0])
	assert.Empty(t, got[1].Votes)
}

func TestFetchRecommendations(t *testing.T) {
	t.Parallel()

	srv := newBackend(t)
	c := newClient(t, srv.URL)

	got, err := c.FetchRecommendations(t.Context(), "The Matrix")
	require.NoError(t, err)
	assert.Empty(t, got.Error)
	require.Len(t, got.Movies, 1)
	assert.Equal(t, "Dreams.", got.Movies[0].Plot)

	got, err = c.FetchRecommendations(t.Context(), "Nope")
	require.NoError(t, err)
	assert.Equal(t, "Movie not found", got.Error)
	assert.Empty(t, got.Movies)
}

func TestFetchDetails(t *testing.T) {
	t.Parallel()

	srv := newBackend(t)
	c := newClient(t, srv.URL)

	got, err := c.FetchDetails(t.Context(), "The Matrix")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", got.Title)
	assert.Equal(t, "A hacker learns the truth.", got.Plot)
	assert.Equal(t, "https://img.example.com/matrix.jpg", got.Poster)
	assert.Equal(t, []movie.Fact{
		{Label: "Director", Value: "Lana Wachowski, Lilly Wachowski"},
		{Label: "Runtime", Value: "136 min"},
		{Label: "Country", Value: "United States"},
	}, got.Facts)

	_, err = c.FetchDetails(t.Context(), "Missing")
	require.ErrorIs(t, err, api.ErrFetch)
}

func TestParseDetailsFallbacks(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><head><meta property="og:title" content="Heat"><meta name="description" content="Cops and robbers."></head><body></body></html>`,
	))
	require.NoError(t, err)

	got := api.ParseDetails(doc, "fallback")
	assert.Equal(t, "Heat", got.Title)
	assert.Equal(t, "Cops and robbers.", got.Plot)
	assert.Empty(t, got.Facts)

	empty, err := goquery.NewDocumentFromReader(strings.NewReader(`<html></html>`))
	require.NoError(t, err)
	assert.Equal(t, "fallback", api.ParseDetails(empty, "fallback").Title)
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"malformed json": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"movies": [`))
		},
	}

	for name, handler := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(handler)
			t.Cleanup(srv.Close)

			_, err := newClient(t, srv.URL).FetchCatalog(t.Context())
			require.ErrorIs(t, err, api.ErrFetch)
		})
	}

	t.Run("offline", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := newClient(t, url).FetchCatalog(t.Context())
		require.ErrorIs(t, err, api.ErrFetch)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)

		c, err := api.NewClient(srv.URL, api.WithTimeout(50*time.Millisecond))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		_, err = c.FetchCatalog(ctx)
		require.ErrorIs(t, err, api.ErrFetch)
	})
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	t.Parallel()

	_, err := api.NewClient("localhost")
	require.Error(t, err)

	c := newClient(t, "http://example.com/base/")
	assert.Equal(t, "http://example.com/base/movie/The%20Matrix", c.MovieURL("The Matrix"))
}
