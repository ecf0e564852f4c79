// Package api is the client for the movie backend. It fetches the full
// catalog, the recommendations for a movie, and scrapes a movie's detail
// page.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/sebastiantruijens/moviegrid/pkg/movie"
)

// ErrFetch indicates that a request to the backend failed. Transport
// errors, unexpected status codes and malformed bodies are all reported
// as ErrFetch.
var ErrFetch = errors.New("fetch failed")

const userAgent = "moviegrid/1.0 (+https://github.com/sebastiantruijens/moviegrid)"

// Client handles interactions with the movie backend.
type Client struct {
	baseURL *url.URL
	client  *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout bounds every request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client = &http.Client{
			Transport: c.client.Transport,
			Timeout:   d,
		}
	}
}

// NewClient creates a new client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// MovieURL returns the absolute URL of the detail page for title.
func (c *Client) MovieURL(title string) string {
	return c.baseURL.String() + movie.Link(title)
}

type catalogResponse struct {
	Movies []movie.Record `json:"movies"`
}

// FetchCatalog fetches the full, unfiltered catalog.
func (c *Client) FetchCatalog(ctx context.Context) ([]movie.Record, error) {
	var resp catalogResponse

	err := c.getJSON(ctx, "/all-movies", &resp)
	if err != nil {
		return nil, err
	}

	return resp.Movies, nil
}

// Recommendations is the backend's answer to a recommendation request.
// Error is set when the backend reports a problem such as an unknown
// title; the request itself still succeeded.
type Recommendations struct {
	Movies []movie.Record `json:"recommendations"`
	Error  string         `json:"error"`
}

// FetchRecommendations fetches the movies recommended for title.
func (c *Client) FetchRecommendations(ctx context.Context, title string) (*Recommendations, error) {
	var resp Recommendations

	err := c.getJSON(ctx, "/api/movies/"+url.PathEscape(title)+"/recommendations", &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path, "application/json")
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrFetch, path, err)
	}

	return nil
}

// get performs a GET request for an already escaped path. The caller must
// close the returned body.
func (c *Client) get(ctx context.Context, path, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrFetch, err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: status code %d", ErrFetch, path, resp.StatusCode)
	}

	return resp.Body, nil
}
