// Package movie holds the movie record model shared by every view, and the
// filter engine that narrows a catalog down to the records matching a set of
// user criteria.
package movie

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidPath indicates that a navigation path does not name a movie.
var ErrInvalidPath = errors.New("invalid movie path")

// linkPrefix is the navigation path every movie card links to.
const linkPrefix = "/movie/"

// Record represents a movie as returned by the backend. Numeric fields are
// kept as the human-formatted strings the backend sends.
type Record struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Poster   string `json:"poster,omitempty"`
	Rating   string `json:"rating,omitempty"`
	Year     string `json:"year,omitempty"`
	Runtime  string `json:"runtime,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Votes    string `json:"votes,omitempty"`
	Plot     string `json:"plot,omitempty"`
	Director string `json:"director,omitempty"`
	Actors   string `json:"actors,omitempty"`
	Country  string `json:"country,omitempty"`
	Language string `json:"language,omitempty"`
}

// Details represents the information scraped from a movie's detail page.
type Details struct {
	Title  string
	Plot   string
	Poster string
	// Facts holds labelled values such as "Director" or "Runtime", in page
	// order.
	Facts []Fact
}

// Fact is a single labelled value from a detail page.
type Fact struct {
	Label string
	Value string
}

// Link returns the navigation path for the movie with the given title.
func Link(title string) string {
	return linkPrefix + url.PathEscape(title)
}

// TitleFromPath decodes the movie title from the last segment of a
// navigation path such as "/movie/The%20Matrix".
func TitleFromPath(path string) (string, error) {
	segment := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		segment = path[i+1:]
	}

	title, err := url.PathUnescape(segment)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidPath, path, err)
	}

	if title == "" {
		return "", fmt.Errorf("%w: %q: empty title", ErrInvalidPath, path)
	}

	return title, nil
}
