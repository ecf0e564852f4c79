// Package config loads the moviegrid configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/sebastiantruijens/moviegrid/pkg/movie"
)

// DefaultBaseURL is where the backend listens by default.
const DefaultBaseURL = "http://localhost:8000"

var ErrInvalidConfig = errors.New("invalid config")

// Option is one entry of a filter selector. An empty Value means "any".
type Option struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Filters holds the entries offered by each filter selector.
type Filters struct {
	Ratings []Option `yaml:"ratings,omitempty"`
	Genres  []Option `yaml:"genres,omitempty"`
	Years   []Option `yaml:"years,omitempty"`
	Votes   []Option `yaml:"votes,omitempty"`
}

type Config struct {
	// BaseURL is the backend's address.
	BaseURL string `yaml:"baseURL"`
	// Timeout bounds every backend request, as a duration string. Empty
	// means requests never time out.
	Timeout string  `yaml:"timeout,omitempty"`
	Filters Filters `yaml:"filters"`
	// ProbePosters checks whether poster URLs load, so cards can show the
	// "No Image" placeholder for broken posters.
	ProbePosters bool `yaml:"probePosters"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		ProbePosters: true,
		Filters: Filters{
			Ratings: []Option{
				{Label: "9+", Value: "9"},
				{Label: "8+", Value: "8"},
				{Label: "7+", Value: "7"},
				{Label: "6+", Value: "6"},
				{Label: "5+", Value: "5"},
			},
			Genres: []Option{
				{Label: "Action", Value: "Action"},
				{Label: "Adventure", Value: "Adventure"},
				{Label: "Animation", Value: "Animation"},
				{Label: "Comedy", Value: "Comedy"},
				{Label: "Crime", Value: "Crime"},
				{Label: "Drama", Value: "Drama"},
				{Label: "Fantasy", Value: "Fantasy"},
				{Label: "Horror", Value: "Horror"},
				{Label: "Romance", Value: "Romance"},
				{Label: "Sci-Fi", Value: "Sci-Fi"},
				{Label: "Thriller", Value: "Thriller"},
			},
			Years: []Option{
				{Label: "2020s", Value: "202"},
				{Label: "2010s", Value: "201"},
				{Label: "2000s", Value: "200"},
				{Label: "1990s", Value: "199"},
				{Label: "1980s", Value: "198"},
				{Label: "Before 1980", Value: "19"},
			},
			Votes: []Option{
				{Label: "10K+", Value: "10000"},
				{Label: "100K+", Value: "100000"},
				{Label: "500K+", Value: "500000"},
				{Label: "1M+", Value: "1000000"},
			},
		},
	}
}

// DefaultPath returns the configuration file used when none is given:
// config.yaml under the user's configuration directory. It returns an empty
// path when that directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "moviegrid", "config.yaml")
}

// Load reads the configuration at path. A missing file yields the
// defaults. Selectors left out of the file keep their default entries.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// document is the on-disk shape of [Config]. Every field is optional, so an
// empty or comment-only file decodes to the zero value and changes nothing.
type document struct {
	ProbePosters *bool   `yaml:"probePosters"`
	BaseURL      string  `yaml:"baseURL"`
	Timeout      string  `yaml:"timeout"`
	Filters      Filters `yaml:"filters"`
}

// Parse decodes and validates a configuration document. Settings left out
// of the document keep their defaults; a selector list that is given
// replaces the default list as a whole.
func Parse(data []byte) (*Config, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Default()

	if doc.BaseURL != "" {
		cfg.BaseURL = doc.BaseURL
	}
	if doc.Timeout != "" {
		cfg.Timeout = doc.Timeout
	}
	if doc.ProbePosters != nil {
		cfg.ProbePosters = *doc.ProbePosters
	}

	if len(doc.Filters.Ratings) > 0 {
		cfg.Filters.Ratings = doc.Filters.Ratings
	}
	if len(doc.Filters.Genres) > 0 {
		cfg.Filters.Genres = doc.Filters.Genres
	}
	if len(doc.Filters.Years) > 0 {
		cfg.Filters.Years = doc.Filters.Years
	}
	if len(doc.Filters.Votes) > 0 {
		cfg.Filters.Votes = doc.Filters.Votes
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: baseURL %q must be an absolute URL", ErrInvalidConfig, c.BaseURL)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration returns the parsed request timeout. Zero means none.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: timeout %q must be a non-negative duration", ErrInvalidConfig, c.Timeout)
	}

	return d, nil
}

// Options returns the selector entries for f, led by an "Any" entry that
// leaves the filter unset.
func (c *Config) Options(f movie.Field) []Option {
	var opts []Option

	switch f {
	case movie.FieldRating:
		opts = c.Filters.Ratings
	case movie.FieldGenre:
		opts = c.Filters.Genres
	case movie.FieldYear:
		opts = c.Filters.Years
	case movie.FieldVotes:
		opts = c.Filters.Votes
	}

	return append([]Option{{Label: "Any"}}, opts...)
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return data, nil
}
