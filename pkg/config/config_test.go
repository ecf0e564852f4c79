package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/moviegrid/pkg/config"
	"github.com/sebastiantruijens/moviegrid/pkg/movie"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check   func(*testing.T, *config.Config)
		input   string
		wantErr bool
	}{
		"empty document uses defaults": {
			input: "",
			check: func(t *testing.T, c *config.Config) {
				t.Helper()
				assert.Equal(t, config.Default(), c)
			},
		},
		"comment only uses defaults": {
			input: "# moviegrid settings\n\n# baseURL: http://example.com\n",
			check: func(t *testing.T, c *config.Config) {
				t.Helper()
				assert.Equal(t, config.Default(), c)
			},
		},
		"partial document keeps other defaults": {
			input: "timeout: 5s\n",
			check: func(t *testing.T, c *config.Config) {
				t.Helper()
				assert.Equal(t, config.DefaultBaseURL, c.BaseURL)
				assert.Equal(t, "5s", c.Timeout)
				assert.True(t, c.ProbePosters)
				assert.Equal(t, config.Default().Filters, c.Filters)
			},
		},
		"overrides": {
			input: `
baseURL: https://movies.example.com
timeout: 5s
probePosters: false
filters:
  genres:
    - label: Noir
      value: Film-Noir
`,
			check: func(t *testing.T, c *config.Config) {
				t.Helper()
				assert.Equal(t, "https://movies.example.com", c.BaseURL)
				assert.False(t, c.ProbePosters)

				d, err := c.TimeoutDuration()
				require.NoError(t, err)
				assert.Equal(t, 5*time.Second, d)

				assert.Equal(t, []config.Option{{Label: "Any"}, {Label: "Noir", Value: "Film-Noir"}},
					c.Options(movie.FieldGenre))
				assert.Equal(t, config.Default().Filters.Years, c.Filters.Years)
			},
		},
		"relative base url": {
			input:   "baseURL: localhost:8000/api",
			wantErr: true,
		},
		"bad timeout": {
			input:   "timeout: soon",
			wantErr: true,
		},
		"negative timeout": {
			input:   "timeout: -1s",
			wantErr: true,
		},
		"malformed yaml": {
			input:   "baseURL: [",
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := config.Parse([]byte(tc.input))
			if tc.wantErr {
				require.ErrorIs(t, err, config.ErrInvalidConfig)
				return
			}

			require.NoError(t, err)
			tc.check(t, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	got, err := config.Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), got)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseURL: http://backend:9000\n"), 0o600))

	got, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", got.BaseURL)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	got, err = config.Load(empty)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), got)
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	want := config.Default()
	want.Timeout = "30s"

	data, err := want.Marshal()
	require.NoError(t, err)

	got, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOptionsStartWithAny(t *testing.T) {
	t.Parallel()

	c := config.Default()
	for _, f := range movie.AllFields {
		opts := c.Options(f)
		require.NotEmpty(t, opts)
		assert.Equal(t, config.Option{Label: "Any"}, opts[0], f)
		assert.Greater(t, len(opts), 1, f)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	path := config.DefaultPath()
	if path == "" {
		t.Skip("no user config directory on this platform")
	}

	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "moviegrid", filepath.Base(filepath.Dir(path)))
}
