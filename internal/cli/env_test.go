package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/moviegrid/internal/cli"
)

func TestBindEnvVars(t *testing.T) {
	tcs := map[string]struct {
		envVars     map[string]string
		wantLevel   string
		wantBaseURL string
		args        []string
	}{
		"environment variables are bound when no args provided": {
			envVars: map[string]string{
				"MOVIEGRID_LOG_LEVEL": "debug",
				"MOVIEGRID_BASE_URL":  "http://movies.test",
			},
			wantLevel:   "debug",
			wantBaseURL: "http://movies.test",
		},
		"command line args take precedence over environment variables": {
			envVars: map[string]string{
				"MOVIEGRID_LOG_LEVEL": "debug",
				"MOVIEGRID_BASE_URL":  "http://movies.test",
			},
			args:        []string{"--log-level", "error", "--base-url", "http://other.test"},
			wantLevel:   "error",
			wantBaseURL: "http://other.test",
		},
		"no environment variables uses defaults": {
			envVars:     map[string]string{},
			wantLevel:   "info",
			wantBaseURL: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for key, val := range tc.envVars {
				t.Setenv(key, val)
			}

			cmd := cli.NewRootCmd()
			require.NoError(t, cmd.ParseFlags(tc.args))

			level, err := cmd.Flags().GetString("log-level")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLevel, level)

			baseURL, err := cmd.Flags().GetString("base-url")
			require.NoError(t, err)
			assert.Equal(t, tc.wantBaseURL, baseURL)
		})
	}
}

func TestBindEnvVarsSubcommand(t *testing.T) {
	t.Setenv("MOVIEGRID_MIN_RATING", "8")

	cmd := cli.NewRootCmd()

	search, _, err := cmd.Find([]string{"search"})
	require.NoError(t, err)

	rating, err := search.Flags().GetString("min-rating")
	require.NoError(t, err)
	assert.Equal(t, "8", rating)
}

func TestEnvironmentVariableUsage(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCmd()

	for flag, env := range map[string]string{
		"log-level": "MOVIEGRID_LOG_LEVEL",
		"config":    "MOVIEGRID_CONFIG",
		"timeout":   "MOVIEGRID_TIMEOUT",
	} {
		f := cmd.PersistentFlags().Lookup(flag)
		require.NotNil(t, f, flag)
		assert.Contains(t, f.Usage, "$"+env)
	}

	f := cmd.Flags().Lookup("movie")
	require.NotNil(t, f)
	assert.Contains(t, f.Usage, "$MOVIEGRID_MOVIE")
}
