package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/moviegrid/pkg/log"
)

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level   string
		format  string
		wantErr error
	}{
		"json debug":     {level: "debug", format: "json"},
		"logfmt warning": {level: "WARNING", format: "logfmt"},
		"text info":      {level: "info", format: "text"},
		"upper case":     {level: "ERROR", format: "JSON"},
		"bad level":      {level: "loud", format: "json", wantErr: log.ErrUnknownLogLevel},
		"bad format":     {level: "info", format: "xml", wantErr: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h, err := log.CreateHandlerWithStrings(&buf, tc.level, tc.format)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, log.ErrInvalidArgument)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, h)

			slog.New(h).Error("fetch catalog", slog.String("title", "The Matrix"))
			assert.Contains(t, buf.String(), "fetch catalog")
			assert.Contains(t, buf.String(), "The Matrix")
		})
	}
}

func TestJSONHandlerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := log.CreateHandlerWithStrings(&buf, "error", "json")
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Default(), log.WithContext(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := log.NewContext(context.Background(), logger)
	assert.Same(t, logger, log.WithContext(ctx))
}

func TestGetLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"error":   slog.LevelError,
		"Warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
	} {
		got, err := log.GetLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := log.GetLevel("")
	require.ErrorIs(t, err, log.ErrUnknownLogLevel)
}
