// Package log builds the [slog.Handler] moviegrid logs through. The CLI
// picks a level and a format from flags, writes to stderr or a log file,
// and switches to a [Ring] while the terminal UI owns the screen. Request
// code pulls its logger out of the context with [WithContext].
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/muesli/termenv"

	charmlog "github.com/charmbracelet/log"
)

type (
	// Format names an output encoding for log records.
	Format string
	// Level names a minimum severity, as accepted by --log-level.
	Level string

	contextKey struct{}
)

const (
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
	// FormatLogfmt writes key=value pairs.
	FormatLogfmt Format = "logfmt"
	// FormatText writes colored, human readable lines.
	FormatText Format = "text"

	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")

	// AllFormats lists the accepted --log-format values.
	AllFormats = []string{
		string(FormatJSON),
		string(FormatLogfmt),
		string(FormatText),
	}
	// AllLevels lists the accepted --log-level values, most severe first.
	AllLevels = []string{
		string(LevelError),
		string(LevelWarn),
		string(LevelInfo),
		string(LevelDebug),
	}

	levels = map[Level]slog.Level{
		LevelError: slog.LevelError,
		LevelWarn:  slog.LevelWarn,
		"warning":  slog.LevelWarn,
		LevelInfo:  slog.LevelInfo,
		LevelDebug: slog.LevelDebug,
	}
)

// CreateHandlerWithStrings parses the --log-level and --log-format flag
// values and returns a handler writing to w. Both values are case
// insensitive.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	lvl, err := GetLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidArgument, logLevel, err)
	}

	format, err := GetFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidArgument, logFormat, err)
	}

	return CreateHandler(w, lvl, format), nil
}

// CreateHandler returns a handler writing records at lvl or above to w, or
// nil for an unknown format. Machine readable formats carry the source
// position of each call.
func CreateHandler(w io.Writer, lvl slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: lvl}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt:
		return slog.NewTextHandler(w, opts)
	case FormatText:
		return newTextHandler(w, lvl)
	}

	return nil
}

// GetLevel maps a --log-level value to its [slog.Level]. "warning" is
// accepted as an alias of "warn".
func GetLevel(level string) (slog.Level, error) {
	lvl, ok := levels[Level(strings.ToLower(level))]
	if !ok {
		return 0, ErrUnknownLogLevel
	}

	return lvl, nil
}

func GetFormat(format string) (Format, error) {
	f := strings.ToLower(format)
	if !slices.Contains(AllFormats, f) {
		return "", ErrUnknownLogFormat
	}

	return Format(f), nil
}

// newTextHandler colors output only when w is a terminal that supports it,
// so a --log-file or a flushed [Ring] stays plain.
func newTextHandler(w io.Writer, lvl slog.Level) slog.Handler {
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(int32(lvl)), //nolint:gosec // G115: levels come from GetLevel.
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: true,
		ReportCaller:    true,
		TimeFormat:      time.StampMilli,
	})
	logger.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())

	return logger
}

// NewContext returns a copy of ctx carrying logger. The UI stores the
// logger it was started with so background fetches log through it.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// WithContext returns the logger stored in ctx by [NewContext], or
// [slog.Default].
func WithContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
