package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sebastiantruijens/moviegrid/pkg/config"
	"github.com/sebastiantruijens/moviegrid/pkg/log"
	"github.com/sebastiantruijens/moviegrid/pkg/movie"
	"github.com/sebastiantruijens/moviegrid/pkg/search"
	"github.com/sebastiantruijens/moviegrid/pkg/ui"
)

const cmdExamples = `  # Browse the catalog of the local backend:
  moviegrid

  # Open the recommendations for a movie:
  moviegrid --movie "The Matrix"

  # Use another backend:
  moviegrid --base-url http://movies.internal:8000

  # Print the first page of dramas rated 8 or higher:
  moviegrid search --genre Drama --min-rating 8

  # Print the recommendations for a movie:
  moviegrid recommend "The Matrix"`

type RunArgs struct {
	*RootArgs

	Movie      string
	ShowConfig bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.Movie, "movie", "", "Open the recommendations for this movie title")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	cfg, err := ra.loadConfig()
	if err != nil {
		return err
	}

	if ra.ShowConfig {
		return showConfig(cmd.OutOrStdout(), cfg)
	}

	client, prober, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// If stdout is not a terminal, print instead of starting the UI.
	if !isTerminal(cmd.OutOrStdout()) {
		if ra.Movie != "" {
			return printRecommendations(ctx, cmd.OutOrStdout(), client, ra.Movie)
		}

		s := search.Dispatch(ctx, client, search.New(movie.Inputs{}), search.SearchRequested{})

		return printResults(cmd.OutOrStdout(), s)
	}

	// The terminal belongs to the UI, so logs are held back and flushed
	// after it exits unless they go to a file.
	var ring *log.Ring
	if ra.LogFile == "" {
		ring = log.NewRing(100)

		logHandler, err := log.CreateHandlerWithStrings(ring, ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))
	}

	var startPath string
	if ra.Movie != "" {
		startPath = movie.Link(ra.Movie)
	}

	m := ui.NewModel(ui.Options{
		Context:   log.NewContext(ctx, slog.Default()),
		Backend:   client,
		Config:    cfg,
		Prober:    prober,
		StartPath: startPath,
	})

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		err = fmt.Errorf("ui program failure: %w", err)
	}

	if ring != nil {
		err = errors.Join(err, flushLogs(cmd.ErrOrStderr(), ring))
	}

	return err
}

func showConfig(w io.Writer, cfg *config.Config) error {
	b, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = w.Write(b)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func flushLogs(w io.Writer, ring *log.Ring) error {
	if ring.Dropped() > 0 {
		err := writeOutput(w, fmt.Sprintf("... %d earlier log entries dropped\n", ring.Dropped()))
		if err != nil {
			return err
		}
	}

	_, err := ring.WriteTo(w)
	if err != nil {
		return fmt.Errorf("flush logs: %w", err)
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in an int.
}
