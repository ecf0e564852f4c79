package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/moviegrid/pkg/api"
	"github.com/sebastiantruijens/moviegrid/pkg/config"
	"github.com/sebastiantruijens/moviegrid/pkg/log"
	"github.com/sebastiantruijens/moviegrid/pkg/poster"
)

const (
	cmdName = "moviegrid"
	cmdDesc = `Browse, filter and get recommendations from a movie catalog backend.`
)

type RootArgs struct {
	logFile io.Closer

	LogLevel   string
	LogFormat  string
	LogFile    string
	ConfigPath string
	BaseURL    string
	Timeout    string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVar(&ra.LogFile, "log-file", "", "Append logs to this file instead of stderr")
	cmd.PersistentFlags().
		StringVar(&ra.ConfigPath, "config", "", "Path to the moviegrid configuration file")
	cmd.PersistentFlags().
		StringVar(&ra.BaseURL, "base-url", "", "Backend address, overrides the configuration file")
	cmd.PersistentFlags().
		StringVar(&ra.Timeout, "timeout", "", "Request timeout such as 10s, overrides the configuration file")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	runArgs := NewRunArgs(args)

	cmd := &cobra.Command{
		Use:                cmdName,
		Short:              cmdDesc,
		Example:            cmdExamples,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		PersistentPreRunE:  setupLogging(args),
		PersistentPostRunE: closeLogging(args),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, runArgs)
		},
	}

	args.AddFlags(cmd)
	runArgs.AddFlags(cmd)

	cmd.AddCommand(NewSearchCmd(NewSearchArgs(args)))
	cmd.AddCommand(NewRecommendCmd(args))

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		w := cmd.ErrOrStderr()

		if ra.LogFile != "" {
			f, err := os.OpenFile(ra.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}

			ra.logFile = f
			w = f
		}

		logHandler, err := log.CreateHandlerWithStrings(w, ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		return nil
	}
}

func closeLogging(ra *RootArgs) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		if ra.logFile == nil {
			return nil
		}

		err := ra.logFile.Close()
		if err != nil {
			return fmt.Errorf("close log file: %w", err)
		}

		return nil
	}
}

// loadConfig reads the configuration file and applies flag overrides.
func (ra *RootArgs) loadConfig() (*config.Config, error) {
	path := ra.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}

	slog.Debug("loaded config", slog.String("path", path))

	if ra.BaseURL != "" {
		cfg.BaseURL = ra.BaseURL
	}

	if ra.Timeout != "" {
		cfg.Timeout = ra.Timeout
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// newClient creates the backend client and, when enabled, a poster prober
// sharing its HTTP client.
func newClient(cfg *config.Config) (*api.Client, *poster.Prober, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, nil, err
	}

	client, err := api.NewClient(cfg.BaseURL, api.WithTimeout(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("create client: %w", err)
	}

	var prober *poster.Prober
	if cfg.ProbePosters {
		prober = poster.NewProber(client.HTTPClient(), poster.DefaultConcurrency)
	}

	return client, prober, nil
}
