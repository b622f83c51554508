// Package commands implements the CLI commands for xcomkit.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcomkit/cmd"
	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile overrides the global settings file.
var configFile string

// workspaceDir overrides the directory holding the workspace settings file.
var workspaceDir string

// assumeYes answers every notice with its first action.
var assumeYes bool

// noInput dismisses every notice without asking.
var noInput bool

// colorFlag holds the value of the --color flag.
var colorFlag string

// colorMode is the parsed --color setting used by notices and doctor output.
var colorMode = logging.ColorAuto

// logCloser closes the --log-file handle once the command returns.
var logCloser func() error

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error log output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", string(logging.ColorAuto),
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"global settings file (default: $XDG_CONFIG_HOME/xcomkit/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&workspaceDir, "workspace", "",
		"directory holding .xcomkit.yaml (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"accept the suggested action on every prompt")
	rootCmd.PersistentFlags().BoolVar(&noInput, "no-input", false,
		"never prompt; dismiss offered actions")
	rootCmd.MarkFlagsMutuallyExclusive("yes", "no-input")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("xcomkit version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "xcomkit",
	Short: "XCOM 2 War of the Chosen modding toolkit",
	Long: `xcomkit locates and validates the XCOM 2 War of the Chosen game and SDK
installs, auto-detects them from Steam libraries, and launches the SDK editor.

Paths are stored under xcom.highlander.gameroot and xcom.highlander.sdkroot in
the global settings file. A .xcomkit.yaml in the working directory overrides
the global values.`,
	Example: `  # Check the configured paths
  xcomkit validate-paths

  # Detect missing paths from Steam libraries
  xcomkit guess-paths

  # Launch the SDK editor
  xcomkit run-editor

  See Also: xcomkit doctor, xcomkit config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence over XCOMKIT_DEBUG
		if v == 0 {
			env, err := config.ParseEnv()
			if err != nil {
				return errors.NewUserError(err, "check XCOMKIT_* environment variables")
			}
			switch env.Debug {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	var format logging.Format
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		format = logging.FormatJSON
	case logging.FormatText, "":
		format = logging.FormatText
	default:
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat), "use text or json")
	}

	mode, err := logging.ParseColorMode(colorFlag)
	if err != nil {
		return errors.NewUserError(err, "use auto, always or never")
	}
	colorMode = mode

	primary := logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
		Color:  mode,
	})
	handler := primary.Handler()

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "")
		}
		logCloser = f.Close
		fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
		handler = logging.NewTeeHandler(handler, fileHandler).OnSinkError(func(err error) {
			primary.Warn("log file disabled", "path", logFile, "error", err)
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. The --log-file handle is
// closed whether or not the command succeeded.
func ExecuteContext(ctx context.Context) (err error) {
	defer func() {
		if cerr := closeLogFile(); err == nil {
			err = cerr
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func closeLogFile() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser()
	logCloser = nil
	return errors.Wrap(err, "closing log file")
}
