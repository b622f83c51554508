package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/doctor"
	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/logging"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVarP(&doctorAll, "all", "a", false,
		"show every check, including passed ones")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable issues (settings file permissions)")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "all")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose settings and install paths",
	Long: `Run diagnostic checks on the settings files, the configured game and SDK
paths, the SDK editor executable, and Steam library discovery.

Output modes:
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return errors.NewUserError(err, "check XCOMKIT_* environment variables")
	}
	opts := settingsOptions(env)
	logger := logging.FromContext(cmd.Context())

	runner := buildDoctorRunner(env, opts, logger)
	report := runner.Run(cmd.Context())

	w := cmd.OutOrStdout()
	if doctorFix {
		if applyFixes(w, runner) > 0 {
			report = runner.Run(cmd.Context())
		}
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func buildDoctorRunner(env config.Env, opts config.Options, logger *slog.Logger) *doctor.Runner {
	runner := doctor.NewRunner()

	store, openErr := config.Open(opts)
	runner.AddCheck(doctor.NewSettingsCheck(func() (*config.Config, error) {
		if openErr != nil {
			return nil, openErr
		}
		return store.Config()
	}))
	runner.AddCheck(doctor.NewSettingsPermissionCheck(opts.GlobalPath, opts.WorkspacePath))

	if openErr != nil {
		logger.Debug("skipping path checks", "error", openErr)
		return runner
	}

	a := &app{env: env, store: store, logger: logger}
	svc := a.pathService()
	runner.AddCheck(doctor.NewGamePathCheck(svc, appFs))
	runner.AddCheck(doctor.NewSDKPathCheck(svc, appFs))
	runner.AddCheck(doctor.NewEditorCheck(svc, appFs))

	if s, cfg, err := a.scanner(); err == nil {
		runner.AddCheck(doctor.NewLibraryCheck(s, cfg.Discovery.VolumeSource))
	}
	return runner
}

// applyFixes runs every fixer with pending fixes and returns how many were attempted.
func applyFixes(w io.Writer, runner *doctor.Runner) int {
	attempted := 0
	for _, check := range runner.Checks() {
		fixer, ok := check.(doctor.Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		for _, res := range fixer.Fix() {
			attempted++
			if res.Fixed {
				fmt.Fprintf(w, "fixed %s: %s\n", res.Path, res.Description)
			} else {
				fmt.Fprintf(w, "could not fix %s: %s\n", res.Path, res.Description)
			}
		}
	}
	if attempted > 0 {
		fmt.Fprintln(w)
	}
	return attempted
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}
	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) error {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !doctorAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(w, result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(w io.Writer, s doctor.Severity) string {
	var icon string
	var c *color.Color
	switch s {
	case doctor.SeverityPass:
		icon, c = "✓", color.New(color.FgGreen)
	case doctor.SeverityInfo:
		icon, c = "ℹ", color.New(color.FgCyan)
	case doctor.SeverityWarning:
		icon, c = "⚠", color.New(color.FgYellow)
	case doctor.SeverityError:
		icon, c = "✗", color.New(color.FgRed)
	default:
		return "?"
	}
	if !logging.ColorEnabled(w, colorMode) {
		return icon
	}
	c.EnableColor()
	return c.Sprint(icon)
}
