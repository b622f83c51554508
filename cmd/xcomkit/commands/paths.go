package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcomkit/internal/sdkpath"
)

func init() {
	rootCmd.AddCommand(validatePathsCmd)
	rootCmd.AddCommand(guessPathsCmd)
}

var validatePathsCmd = &cobra.Command{
	Use:     "validate-paths",
	Aliases: []string{"validatePaths"},
	Short:   "Check the configured game and SDK paths",
	Long: `Check that xcom.highlander.gameroot points at an "XCOM 2/XCom2-WarOfTheChosen"
directory and xcom.highlander.sdkroot at an "XCOM 2 War of the Chosen SDK"
directory.

When either path is wrong, "Detect automatically" is offered. Accepting it runs
guess-paths. Validation itself never changes settings.`,
	Example: `  # Check and prompt
  xcomkit validate-paths

  # Check and detect without prompting
  xcomkit validate-paths --yes

  See Also: xcomkit guess-paths, xcomkit doctor`,
	Args: cobra.NoArgs,
	RunE: runValidatePaths,
}

var guessPathsCmd = &cobra.Command{
	Use:     "guess-paths",
	Aliases: []string{"guessPaths"},
	Short:   "Detect the game and SDK paths from Steam libraries",
	Long: `Search Steam libraries for the game and SDK installs and save any path that
is currently wrong to the global settings file. Paths that are already correct
are left alone.

Libraries are searched in order: Program Files (x86)/Steam, SteamLibrary on
each drive, then discovery.extra_libraries.`,
	Example: `  xcomkit guess-paths

  # Scan a library on a non-Windows mount
  xcomkit config set discovery.volume_source none
  xcomkit config set discovery.extra_libraries /mnt/games/SteamLibrary
  xcomkit guess-paths

  See Also: xcomkit libraries, xcomkit validate-paths`,
	Args: cobra.NoArgs,
	RunE: runGuessPaths,
}

func runValidatePaths(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	svc, err := a.detectionService()
	if err != nil {
		a.logger.Warn("detection unavailable", "error", err)
		svc = a.pathService()
	}

	return sdkpath.Validate(cmd.Context(), svc, newNotifier(cmd))
}

func runGuessPaths(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	svc, err := a.detectionService()
	if err != nil {
		return err
	}

	return sdkpath.Guess(cmd.Context(), svc, newNotifier(cmd))
}
