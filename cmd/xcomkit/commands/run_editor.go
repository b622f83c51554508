package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcomkit/internal/editor"
	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/notify"
)

// launcher starts the SDK editor. Tests replace it.
var launcher interface {
	Launch(ctx context.Context, sdkRoot string) error
} = editor.NewLauncher(nil)

func init() {
	rootCmd.AddCommand(runEditorCmd)
}

var runEditorCmd = &cobra.Command{
	Use:     "run-editor",
	Aliases: []string{"runEditor"},
	Short:   "Launch the XCOM 2 SDK editor",
	Long: `Launch <sdkroot>/Binaries/Win64/XComGame.exe with
"editor -noscriptcompile -nogadwarning".

The editor runs detached: xcomkit returns immediately and does not wait for it.
The SDK path must pass validate-paths first.`,
	Example: `  xcomkit run-editor

  See Also: xcomkit validate-paths`,
	Args: cobra.NoArgs,
	RunE: runRunEditor,
}

func runRunEditor(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	svc := a.pathService()
	n := newNotifier(cmd)
	ctx := cmd.Context()

	sdk, ok := svc.ValidSDKPath()
	if !ok {
		if _, err := n.Notify(ctx, notify.Errorf("cannot launch editor - the SDK path is not configured correctly")); err != nil {
			return err
		}
		return errors.NewExitError(nil, errors.ExitUser)
	}

	if err := launcher.Launch(ctx, sdk); err != nil {
		a.logger.Error("launch failed", "error", err)
		if _, nerr := n.Notify(ctx, notify.Errorf("cannot launch editor - failed to start %s", editor.ExecutablePath(sdk))); nerr != nil {
			return nerr
		}
		return errors.NewExitError(nil, errors.ExitSystem)
	}

	a.logger.Info("editor launched", "sdk", sdk)
	return nil
}
