package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcomkit/internal/cli/prompt"
	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/discovery"
	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/logging"
	"github.com/thoreinstein/xcomkit/internal/notify"
	"github.com/thoreinstein/xcomkit/internal/paths"
	"github.com/thoreinstein/xcomkit/internal/sdkpath"
)

// appFs is the filesystem the path checks probe. Tests swap in a MemMapFs.
var appFs afero.Fs = afero.NewOsFs()

// app bundles the collaborators a command needs.
type app struct {
	env    config.Env
	store  *config.FileStore
	logger *slog.Logger
}

// settingsOptions resolves the settings file locations from flags and env.
func settingsOptions(env config.Env) config.Options {
	global := configFile
	if global == "" {
		global = paths.GlobalSettingsPath(env.ConfigDir)
	}
	return config.Options{
		GlobalPath:    global,
		WorkspacePath: paths.WorkspaceSettingsPath(workspaceDir),
	}
}

// loadApp opens the settings store.
func loadApp(cmd *cobra.Command) (*app, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return nil, errors.NewUserError(err, "check XCOMKIT_* environment variables")
	}

	store, err := config.Open(settingsOptions(env))
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	return &app{
		env:    env,
		store:  store,
		logger: logging.FromContext(cmd.Context()),
	}, nil
}

// scanner builds the library scanner from the merged settings.
func (a *app) scanner() (*discovery.Scanner, *config.Config, error) {
	cfg, err := a.store.Config()
	if err != nil {
		return nil, nil, errors.NewConfigError(err)
	}

	volumes, err := discovery.NewVolumeLister(cfg.Discovery.VolumeSource)
	if err != nil {
		return nil, nil, errors.NewConfigError(err)
	}

	s := discovery.NewScanner(appFs, volumes,
		discovery.WithDefaultRoot(a.env.ProgramFilesX86),
		discovery.WithExtraLibraries(cfg.Discovery.ExtraLibraries...),
		discovery.WithLogger(a.logger),
	)
	return s, cfg, nil
}

// pathService builds a path service that validates but cannot detect.
func (a *app) pathService() *sdkpath.Service {
	return sdkpath.New(a.store, appFs, nil, a.logger)
}

// detectionService builds a path service backed by the library scanner.
// It fails when the discovery settings are invalid.
func (a *app) detectionService() (*sdkpath.Service, error) {
	s, _, err := a.scanner()
	if err != nil {
		return nil, err
	}
	return sdkpath.New(a.store, appFs, s, a.logger), nil
}

// newNotifier renders notices on the command's output and resolves actions
// according to --yes and --no-input.
func newNotifier(cmd *cobra.Command) notify.Notifier {
	out := cmd.OutOrStdout()
	colored := logging.ColorEnabled(out, colorMode)
	switch {
	case assumeYes:
		return notify.NewTerminal(out, nil, notify.ActionAccept).WithColor(colored)
	case noInput:
		return notify.NewTerminal(out, nil, notify.ActionDismiss).WithColor(colored)
	default:
		return notify.NewTerminal(out, newChooser(cmd.InOrStdin(), out), notify.ActionPrompt).WithColor(colored)
	}
}

func newChooser(in io.Reader, out io.Writer) prompt.Chooser {
	if f, ok := in.(*os.File); ok {
		return prompt.NewChooser(f, out)
	}
	return prompt.NewSelectorWithIO(in, out)
}
