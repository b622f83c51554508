// Package editor launches the XCOM 2 SDK editor and the user's text editor.
package editor

import (
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/logging"
)

// ErrLaunch marks a failure to start the SDK editor.
var ErrLaunch = errors.New("failed to start editor")

// Args are the fixed arguments passed to the SDK editor.
var Args = []string{"editor", "-noscriptcompile", "-nogadwarning"}

// ExecutablePath returns the editor executable inside an SDK install.
func ExecutablePath(sdkRoot string) string {
	return filepath.Join(sdkRoot, "Binaries", "Win64", "XComGame.exe")
}

// Launcher starts the SDK editor as a detached process.
type Launcher struct {
	start  func(*exec.Cmd) error
	logger *slog.Logger
}

// NewLauncher returns a Launcher that spawns real processes.
func NewLauncher(logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Launcher{
		start:  (*exec.Cmd).Start,
		logger: logger,
	}
}

// Command builds the editor command for sdkRoot without starting it.
func Command(sdkRoot string) *exec.Cmd {
	// Not bound to a context: the editor outlives this process.
	cmd := exec.Command(ExecutablePath(sdkRoot), Args...) //nolint:gosec // path comes from validated settings
	cmd.Dir = filepath.Dir(cmd.Path)
	cmd.SysProcAttr = detachedAttr()
	return cmd
}

// Launch spawns the editor for sdkRoot and releases the process handle. The
// returned error wraps ErrLaunch.
func (l *Launcher) Launch(ctx context.Context, sdkRoot string) error {
	if err := ctx.Err(); err != nil {
		return errors.Mark(errors.Wrap(err, "launch cancelled"), ErrLaunch)
	}

	cmd := Command(sdkRoot)
	l.logger.Debug("starting editor", "path", cmd.Path, "args", Args)

	if err := l.start(cmd); err != nil {
		l.logger.Error("editor failed to start", "path", cmd.Path, "error", err)
		return errors.Mark(errors.Wrapf(err, "starting %s", cmd.Path), ErrLaunch)
	}

	pid := 0
	if cmd.Process != nil {
		pid = cmd.Process.Pid
		if err := cmd.Process.Release(); err != nil {
			l.logger.Warn("failed to release editor process", "pid", pid, "error", err)
		}
	}
	l.logger.Info("editor started", "pid", pid)
	return nil
}
