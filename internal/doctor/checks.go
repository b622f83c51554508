package doctor

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/discovery"
	"github.com/thoreinstein/xcomkit/internal/editor"
	"github.com/thoreinstein/xcomkit/internal/sdkpath"
)

// SettingsCheck verifies that the settings files parse and validate.
type SettingsCheck struct {
	load func() (*config.Config, error)
}

var _ Check = (*SettingsCheck)(nil)

// NewSettingsCheck creates a check that calls load to read the merged settings.
func NewSettingsCheck(load func() (*config.Config, error)) *SettingsCheck {
	return &SettingsCheck{load: load}
}

// Name returns the unique identifier for this check.
func (c *SettingsCheck) Name() string {
	return "settings"
}

// Category returns the grouping for this check.
func (c *SettingsCheck) Category() string {
	return "settings"
}

// Run loads and validates the settings.
func (c *SettingsCheck) Run(_ context.Context) *CheckResult {
	cfg, err := c.load()
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "settings are invalid",
			Details:  map[string]any{"error": err.Error()},
			FixHint:  "Run: xcomkit config list",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "settings are valid",
		Details: map[string]any{
			"version":         cfg.Version,
			"volume_source":   cfg.Discovery.VolumeSource,
			"extra_libraries": len(cfg.Discovery.ExtraLibraries),
		},
	}
}

// InstallPathCheck verifies one configured install path.
type InstallPathCheck struct {
	name   string
	label  string
	key    string
	ending string
	path   func() string
	fs     afero.Fs
}

var _ Check = (*InstallPathCheck)(nil)

// NewGamePathCheck checks the configured game path.
func NewGamePathCheck(svc *sdkpath.Service, fsys afero.Fs) *InstallPathCheck {
	return &InstallPathCheck{
		name:   "game-path",
		label:  "game",
		key:    config.GameRootKey,
		ending: sdkpath.GameEnding,
		path:   svc.GamePath,
		fs:     fsys,
	}
}

// NewSDKPathCheck checks the configured SDK path.
func NewSDKPathCheck(svc *sdkpath.Service, fsys afero.Fs) *InstallPathCheck {
	return &InstallPathCheck{
		name:   "sdk-path",
		label:  "SDK",
		key:    config.SDKRootKey,
		ending: sdkpath.SDKEnding,
		path:   svc.SDKPath,
		fs:     fsys,
	}
}

// Name returns the unique identifier for this check.
func (c *InstallPathCheck) Name() string {
	return c.name
}

// Category returns the grouping for this check.
func (c *InstallPathCheck) Category() string {
	return "paths"
}

// Run checks the path against the expected install folder ending.
func (c *InstallPathCheck) Run(_ context.Context) *CheckResult {
	path := c.path()

	result := &CheckResult{
		Name:     c.name,
		Category: c.Category(),
		Details:  map[string]any{"key": c.key, "path": path, "expected_ending": c.ending},
		FixHint:  "Run: xcomkit guess-paths",
	}

	switch {
	case path == "":
		result.Status = SeverityError
		result.Message = c.label + " path is not configured"
	case !discovery.IsDir(c.fs, path):
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s path %s is not an existing directory", c.label, path)
	case !discovery.IsValidInstallFolder(c.fs, path, c.ending):
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s path must end with %q", c.label, c.ending)
	default:
		result.Status = SeverityPass
		result.Message = c.label + " path is configured correctly"
		result.FixHint = ""
	}
	return result
}

// EditorCheck verifies that the SDK ships the editor executable.
type EditorCheck struct {
	svc *sdkpath.Service
	fs  afero.Fs
}

var _ Check = (*EditorCheck)(nil)

// NewEditorCheck creates a new editor executable check.
func NewEditorCheck(svc *sdkpath.Service, fsys afero.Fs) *EditorCheck {
	return &EditorCheck{svc: svc, fs: fsys}
}

// Name returns the unique identifier for this check.
func (c *EditorCheck) Name() string {
	return "editor-executable"
}

// Category returns the grouping for this check.
func (c *EditorCheck) Category() string {
	return "paths"
}

// Run looks for the editor executable inside the configured SDK.
func (c *EditorCheck) Run(_ context.Context) *CheckResult {
	sdk, ok := c.svc.ValidSDKPath()
	if !ok {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "skipped: SDK path is not configured correctly",
		}
	}

	exe := editor.ExecutablePath(sdk)
	info, err := c.fs.Stat(exe)
	if err != nil || info.IsDir() {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "editor executable not found",
			Details:  map[string]any{"path": exe},
			FixHint:  "Verify the SDK install in Steam",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "editor executable found",
		Details:  map[string]any{"path": exe},
	}
}

// LibraryFinder lists Steam library content directories.
type LibraryFinder interface {
	FindLibraryRoots(ctx context.Context) ([]string, error)
}

// LibraryCheck verifies that Steam libraries can be discovered.
type LibraryCheck struct {
	finder LibraryFinder
	source string
}

var _ Check = (*LibraryCheck)(nil)

// NewLibraryCheck creates a check over finder. source names the volume
// backend in the report.
func NewLibraryCheck(finder LibraryFinder, source string) *LibraryCheck {
	return &LibraryCheck{finder: finder, source: source}
}

// Name returns the unique identifier for this check.
func (c *LibraryCheck) Name() string {
	return "steam-libraries"
}

// Category returns the grouping for this check.
func (c *LibraryCheck) Category() string {
	return "discovery"
}

// Run scans for library roots.
func (c *LibraryCheck) Run(ctx context.Context) *CheckResult {
	roots, err := c.finder.FindLibraryRoots(ctx)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "library scan failed",
			Details:  map[string]any{"volume_source": c.source, "error": err.Error()},
			FixHint:  "Try: xcomkit config set discovery.volume_source native",
		}
	}

	if len(roots) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "no Steam libraries found",
			Details:  map[string]any{"volume_source": c.source},
			FixHint:  "Add one with: xcomkit config set discovery.extra_libraries <dir>",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("found %d Steam library folder(s)", len(roots)),
		Details:  map[string]any{"volume_source": c.source, "libraries": roots},
	}
}
