package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the settings directory.
const AppName = "xcomkit"

// File names for the two settings scopes.
const (
	GlobalSettingsFile    = "settings.yaml"
	WorkspaceSettingsFile = ".xcomkit.yaml"
)

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// SettingsDir returns the directory holding global settings.
// A non-empty override (from XCOMKIT_CONFIG_DIR) wins over the XDG location.
func SettingsDir(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(ConfigHome(), AppName)
}

// GlobalSettingsPath returns <SettingsDir>/settings.yaml.
func GlobalSettingsPath(override string) string {
	return filepath.Join(SettingsDir(override), GlobalSettingsFile)
}

// WorkspaceSettingsPath returns <dir>/.xcomkit.yaml.
// An empty dir means the current working directory.
func WorkspaceSettingsPath(dir string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, WorkspaceSettingsFile)
}
