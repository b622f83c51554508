package config

import (
	"slices"
	"strings"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// Settings keys. The xcom.* keys are the configured install paths.
const (
	VersionKey        = "version"
	GameRootKey       = "xcom.highlander.gameroot"
	SDKRootKey        = "xcom.highlander.sdkroot"
	VolumeSourceKey   = "discovery.volume_source"
	ExtraLibrariesKey = "discovery.extra_libraries"
)

// Keys returns every settings key in display order.
func Keys() []string {
	return []string{GameRootKey, SDKRootKey, VolumeSourceKey, ExtraLibrariesKey, VersionKey}
}

// ValidKey reports whether key is a known settings key.
func ValidKey(key string) bool {
	return slices.Contains(Keys(), key)
}

// IsListKey reports whether key holds a list value.
func IsListKey(key string) bool {
	return key == ExtraLibrariesKey
}

// Scope selects which settings file a write goes to.
type Scope int

const (
	// ScopeGlobal is the per-user settings file.
	ScopeGlobal Scope = iota

	// ScopeWorkspace is the settings file in the working directory.
	ScopeWorkspace
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeWorkspace:
		return "workspace"
	default:
		return "unknown"
	}
}

// ParseScope parses "global" or "workspace".
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "global", "user", "":
		return ScopeGlobal, nil
	case "workspace", "local":
		return ScopeWorkspace, nil
	default:
		return 0, errors.Newf("invalid scope %q (valid: global, workspace)", s)
	}
}
