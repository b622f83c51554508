package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// Env holds inputs read from the process environment.
type Env struct {
	// ProgramFilesX86 is the default Steam install parent on Windows.
	ProgramFilesX86 string `env:"ProgramFiles(x86)"`

	// ConfigDir overrides the global settings directory.
	ConfigDir string `env:"XCOMKIT_CONFIG_DIR"`

	// Debug raises log verbosity when no -v flag is given: "1"/"true" debug, "2" trace.
	Debug string `env:"XCOMKIT_DEBUG"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Wrap(err, "parse env")
	}
	return e, nil
}
