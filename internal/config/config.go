package config

import (
	stderrors "errors"

	"github.com/spf13/viper"

	"github.com/thoreinstein/xcomkit/internal/discovery"
)

// CurrentVersion is the settings file format version.
const CurrentVersion = 1

// Config is the decoded settings tree.
type Config struct {
	Version   int       `mapstructure:"version" yaml:"version" json:"version" toml:"version"`
	Discovery Discovery `mapstructure:"discovery" yaml:"discovery" json:"discovery" toml:"discovery"`
	XCom      XCom      `mapstructure:"xcom" yaml:"xcom" json:"xcom" toml:"xcom"`
}

// Discovery configures library scanning.
type Discovery struct {
	// VolumeSource selects the drive enumeration backend: wmic, native or none.
	VolumeSource string `mapstructure:"volume_source" yaml:"volume_source" json:"volume_source" toml:"volume_source"`

	// ExtraLibraries are additional Steam library roots scanned after drives.
	ExtraLibraries []string `mapstructure:"extra_libraries" yaml:"extra_libraries" json:"extra_libraries" toml:"extra_libraries"`
}

// XCom holds the settings under the "xcom" root identifier.
type XCom struct {
	Highlander Highlander `mapstructure:"highlander" yaml:"highlander" json:"highlander" toml:"highlander"`
}

// Highlander holds the configured install paths.
type Highlander struct {
	GameRoot string `mapstructure:"gameroot" yaml:"gameroot" json:"gameroot" toml:"gameroot"`
	SDKRoot  string `mapstructure:"sdkroot" yaml:"sdkroot" json:"sdkroot" toml:"sdkroot"`
}

// Default returns the configuration used when no settings exist.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Discovery: Discovery{
			VolumeSource: discovery.SourceWMIC,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(VersionKey, d.Version)
	v.SetDefault(VolumeSourceKey, d.Discovery.VolumeSource)
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
