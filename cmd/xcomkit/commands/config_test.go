package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/errors"
)

func TestConfigSetGet(t *testing.T) {
	e := newTestEnv(t)

	out, err := e.execute(t, "", "config", "set", config.SDKRootKey, e.sdk)
	require.NoError(t, err)
	assert.Contains(t, out, "Set "+config.SDKRootKey)

	out, err = e.execute(t, "", "config", "get", config.SDKRootKey)
	require.NoError(t, err)
	assert.Equal(t, e.sdk+"\n", out)

	out, err = e.execute(t, "", "config", "get", config.GameRootKey)
	require.NoError(t, err)
	assert.Equal(t, "not set\n", out)
}

func TestConfigSet_WorkspaceOverridesGlobal(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.execute(t, "", "config", "set", config.GameRootKey, "/global/game")
	require.NoError(t, err)
	_, err = e.execute(t, "", "config", "set", "--scope", "workspace", config.GameRootKey, "/workspace/game")
	require.NoError(t, err)

	out, err := e.execute(t, "", "config", "get", config.GameRootKey)
	require.NoError(t, err)
	assert.Equal(t, "/workspace/game\n", out)

	out, err = e.execute(t, "", "config", "get", "--scope", "global", config.GameRootKey)
	require.NoError(t, err)
	assert.Equal(t, "/global/game\n", out)

	assert.FileExists(t, filepath.Join(e.workspace, ".xcomkit.yaml"))
}

func TestConfigSet_ListValue(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.execute(t, "", "config", "set", config.ExtraLibrariesKey, "/a,/b")
	require.NoError(t, err)

	out, err := e.execute(t, "", "config", "get", config.ExtraLibrariesKey)
	require.NoError(t, err)
	assert.Equal(t, "/a\n/b\n", out)
}

func TestConfigSet_Errors(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "set", "xcom.highlander.modroot", "x"}},
		{"bad volume source", []string{"config", "set", config.VolumeSourceKey, "registry"}},
		{"bad scope", []string{"config", "set", "--scope", "team", config.GameRootKey, "x"}},
		{"bad version", []string{"config", "set", config.VersionKey, "zero"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
		})
	}
}

func TestConfigUnset(t *testing.T) {
	e := newTestEnv(t)
	e.set(t, config.GameRootKey, "/games/x")

	_, err := e.execute(t, "", "config", "unset", config.GameRootKey)
	require.NoError(t, err)
	assert.Empty(t, e.store(t).Get(config.GameRootKey))
}

func TestConfigList_Formats(t *testing.T) {
	e := newTestEnv(t)
	e.set(t, config.SDKRootKey, e.sdk)

	t.Run("yaml", func(t *testing.T) {
		out, err := e.execute(t, "", "config", "list")
		require.NoError(t, err)
		var cfg config.Config
		require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, e.sdk, cfg.XCom.Highlander.SDKRoot)
		assert.Equal(t, "wmic", cfg.Discovery.VolumeSource)
	})

	t.Run("json", func(t *testing.T) {
		out, err := e.execute(t, "", "config", "list", "--format", "json")
		require.NoError(t, err)
		var cfg config.Config
		require.NoError(t, json.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, e.sdk, cfg.XCom.Highlander.SDKRoot)
	})

	t.Run("toml", func(t *testing.T) {
		out, err := e.execute(t, "", "config", "list", "--format", "toml")
		require.NoError(t, err)
		var cfg config.Config
		require.NoError(t, toml.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, e.sdk, cfg.XCom.Highlander.SDKRoot)
		assert.Equal(t, config.CurrentVersion, cfg.Version)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := e.execute(t, "", "config", "list", "--format", "xml")
		assert.Error(t, err)
	})
}

func TestConfig_EnvOverride(t *testing.T) {
	e := newTestEnv(t)
	e.set(t, config.SDKRootKey, "/from/file")
	t.Setenv("XCOMKIT_XCOM_HIGHLANDER_SDKROOT", "/from/env")

	out, err := e.execute(t, "", "config", "get", config.SDKRootKey)
	require.NoError(t, err)
	assert.Equal(t, "/from/env\n", out)
}

func TestConfigPath(t *testing.T) {
	e := newTestEnv(t)

	out, err := e.execute(t, "", "config", "path")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], e.globalPath())
	assert.Contains(t, lines[0], "(not created)")
	assert.Contains(t, lines[1], filepath.Join(e.workspace, ".xcomkit.yaml"))
}

func TestConfigPath_ExplicitFile(t *testing.T) {
	e := newTestEnv(t)
	custom := filepath.Join(t.TempDir(), "custom.yaml")

	_, err := e.execute(t, "", "--config", custom, "config", "set", config.GameRootKey, "/g")
	require.NoError(t, err)
	assert.FileExists(t, custom)
	assert.NoFileExists(t, e.globalPath())
}

func TestLookupNested(t *testing.T) {
	m := map[string]any{"xcom": map[string]any{"highlander": map[string]any{"sdkroot": "/sdk"}}}

	got, ok := lookupNested(m, []string{"xcom", "highlander", "sdkroot"})
	assert.True(t, ok)
	assert.Equal(t, "/sdk", got)

	_, ok = lookupNested(m, []string{"xcom", "highlander", "gameroot"})
	assert.False(t, ok)

	_, ok = lookupNested(m, []string{"xcom", "highlander", "sdkroot", "deeper"})
	assert.False(t, ok)
}
