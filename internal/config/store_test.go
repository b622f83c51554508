package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/pkg/fileutil"
)

func openTestStore(t *testing.T) (*FileStore, string, string) {
	t.Helper()
	dir := t.TempDir()
	global := filepath.Join(dir, "cfg", "settings.yaml")
	workspace := filepath.Join(dir, "mod", ".xcomkit.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(workspace), 0o755))

	s, err := Open(Options{GlobalPath: global, WorkspacePath: workspace})
	require.NoError(t, err)
	return s, global, workspace
}

func TestOpen_MissingFilesAreEmpty(t *testing.T) {
	s, _, _ := openTestStore(t)

	assert.Equal(t, "", s.Get(GameRootKey))
	assert.Equal(t, "", s.Get(SDKRootKey))

	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestOpen_RequiresGlobalPath(t *testing.T) {
	_, err := Open(Options{})
	assert.Error(t, err)
}

func TestOpen_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("xcom: [unterminated"), 0o600))

	_, err := Open(Options{GlobalPath: path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestOpen_DirectoryAtSettingsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.MkdirAll(path, 0o755))

	_, err := Open(Options{GlobalPath: path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fileutil.ErrIsDirectory))
}

func TestSet_PersistsGlobal(t *testing.T) {
	s, global, workspace := openTestStore(t)

	sdk := filepath.Join("D:", "SteamLibrary", "steamapps", "common", "XCOM 2 War of the Chosen SDK")
	require.NoError(t, s.Set(SDKRootKey, sdk, ScopeGlobal))
	assert.Equal(t, sdk, s.Get(SDKRootKey))

	data, err := os.ReadFile(global)
	require.NoError(t, err)
	var onDisk map[string]any
	require.NoError(t, yaml.Unmarshal(data, &onDisk))
	assert.Equal(t, map[string]any{
		"xcom": map[string]any{"highlander": map[string]any{"sdkroot": sdk}},
	}, onDisk)

	_, err = os.Stat(workspace)
	assert.True(t, os.IsNotExist(err), "global writes must not touch the workspace file")

	reopened, err := Open(Options{GlobalPath: global, WorkspacePath: workspace})
	require.NoError(t, err)
	assert.Equal(t, sdk, reopened.Get(SDKRootKey))
}

func TestGet_Precedence(t *testing.T) {
	s, _, _ := openTestStore(t)

	require.NoError(t, s.Set(GameRootKey, "/global/game", ScopeGlobal))
	assert.Equal(t, "/global/game", s.Get(GameRootKey))

	require.NoError(t, s.Set(GameRootKey, "/workspace/game", ScopeWorkspace))
	assert.Equal(t, "/workspace/game", s.Get(GameRootKey))

	t.Setenv("XCOMKIT_XCOM_HIGHLANDER_GAMEROOT", "/env/game")
	assert.Equal(t, "/env/game", s.Get(GameRootKey))

	got, ok := s.GetScoped(GameRootKey, ScopeGlobal)
	assert.True(t, ok)
	assert.Equal(t, "/global/game", got)
}

func TestSource(t *testing.T) {
	s, _, _ := openTestStore(t)

	assert.Equal(t, "", s.Source(SDKRootKey))

	require.NoError(t, s.Set(SDKRootKey, "/global/sdk", ScopeGlobal))
	assert.Equal(t, "global", s.Source(SDKRootKey))

	require.NoError(t, s.Set(SDKRootKey, "/workspace/sdk", ScopeWorkspace))
	assert.Equal(t, "workspace", s.Source(SDKRootKey))

	t.Setenv("XCOMKIT_XCOM_HIGHLANDER_SDKROOT", "/env/sdk")
	assert.Equal(t, "environment", s.Source(SDKRootKey))
}

func TestGet_EnvDisabled(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{GlobalPath: filepath.Join(dir, "settings.yaml"), DisableEnv: true})
	require.NoError(t, err)

	t.Setenv("XCOMKIT_XCOM_HIGHLANDER_SDKROOT", "/env/sdk")
	assert.Equal(t, "", s.Get(SDKRootKey))
}

func TestUnset(t *testing.T) {
	s, global, _ := openTestStore(t)

	require.NoError(t, s.Set(GameRootKey, "/g", ScopeGlobal))
	require.NoError(t, s.Set(SDKRootKey, "/s", ScopeGlobal))

	require.NoError(t, s.Unset(GameRootKey, ScopeGlobal))
	assert.Equal(t, "", s.Get(GameRootKey))
	assert.Equal(t, "/s", s.Get(SDKRootKey))

	require.NoError(t, s.Unset(SDKRootKey, ScopeGlobal))
	data, err := os.ReadFile(global)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	// Unsetting a missing key is a no-op.
	require.NoError(t, s.Unset(SDKRootKey, ScopeGlobal))
}

func TestSet_WorkspaceDisabled(t *testing.T) {
	s, err := Open(Options{GlobalPath: filepath.Join(t.TempDir(), "settings.yaml")})
	require.NoError(t, err)

	assert.Error(t, s.Set(GameRootKey, "/g", ScopeWorkspace))
	assert.Equal(t, "", s.Path(ScopeWorkspace))
}

func TestConfig_MergesScopes(t *testing.T) {
	s, _, _ := openTestStore(t)

	require.NoError(t, s.SetValue(ExtraLibrariesKey, []string{"/lib/a"}, ScopeGlobal))
	require.NoError(t, s.Set(VolumeSourceKey, "native", ScopeWorkspace))
	require.NoError(t, s.Set(SDKRootKey, "/sdk", ScopeGlobal))

	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "native", cfg.Discovery.VolumeSource)
	assert.Equal(t, []string{"/lib/a"}, cfg.Discovery.ExtraLibraries)
	assert.Equal(t, "/sdk", cfg.XCom.Highlander.SDKRoot)
}

func TestConfig_EnvListOverride(t *testing.T) {
	s, _, _ := openTestStore(t)

	t.Setenv("XCOMKIT_DISCOVERY_EXTRA_LIBRARIES", "/lib/a"+string(os.PathListSeparator)+"/lib/b")

	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, []string{"/lib/a", "/lib/b"}, cfg.Discovery.ExtraLibraries)
}

func TestConfig_Invalid(t *testing.T) {
	s, _, _ := openTestStore(t)
	require.NoError(t, s.Set(VolumeSourceKey, "registry", ScopeGlobal))

	_, err := s.Config()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "invalid volume source: registry")
}

func TestDeleteNested(t *testing.T) {
	m := map[string]any{
		"xcom": map[string]any{
			"highlander": map[string]any{"gameroot": "/g"},
		},
		"version": 1,
	}

	assert.False(t, deleteNested(m, []string{"xcom", "highlander", "sdkroot"}))
	assert.True(t, deleteNested(m, []string{"xcom", "highlander", "gameroot"}))
	assert.Equal(t, map[string]any{"version": 1}, m)
}
