package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/sdkpath"
)

// testEnv isolates the settings files and the Steam library layout.
type testEnv struct {
	configDir string
	workspace string
	library   string
	content   string
	game      string
	sdk       string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	e := &testEnv{
		configDir: filepath.Join(root, "config"),
		workspace: filepath.Join(root, "mod"),
		library:   filepath.Join(root, "SteamLibrary"),
	}
	e.content = filepath.Join(e.library, "steamapps", "common")
	e.game = filepath.Join(e.content, sdkpath.GameEnding)
	e.sdk = filepath.Join(e.content, sdkpath.SDKEnding)
	require.NoError(t, os.MkdirAll(e.workspace, 0o755))

	t.Setenv("XCOMKIT_CONFIG_DIR", e.configDir)
	t.Setenv("XCOMKIT_DEBUG", "")
	t.Setenv("ProgramFiles(x86)", "")
	t.Setenv("NO_COLOR", "1")

	origFs := appFs
	appFs = afero.NewOsFs()
	t.Cleanup(func() { appFs = origFs })

	return e
}

func (e *testEnv) globalPath() string {
	return filepath.Join(e.configDir, "settings.yaml")
}

// installBoth creates the game and SDK folders inside the library.
func (e *testEnv) installBoth(t *testing.T) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.game, 0o755))
	require.NoError(t, os.MkdirAll(e.sdk, 0o755))
}

// set writes a global settings value.
func (e *testEnv) set(t *testing.T, key string, value any) {
	t.Helper()
	store, err := config.Open(config.Options{GlobalPath: e.globalPath(), DisableEnv: true})
	require.NoError(t, err)
	require.NoError(t, store.SetValue(key, value, config.ScopeGlobal))
}

// useLibrary points detection at the test library only.
func (e *testEnv) useLibrary(t *testing.T) {
	t.Helper()
	e.set(t, "discovery.volume_source", "none")
	e.set(t, "discovery.extra_libraries", []string{e.library})
}

func (e *testEnv) store(t *testing.T) *config.FileStore {
	t.Helper()
	store, err := config.Open(config.Options{GlobalPath: e.globalPath(), DisableEnv: true})
	require.NoError(t, err)
	return store
}

// resetFlags restores every flag to its default so state does not leak
// between executions of the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args inside the workspace and returns stdout.
func (e *testEnv) execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--workspace", e.workspace}, args...))

	err := ExecuteContext(t.Context())
	return out.String(), err
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
