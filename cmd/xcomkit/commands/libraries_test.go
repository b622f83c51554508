package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraries(t *testing.T) {
	e := newTestEnv(t)
	missing := filepath.Join(t.TempDir(), "Gone")
	e.set(t, "discovery.volume_source", "none")
	e.set(t, "discovery.extra_libraries", []string{e.library, missing})
	require.NoError(t, os.MkdirAll(e.content, 0o755))

	out, err := e.execute(t, "", "libraries")
	require.NoError(t, err)
	assert.Equal(t, "✓ "+e.content+"\n", out)

	out, err = e.execute(t, "", "libraries", "--all", "--json")
	require.NoError(t, err)

	var entries []libraryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []libraryEntry{
		{Path: e.content, Exists: true},
		{Path: filepath.Join(missing, "steamapps", "common"), Exists: false},
	}, entries)
}

func TestLibraries_DefaultRoot(t *testing.T) {
	e := newTestEnv(t)
	pf := t.TempDir()
	t.Setenv("ProgramFiles(x86)", pf)
	e.set(t, "discovery.volume_source", "none")

	content := filepath.Join(pf, "Steam", "steamapps", "common")
	require.NoError(t, os.MkdirAll(content, 0o755))

	out, err := e.execute(t, "", "libraries")
	require.NoError(t, err)
	assert.Equal(t, "✓ "+content+"\n", out)
}

func TestLibraries_None(t *testing.T) {
	e := newTestEnv(t)
	e.set(t, "discovery.volume_source", "none")

	out, err := e.execute(t, "", "libraries")
	require.NoError(t, err)
	assert.Equal(t, "No Steam libraries found.\n", out)
}
