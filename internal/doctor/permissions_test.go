package doctor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
}

func TestSettingsPermissionCheck_Pass(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))

	check := NewSettingsPermissionCheck(path, "", filepath.Join(dir, "missing", ".xcomkit.yaml"))
	res := check.Run(t.Context())

	assert.Equal(t, SeverityPass, res.Status)
	assert.False(t, check.CanFix())
}

func TestSettingsPermissionCheck_WorldWritable(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o666))

	check := NewSettingsPermissionCheck(path)
	res := check.Run(t.Context())

	assert.Equal(t, SeverityWarning, res.Status)
	assert.True(t, res.Fixable)
	assert.Equal(t, 1, check.CountFixable())

	results := check.Fix()
	require.Len(t, results, 1)
	assert.True(t, results[0].Fixed)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Equal(t, SeverityPass, check.Run(t.Context()).Status)
}

func TestSettingsPermissionCheck_DirectoryInPlaceOfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.Mkdir(path, 0o700))

	res := NewSettingsPermissionCheck(path).Run(t.Context())
	assert.Equal(t, SeverityError, res.Status)
}

func TestPermissionFixer_ChmodFailure(t *testing.T) {
	f := &PermissionFixer{
		issues: []pathIssue{
			{Path: "/a", Type: "file", Fixable: true},
			{Path: "/b", Type: "socket", Fixable: true},
			{Path: "/c", Type: "directory", Fixable: false},
		},
		chmod: func(string, os.FileMode) error { return errors.New("read-only filesystem") },
	}

	results := f.Fix()
	require.Len(t, results, 2)
	assert.False(t, results[0].Fixed)
	assert.Error(t, results[0].Error)
	assert.Contains(t, results[1].Description, "unknown type")
}

func TestFormatPermissions(t *testing.T) {
	assert.Equal(t, "-rw------- (0600)", formatPermissions(0o600))
}
