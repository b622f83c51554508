package discovery

import (
	"strings"

	"github.com/spf13/afero"
)

// IsDir reports whether path exists and is a directory. Any error from the
// existence probe, including permission errors, counts as "does not exist".
// Symlinks are followed.
func IsDir(fsys afero.Fs, path string) bool {
	if path == "" {
		return false
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// IsValidInstallFolder reports whether path ends with expectedSuffix and is
// an existing directory. The suffix match is a literal trailing-substring
// comparison and is not aware of path components.
func IsValidInstallFolder(fsys afero.Fs, path, expectedSuffix string) bool {
	if !strings.HasSuffix(path, expectedSuffix) {
		return false
	}
	return IsDir(fsys, path)
}
