// Package fileutil reads and replaces settings files through an afero
// filesystem: capped reads and atomic YAML writes.
package fileutil

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// yamlIndent is the indentation used for written settings files.
const yamlIndent = 2

// tempPattern names the staging file created next to the target.
const tempPattern = ".xcomkit-settings-*.tmp"

// AtomicWriteFile stages data in a temp file beside path and renames it over
// path, leaving the previous contents intact if any step fails. The parent
// directory must exist.
func AtomicWriteFile(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	tmp, err := afero.TempFile(fsys, filepath.Dir(path), tempPattern)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	committed = true
	return nil
}

// AtomicWriteYAML encodes v as YAML with two-space indentation and writes it
// to path atomically. Nothing is written when v cannot be encoded.
func AtomicWriteYAML(fsys afero.Fs, path string, v any, perm os.FileMode) (err error) {
	// yaml.v3 panics on values it cannot represent, such as funcs.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("encoding YAML: %v", r)
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encoding YAML")
	}

	return AtomicWriteFile(fsys, path, buf.Bytes(), perm)
}
