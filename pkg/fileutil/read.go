package fileutil

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// MaxFileSize caps how much of a settings file is read (1MB).
const MaxFileSize = 1024 * 1024

var (
	// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
	ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

	// ErrIsDirectory indicates a directory sits where a file was expected.
	ErrIsDirectory = errors.New("path is a directory")
)

// ReadIfExists reads path from fsys, capped at MaxFileSize. A missing file
// is not an error: it returns ok == false and no data.
func ReadIfExists(fsys afero.Fs, path string) (data []byte, ok bool, err error) {
	f, err := fsys.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, false, errors.Wrap(err, "inspecting file")
	}
	if info.IsDir() {
		return nil, false, errors.Wrapf(ErrIsDirectory, "%s", path)
	}
	if info.Size() > MaxFileSize {
		return nil, false, ErrFileTooLarge
	}

	data, err = io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, false, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, false, ErrFileTooLarge
	}
	return data, true, nil
}
