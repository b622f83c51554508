package discovery

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"

	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/logging"
)

// Folder names that make up a Steam library layout.
const (
	// DefaultVendorDir is the Steam install folder under Program Files (x86).
	DefaultVendorDir = "Steam"

	// DriveLibraryDir is the library folder Steam creates at a drive root.
	DriveLibraryDir = "SteamLibrary"
)

// LibraryContentPath is the folder inside a library that holds installed titles.
var LibraryContentPath = filepath.Join("steamapps", "common")

// Scanner enumerates Steam library roots.
type Scanner struct {
	fs          afero.Fs
	volumes     VolumeLister
	defaultRoot string
	extra       []string
	logger      *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithDefaultRoot sets the Program Files (x86) directory. An empty root
// disables the default candidate.
func WithDefaultRoot(root string) Option {
	return func(s *Scanner) {
		s.defaultRoot = root
	}
}

// WithExtraLibraries appends library roots scanned after the drives.
func WithExtraLibraries(roots ...string) Option {
	return func(s *Scanner) {
		s.extra = append(s.extra, roots...)
	}
}

// WithLogger sets the scanner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner returns a Scanner probing fsys. A nil volumes lister scans no drives.
func NewScanner(fsys afero.Fs, volumes VolumeLister, opts ...Option) *Scanner {
	s := &Scanner{
		fs:      fsys,
		volumes: volumes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Candidates returns every candidate "steamapps/common" directory without
// checking existence. Order: default root, drives in lister order, extra
// libraries in configured order.
func (s *Scanner) Candidates(ctx context.Context) ([]string, error) {
	var libraries []string

	if s.defaultRoot != "" && IsDir(s.fs, s.defaultRoot) {
		libraries = append(libraries, filepath.Join(s.defaultRoot, DefaultVendorDir))
	}

	if s.volumes != nil {
		volumes, err := s.volumes.ListVolumes(ctx)
		if err != nil {
			var discErr *DiscoveryError
			if errors.As(err, &discErr) {
				return nil, err
			}
			return nil, &DiscoveryError{Op: "list volumes", Err: err}
		}
		for _, v := range volumes {
			libraries = append(libraries, filepath.Join(v, DriveLibraryDir))
		}
	}

	libraries = append(libraries, s.extra...)

	candidates := make([]string, len(libraries))
	for i, lib := range libraries {
		candidates[i] = filepath.Join(lib, LibraryContentPath)
	}
	return candidates, nil
}

// FindLibraryRoots returns the candidates that are existing directories.
func (s *Scanner) FindLibraryRoots(ctx context.Context) ([]string, error) {
	candidates, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	logger := s.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	for _, c := range candidates {
		logger.Log(ctx, logging.LevelTrace, "library candidate", "path", c)
	}

	roots := FilterDirs(s.fs, candidates)
	logger.Debug("library scan complete", "candidates", len(candidates), "roots", len(roots))
	return roots, nil
}

// FilterDirs returns the entries of candidates that are existing directories.
// Checks run concurrently; the result keeps the input order.
func FilterDirs(fsys afero.Fs, candidates []string) []string {
	exists := iter.Map(candidates, func(c *string) bool {
		return IsDir(fsys, *c)
	})

	dirs := make([]string, 0, len(candidates))
	for i, ok := range exists {
		if ok {
			dirs = append(dirs, candidates[i])
		}
	}
	return dirs
}
