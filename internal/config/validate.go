package config

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/xcomkit/internal/discovery"
	"github.com/thoreinstein/xcomkit/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidVolumeSource indicates an unrecognized discovery.volume_source.
	ErrInvalidVolumeSource = errors.New("invalid volume source")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
// Install paths are not checked here; that is what path validation is for.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if !slices.Contains(discovery.VolumeSources(), cfg.Discovery.VolumeSource) {
		errs = append(errs, &FieldError{
			Field: VolumeSourceKey,
			Value: cfg.Discovery.VolumeSource,
			Err:   ErrInvalidVolumeSource,
		})
	}

	for _, lib := range cfg.Discovery.ExtraLibraries {
		if err := validatePath(lib); err != nil {
			errs = append(errs, &FieldError{
				Field: ExtraLibrariesKey,
				Value: lib,
				Err:   err,
			})
		}
	}

	return errs
}

// ParseValue converts command-line input for key into the value stored in
// the settings file. List keys take a comma-separated list. Install paths
// are stored as given.
func ParseValue(key, raw string) (any, error) {
	switch key {
	case VersionKey:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &FieldError{Field: key, Value: raw, Err: errors.New("not a number")}
		}
		if n < 1 {
			return nil, &FieldError{Field: key, Value: raw, Err: ErrVersionTooLow}
		}
		return n, nil
	case VolumeSourceKey:
		if !slices.Contains(discovery.VolumeSources(), raw) {
			return nil, &FieldError{Field: key, Value: raw, Err: ErrInvalidVolumeSource}
		}
		return raw, nil
	case ExtraLibrariesKey:
		var libs []string
		for part := range strings.SplitSeq(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if err := validatePath(part); err != nil {
				return nil, &FieldError{Field: key, Value: part, Err: err}
			}
			libs = append(libs, part)
		}
		return libs, nil
	case GameRootKey, SDKRootKey:
		return raw, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownKey, "%q", key)
	}
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if path == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific settings field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
