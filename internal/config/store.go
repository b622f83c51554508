package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/paths"
	"github.com/thoreinstein/xcomkit/pkg/fileutil"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "XCOMKIT"

// settingsFs is where settings files are read and written.
var settingsFs afero.Fs = afero.NewOsFs()

// settingsFilePerm is the mode for written settings files.
const settingsFilePerm = 0o600

// Store reads and writes settings by key.
type Store interface {
	// Get returns the effective string value for key, or "" when unset.
	Get(key string) string

	// Set writes value for key into the given scope.
	Set(key, value string, scope Scope) error
}

// Options locates the settings files.
type Options struct {
	// GlobalPath is the global settings file.
	GlobalPath string

	// WorkspacePath is the workspace settings file. Empty disables the workspace scope.
	WorkspacePath string

	// DisableEnv turns off environment variable overrides.
	DisableEnv bool
}

type scopeFile struct {
	path string
	v    *viper.Viper
}

// FileStore is a Store backed by YAML settings files.
type FileStore struct {
	mu     sync.Mutex
	files  map[Scope]*scopeFile
	env    *viper.Viper
	useEnv bool
}

// Open reads both settings files. Missing files are treated as empty.
func Open(opts Options) (*FileStore, error) {
	if opts.GlobalPath == "" {
		return nil, errors.New("global settings path is required")
	}

	s := &FileStore{
		files:  make(map[Scope]*scopeFile, 2),
		useEnv: !opts.DisableEnv,
	}

	global, err := readScopeFile(opts.GlobalPath)
	if err != nil {
		return nil, err
	}
	s.files[ScopeGlobal] = global

	if opts.WorkspacePath != "" {
		workspace, err := readScopeFile(opts.WorkspacePath)
		if err != nil {
			return nil, err
		}
		s.files[ScopeWorkspace] = workspace
	}

	s.env = viper.New()
	s.env.SetEnvPrefix(EnvPrefix)
	s.env.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range Keys() {
		if err := s.env.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "binding env for %s", key)
		}
	}

	return s, nil
}

func readScopeFile(path string) (*scopeFile, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	data, ok, err := fileutil.ReadIfExists(settingsFs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings file %s", path)
	}
	if !ok {
		return &scopeFile{path: path, v: v}, nil
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parsing settings file %s", path), errors.ErrInvalidConfig)
	}

	return &scopeFile{path: path, v: v}, nil
}

// Get returns the effective value for key: environment, then workspace, then global.
func (s *FileStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.useEnv && s.env.IsSet(key) {
		return s.env.GetString(key)
	}
	for _, scope := range []Scope{ScopeWorkspace, ScopeGlobal} {
		if f, ok := s.files[scope]; ok && f.v.IsSet(key) {
			return f.v.GetString(key)
		}
	}
	return ""
}

// Source names the layer supplying the effective value for key:
// "environment", "workspace" or "global". It returns "" when key is unset.
func (s *FileStore) Source(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.useEnv && s.env.IsSet(key) {
		return "environment"
	}
	for _, scope := range []Scope{ScopeWorkspace, ScopeGlobal} {
		if f, ok := s.files[scope]; ok && f.v.IsSet(key) {
			return scope.String()
		}
	}
	return ""
}

// GetScoped returns the value stored in one scope's file, ignoring overrides.
func (s *FileStore) GetScoped(key string, scope Scope) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[scope]
	if !ok || !f.v.IsSet(key) {
		return "", false
	}
	return f.v.GetString(key), true
}

// Set writes a string value into scope and persists the file.
func (s *FileStore) Set(key, value string, scope Scope) error {
	return s.SetValue(key, value, scope)
}

// SetValue writes any YAML-representable value into scope and persists the file.
func (s *FileStore) SetValue(key string, value any, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.file(scope)
	if err != nil {
		return err
	}

	f.v.Set(key, value)
	return f.write()
}

// Unset removes key from scope and persists the file.
func (s *FileStore) Unset(key string, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.file(scope)
	if err != nil {
		return err
	}

	settings := f.v.AllSettings()
	if !deleteNested(settings, strings.Split(key, ".")) {
		return nil
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.MergeConfigMap(settings); err != nil {
		return errors.Wrap(err, "rebuilding settings")
	}
	f.v = v
	return f.write()
}

// Path returns the file backing scope, or "" when the scope is disabled.
func (s *FileStore) Path(scope Scope) string {
	if f, ok := s.files[scope]; ok {
		return f.path
	}
	return ""
}

// Settings returns the merged settings map (global, then workspace, then
// environment overrides) with defaults applied.
func (s *FileStore) Settings() (map[string]any, error) {
	v, err := s.merged()
	if err != nil {
		return nil, err
	}
	return v.AllSettings(), nil
}

// Config decodes and validates the merged settings.
func (s *FileStore) Config() (*Config, error) {
	v, err := s.merged()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(joinErrors(errs), "validating settings"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

func (s *FileStore) merged() (*viper.Viper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	setDefaults(v)
	for _, scope := range []Scope{ScopeGlobal, ScopeWorkspace} {
		f, ok := s.files[scope]
		if !ok {
			continue
		}
		if err := v.MergeConfigMap(f.v.AllSettings()); err != nil {
			return nil, errors.Wrapf(err, "merging %s settings", scope)
		}
	}
	if s.useEnv {
		for _, key := range Keys() {
			if !s.env.IsSet(key) {
				continue
			}
			if IsListKey(key) {
				v.Set(key, filepath.SplitList(s.env.GetString(key)))
			} else {
				v.Set(key, s.env.GetString(key))
			}
		}
	}
	return v, nil
}

func (s *FileStore) file(scope Scope) (*scopeFile, error) {
	f, ok := s.files[scope]
	if !ok {
		return nil, errors.Newf("%s settings scope is not available", scope)
	}
	return f, nil
}

func (f *scopeFile) write() error {
	if err := paths.EnsureDir(filepath.Dir(f.path), 0); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}
	if err := fileutil.AtomicWriteYAML(settingsFs, f.path, f.v.AllSettings(), settingsFilePerm); err != nil {
		return errors.Wrapf(err, "writing settings file %s", f.path)
	}
	return nil
}

// deleteNested removes the value at path from m, pruning emptied maps.
func deleteNested(m map[string]any, path []string) bool {
	if len(path) == 0 {
		return false
	}
	if len(path) == 1 {
		if _, ok := m[path[0]]; !ok {
			return false
		}
		delete(m, path[0])
		return true
	}

	child, ok := m[path[0]].(map[string]any)
	if !ok {
		return false
	}
	removed := deleteNested(child, path[1:])
	if removed && len(child) == 0 {
		delete(m, path[0])
	}
	return removed
}
