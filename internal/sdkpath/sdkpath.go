package sdkpath

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/discovery"
	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/logging"
	"github.com/thoreinstein/xcomkit/internal/notify"
)

// Install folder endings. GameEnding uses the platform path separator.
var (
	GameEnding = filepath.Join("XCOM 2", "XCom2-WarOfTheChosen")
	SDKEnding  = "XCOM 2 War of the Chosen SDK"
)

// ActionDetect is offered on an incorrect-path warning.
const ActionDetect = "Detect automatically"

// Notice messages.
const (
	msgValid           = "both SDK and game paths are configured correctly"
	msgAlreadyValid    = "both SDK and game paths are already configured correctly"
	msgDetectFailed    = "failed to automatically detect paths - please set them manually"
	msgGameFound       = "game path found (%s)"
	msgSDKFound        = "SDK path found (%s)"
	msgSaveFailed      = "found %s path (%s) but could not save it"
	msgSaveShadowed    = "%s path found (%s) and saved globally but overridden by %s settings"
	msgIncorrectSingle = "%s path is incorrect"
	msgIncorrectBoth   = "game and SDK paths are incorrect"
)

// Checks is the result of validating both configured paths.
type Checks struct {
	GamePathCorrect bool
	SDKPathCorrect  bool
}

// OK reports whether both paths are correct.
func (c Checks) OK() bool {
	return c.GamePathCorrect && c.SDKPathCorrect
}

// LibraryFinder lists Steam library content directories.
type LibraryFinder interface {
	FindLibraryRoots(ctx context.Context) ([]string, error)
}

// sourceReporter is implemented by stores that can name the layer supplying
// a key's effective value.
type sourceReporter interface {
	Source(key string) string
}

// Service checks and detects the configured install paths.
type Service struct {
	store  config.Store
	fs     afero.Fs
	finder LibraryFinder
	logger *slog.Logger
}

// New returns a Service. finder may be nil when detection is never used.
func New(store config.Store, fsys afero.Fs, finder LibraryFinder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Service{
		store:  store,
		fs:     fsys,
		finder: finder,
		logger: logger,
	}
}

// GamePath returns the configured game path.
func (s *Service) GamePath() string {
	return s.store.Get(config.GameRootKey)
}

// SDKPath returns the configured SDK path.
func (s *Service) SDKPath() string {
	return s.store.Get(config.SDKRootKey)
}

// CheckConfiguredPaths validates both configured paths against the filesystem.
func (s *Service) CheckConfiguredPaths() Checks {
	return Checks{
		GamePathCorrect: discovery.IsValidInstallFolder(s.fs, s.GamePath(), GameEnding),
		SDKPathCorrect:  discovery.IsValidInstallFolder(s.fs, s.SDKPath(), SDKEnding),
	}
}

// ValidSDKPath returns the configured SDK path when it is a valid install folder.
func (s *Service) ValidSDKPath() (string, bool) {
	sdk := s.SDKPath()
	return sdk, discovery.IsValidInstallFolder(s.fs, sdk, SDKEnding)
}

// ValidatePaths reports whether the configured paths are correct. It never
// writes settings.
func (s *Service) ValidatePaths() notify.Notice {
	checks := s.CheckConfiguredPaths()
	s.logger.Debug("validated configured paths",
		"game_ok", checks.GamePathCorrect,
		"sdk_ok", checks.SDKPathCorrect)

	switch {
	case checks.OK():
		return notify.Infof(msgValid)
	case !checks.GamePathCorrect && !checks.SDKPathCorrect:
		return notify.Warnf(msgIncorrectBoth).WithActions(ActionDetect)
	case !checks.GamePathCorrect:
		return notify.Warnf(msgIncorrectSingle, "game").WithActions(ActionDetect)
	default:
		return notify.Warnf(msgIncorrectSingle, "SDK").WithActions(ActionDetect)
	}
}

// GuessPaths searches the Steam libraries for whichever paths are incorrect
// and saves the ones it finds to the global settings scope. Paths that are
// already correct are left untouched. Discovery failures are reported as a
// notice, never returned.
func (s *Service) GuessPaths(ctx context.Context) []notify.Notice {
	checks := s.CheckConfiguredPaths()
	if checks.OK() {
		return []notify.Notice{notify.Infof(msgAlreadyValid)}
	}

	needGame := !checks.GamePathCorrect
	needSDK := !checks.SDKPathCorrect

	var notices []notify.Notice

	roots, err := s.libraryRoots(ctx)
	if err != nil {
		s.logger.Warn("library scan failed", "error", err)
		roots = nil
	}

	for _, root := range roots {
		if needGame {
			candidate := filepath.Join(root, GameEnding)
			if discovery.IsValidInstallFolder(s.fs, candidate, GameEnding) {
				needGame = false
				notices = append(notices, s.save(config.GameRootKey, "game", msgGameFound, candidate))
			}
		}
		if needSDK {
			candidate := filepath.Join(root, SDKEnding)
			if discovery.IsValidInstallFolder(s.fs, candidate, SDKEnding) {
				needSDK = false
				notices = append(notices, s.save(config.SDKRootKey, "SDK", msgSDKFound, candidate))
			}
		}
		if !needGame && !needSDK {
			break
		}
	}

	if needGame || needSDK {
		notices = append(notices, notify.Warnf(msgDetectFailed))
	}
	return notices
}

func (s *Service) libraryRoots(ctx context.Context) ([]string, error) {
	if s.finder == nil {
		return nil, &discovery.DiscoveryError{Op: "find libraries", Err: errors.New("no library finder configured")}
	}
	return s.finder.FindLibraryRoots(ctx)
}

func (s *Service) save(key, label, foundFormat, path string) notify.Notice {
	if err := s.store.Set(key, path, config.ScopeGlobal); err != nil {
		s.logger.Error("failed to save detected path", "key", key, "path", path, "error", err)
		return notify.Errorf(msgSaveFailed, label, path)
	}
	s.logger.Info("saved detected path", "key", key, "path", path)

	if effective := s.store.Get(key); effective != path {
		source := "other"
		if r, ok := s.store.(sourceReporter); ok {
			if name := r.Source(key); name != "" {
				source = name
			}
		}
		s.logger.Warn("saved path is overridden", "key", key, "source", source, "effective", effective)
		return notify.Warnf(msgSaveShadowed, label, path, source)
	}
	return notify.Infof(foundFormat, path)
}

// Validate renders the validation notice and runs detection when the user
// selects ActionDetect.
func Validate(ctx context.Context, svc *Service, n notify.Notifier) error {
	selected, err := n.Notify(ctx, svc.ValidatePaths())
	if err != nil {
		return errors.Wrap(err, "showing validation result")
	}
	if selected != ActionDetect {
		return nil
	}
	return Guess(ctx, svc, n)
}

// Guess runs detection and renders every resulting notice.
func Guess(ctx context.Context, svc *Service, n notify.Notifier) error {
	for _, notice := range svc.GuessPaths(ctx) {
		if _, err := n.Notify(ctx, notice); err != nil {
			return errors.Wrap(err, "showing detection result")
		}
	}
	return nil
}
