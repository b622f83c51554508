// Package logging provides structured logging for the xcomkit CLI using slog.
//
// The package supports text and JSON output, verbosity-derived levels
// (including [LevelTrace] for per-candidate discovery output), a context
// carrier for the command logger, and helpers for testing.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Info("scanning libraries", "candidates", 3)
//
// # Testing
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
