package discovery

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// Volume source names accepted by NewVolumeLister.
const (
	SourceWMIC   = "wmic"
	SourceNative = "native"

	// SourceNone disables drive scanning; only the default root and extra
	// libraries are searched.
	SourceNone = "none"
)

// VolumeSources returns the accepted volume source names.
func VolumeSources() []string {
	return []string{SourceWMIC, SourceNative, SourceNone}
}

// VolumeLister lists the root directories of mounted volumes, e.g. `C:\`.
type VolumeLister interface {
	ListVolumes(ctx context.Context) ([]string, error)
}

// VolumeListerFunc adapts a function to VolumeLister.
type VolumeListerFunc func(ctx context.Context) ([]string, error)

// ListVolumes calls f.
func (f VolumeListerFunc) ListVolumes(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// NewVolumeLister returns the lister for a configured source name.
func NewVolumeLister(source string) (VolumeLister, error) {
	switch source {
	case SourceWMIC, "":
		return NewWMIC(), nil
	case SourceNative:
		return VolumeListerFunc(listNativeVolumes), nil
	case SourceNone:
		return VolumeListerFunc(func(context.Context) ([]string, error) { return nil, nil }), nil
	default:
		return nil, errors.Wrapf(ErrUnknownVolumeSource, "%q (valid: %s)", source, strings.Join(VolumeSources(), ", "))
	}
}

// CommandRunner runs a command and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// WMIC lists drives with `wmic logicaldisk get name`.
type WMIC struct {
	run CommandRunner
}

// NewWMIC returns a WMIC lister that executes the real command.
func NewWMIC() *WMIC {
	return &WMIC{run: execRunner}
}

// NewWMICWithRunner returns a WMIC lister backed by run, for tests.
func NewWMICWithRunner(run CommandRunner) *WMIC {
	return &WMIC{run: run}
}

// ListVolumes runs wmic and parses its drive table.
func (w *WMIC) ListVolumes(ctx context.Context) ([]string, error) {
	out, err := w.run(ctx, "wmic", "logicaldisk", "get", "name")
	if err != nil {
		return nil, &DiscoveryError{Op: "list volumes", Err: errors.Wrap(err, "running wmic")}
	}

	drives, err := ParseWMICOutput(string(out))
	if err != nil {
		return nil, &DiscoveryError{Op: "list volumes", Err: err}
	}

	return drives, nil
}

var driveLinePattern = regexp.MustCompile(`^([A-Za-z]):`)

// ParseWMICOutput parses the output of `wmic logicaldisk get name` into
// volume roots such as `C:\`. wmic terminates lines with "\r\r\n"; any
// mix of CR and LF is accepted. Lines after the header that do not start
// with a drive letter are skipped. Output whose first non-blank line is not
// the "Name" header is rejected with ErrUnexpectedOutput.
func ParseWMICOutput(out string) ([]string, error) {
	lines := strings.FieldsFunc(out, func(r rune) bool {
		return r == '\r' || r == '\n'
	})

	headerSeen := false
	drives := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !headerSeen {
			if !strings.EqualFold(line, "Name") {
				return nil, errors.Wrapf(ErrUnexpectedOutput, "first line %q", line)
			}
			headerSeen = true
			continue
		}

		m := driveLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		drives = append(drives, strings.ToUpper(m[1])+`:\`)
	}

	if !headerSeen {
		return nil, errors.Wrap(ErrUnexpectedOutput, "empty output")
	}

	return drives, nil
}
