package discovery

import (
	"github.com/thoreinstein/xcomkit/internal/errors"
)

var (
	// ErrUnexpectedOutput indicates the drive listing command produced
	// output that does not look like a drive table.
	ErrUnexpectedOutput = errors.New("unexpected drive listing output")

	// ErrUnsupportedPlatform indicates the volume source cannot run here.
	ErrUnsupportedPlatform = errors.New("volume source not supported on this platform")

	// ErrUnknownVolumeSource indicates a volume source name outside the known set.
	ErrUnknownVolumeSource = errors.New("unknown volume source")
)

// DiscoveryError reports that a discovery pass could not run at all, as
// opposed to running and finding nothing.
type DiscoveryError struct {
	Op  string
	Err error
}

func (e *DiscoveryError) Error() string {
	return "discovery: " + e.Op + ": " + e.Err.Error()
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
