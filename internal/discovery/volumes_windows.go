//go:build windows

package discovery

import (
	"context"

	"golang.org/x/sys/windows"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// listNativeVolumes reads the logical drive bitmask from the Windows API.
func listNativeVolumes(_ context.Context) ([]string, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, &DiscoveryError{Op: "list volumes", Err: errors.Wrap(err, "GetLogicalDrives")}
	}
	return drivesFromMask(mask), nil
}
