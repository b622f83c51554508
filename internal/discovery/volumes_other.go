//go:build !windows

package discovery

import (
	"context"
	"runtime"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

func listNativeVolumes(_ context.Context) ([]string, error) {
	return nil, &DiscoveryError{
		Op:  "list volumes",
		Err: errors.Wrapf(ErrUnsupportedPlatform, "native drive enumeration on %s", runtime.GOOS),
	}
}
