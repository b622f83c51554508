//go:build !unix && !windows

package editor

import "syscall"

func detachedAttr() *syscall.SysProcAttr {
	return nil
}
