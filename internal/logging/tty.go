package logging

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// ColorMode controls when terminal output carries ANSI colors.
type ColorMode string

const (
	// ColorAuto colors terminals unless the environment opts out.
	ColorAuto ColorMode = "auto"
	// ColorAlways colors every writer.
	ColorAlways ColorMode = "always"
	// ColorNever disables color.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a --color value. The empty string means ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return m, nil
	default:
		return "", errors.Newf("invalid color mode %q", s)
	}
}

// IsTTY reports whether w is a terminal. Only writers exposing Fd() can be.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// ColorEnabled reports whether output written to w should be colored under mode.
func ColorEnabled(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return autoColor(IsTTY(w), os.LookupEnv)
}

// SupportsColor is ColorEnabled with ColorAuto.
func SupportsColor(w io.Writer) bool {
	return ColorEnabled(w, ColorAuto)
}

// autoColor applies the NO_COLOR, CLICOLOR_FORCE and TERM conventions.
func autoColor(isTTY bool, lookup func(string) (string, bool)) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if v, ok := lookup("CLICOLOR_FORCE"); ok && v != "" && v != "0" {
		return true
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return false
	}
	return isTTY
}
