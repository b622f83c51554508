package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// OpenText opens path in the user's text editor and waits for it to exit.
// Uses $EDITOR, then $VISUAL, then nano, then vi.
func OpenText(path string, stdout io.Writer) error {
	editorCmd := detectTextEditor()

	fmt.Fprintf(stdout, "Location: %s\n", path)

	cmd := exec.Command(editorCmd, path) //nolint:gosec // user-chosen editor
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running text editor")
	}
	return nil
}

func detectTextEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
