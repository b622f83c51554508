package editor

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTextEditor(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		visual string
		want   string
	}{
		{"editor wins", "nvim", "code", "nvim"},
		{"visual fallback", "", "code", "code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)
			assert.Equal(t, tt.want, detectTextEditor())
		})
	}
}

func TestDetectTextEditor_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	assert.Equal(t, want, detectTextEditor())
}

func TestOpenText(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping on windows (uses shell script mock)")
	}

	dir := t.TempDir()
	mock := filepath.Join(dir, "mock-editor.sh")
	output := filepath.Join(dir, "output.txt")
	script := "#!/bin/sh\necho \"$@\" > " + output + "\n"
	require.NoError(t, os.WriteFile(mock, []byte(script), 0o755)) //nolint:gosec // test executable
	t.Setenv("EDITOR", mock)

	target := filepath.Join(dir, "settings.yaml")
	require.NoError(t, OpenText(target, io.Discard))

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(got), target))
}

func TestOpenText_Failure(t *testing.T) {
	t.Setenv("EDITOR", filepath.Join(t.TempDir(), "missing-editor"))
	assert.Error(t, OpenText("settings.yaml", io.Discard))
}
