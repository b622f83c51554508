package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h)

	now := time.Now()
	logger.Info("library found", "root", "D:/SteamLibrary")

	output := buf.String()
	for _, want := range []string{"INFO", "library found", "root=D:/SteamLibrary", now.Format(time.Kitchen)} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)
	logger := slog.New(h).With("component", "scanner").WithGroup("volume")

	logger.Info("listed", "count", 2)

	output := buf.String()
	if !strings.Contains(output, "component=scanner") {
		t.Errorf("expected common attribute in output, got: %q", output)
	}
	if !strings.Contains(output, "volume.count=2") {
		t.Errorf("expected grouped attribute in output, got: %q", output)
	}
}

func TestHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with level, got: %q", buf.String())
	}
}

func TestHandler_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})
	slog.New(h).Log(t.Context(), LevelTrace, "checking candidate")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE label, got: %q", buf.String())
	}
}

func TestHandler_ShortensHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	var buf bytes.Buffer
	h := NewHandler(&buf, nil)
	logger := slog.New(h)

	logger.Info("settings", "path", filepath.Join(home, ".config", "xcomkit"))
	logger.Info("sibling", "path", home+"-other")

	output := buf.String()
	if !strings.Contains(output, "path=~"+string(filepath.Separator)+".config") {
		t.Errorf("expected home to be shortened, got: %q", output)
	}
	if !strings.Contains(output, "path="+home+"-other") {
		t.Errorf("sibling directory must not be shortened, got: %q", output)
	}
}

func TestColorHandler_Modes(t *testing.T) {
	var colored, plain bytes.Buffer
	slog.New(NewColorHandler(&colored, nil, ColorAlways)).Warn("scan failed")
	slog.New(NewColorHandler(&plain, nil, ColorNever)).Warn("scan failed")

	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("expected ANSI codes with ColorAlways, got %q", colored.String())
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("expected no ANSI codes with ColorNever, got %q", plain.String())
	}
}
