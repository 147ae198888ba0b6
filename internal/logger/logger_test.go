package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	l := NewLoggerWithWriter("warn", &buf)
	l.Info("hidden message")
	l.Warn("visible message", "count", 2)

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("Expected info record to be filtered, got %q", out)
	}

	if !strings.Contains(out, "visible message") || !strings.Contains(out, "count=2") {
		t.Errorf("Expected warn record with attributes, got %q", out)
	}
}

func TestLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer

	l := NewLoggerWithWriter("error", &buf)
	child := l.With("url", "https://example.com")

	l.SetLevel("debug")
	child.Debug("child debug")

	if !strings.Contains(buf.String(), "url=https://example.com") {
		t.Errorf("Expected child attributes and shared level, got %q", buf.String())
	}
}
