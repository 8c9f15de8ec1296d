package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/toolframe/internal/log"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(log.Config{Level: log.LevelWarn, Output: &buf})

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("expected debug/info suppressed at warn level, got %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected warn/error present, got %q", out)
	}
}

func TestFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(log.Config{Level: log.LevelDebug, Output: &buf, Prefix: "test"})

	l.Info("value is %d", 42)

	out := buf.String()
	if !strings.Contains(out, "[INFO] test: value is 42") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic with no output configured.
	log.Nop.Error("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.LevelDebug},
		{"INFO", log.LevelInfo},
		{"warning", log.LevelWarn},
		{"error", log.LevelError},
		{"bogus", log.LevelInfo},
	}
	for _, tt := range tests {
		if got := log.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
