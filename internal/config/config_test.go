package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/toolframe/internal/config"
)

func TestParse(t *testing.T) {
	const data = `
log_level = "debug"
log_file = "/tmp/toolframe.log"

[[tool]]
name = "move"
script = "tools/move.lua"
invoke = true

[[tool]]
name = "select"
script = "tools/select.lua"
`
	cfg, err := config.Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.LogFile != "/tmp/toolframe.log" {
		t.Errorf("unexpected log file %q", cfg.LogFile)
	}
	if len(cfg.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(cfg.Tools))
	}
	if cfg.Tools[0].Name != "move" || !cfg.Tools[0].Invoke {
		t.Errorf("unexpected first tool %+v", cfg.Tools[0])
	}
	if cfg.Tools[1].Invoke {
		t.Error("expected invoke to default to false")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing name", data: "[[tool]]\nscript = \"a.lua\"\n"},
		{name: "missing script", data: "[[tool]]\nname = \"move\"\n"},
		{
			name: "duplicate name",
			data: "[[tool]]\nname = \"move\"\nscript = \"a.lua\"\n[[tool]]\nname = \"move\"\nscript = \"b.lua\"\n",
		},
		{name: "invalid toml", data: "log_level = "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Parse([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFileDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level, got %q", cfg.LogLevel)
	}
	if len(cfg.Tools) != 0 {
		t.Errorf("expected no tools, got %d", len(cfg.Tools))
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolframe.toml")
	if err := os.WriteFile(path, []byte("log_level = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected warn, got %q", cfg.LogLevel)
	}
}
