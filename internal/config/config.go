// Package config loads the application configuration: logging options and
// the set of scripted tools to register, with live reload on file change.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ToolConfig describes one scripted tool to load at start-up.
type ToolConfig struct {
	// Name is the tool's registration name.
	Name string `toml:"name"`

	// Script is the path to the Lua chunk defining the tool's handlers.
	Script string `toml:"script"`

	// Invoke activates the tool immediately after registration.
	Invoke bool `toml:"invoke"`
}

// Config is the application configuration.
type Config struct {
	// LogLevel is the minimum level written to the log (debug, info,
	// warn, error).
	LogLevel string `toml:"log_level"`

	// LogFile is where logs are written; empty means stderr.
	LogFile string `toml:"log_file"`

	// Tools are the scripted tools registered at start-up.
	Tools []ToolConfig `toml:"tool"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads the configuration from path. A missing file is not an error;
// defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML configuration data.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	seen := make(map[string]bool, len(c.Tools))
	for i, t := range c.Tools {
		if t.Name == "" {
			return fmt.Errorf("config: tool %d: name is required", i)
		}
		if t.Script == "" {
			return fmt.Errorf("config: tool %q: script is required", t.Name)
		}
		if seen[t.Name] {
			return fmt.Errorf("config: duplicate tool name %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
