// Package config loads optional project-level settings for the compiler
// from a TOML file, falling back to sensible defaults when none is found.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents compass's project configuration.
type Config struct {
	// Diagnostics settings
	Diagnostics struct {
		ColorOutput bool `toml:"color_output"`
		ShowHelp    bool `toml:"show_help"`
	} `toml:"diagnostics"`

	// Codegen settings
	Codegen struct {
		RegisterPrefix string `toml:"register_prefix"`
		EntrypointName string `toml:"entrypoint_name"`
	} `toml:"codegen"`

	// Logging settings
	Logging struct {
		Level string `toml:"level"` // panic, fatal, error, warn, info, debug, trace
	} `toml:"logging"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Diagnostics.ColorOutput = true
	cfg.Diagnostics.ShowHelp = true

	cfg.Codegen.RegisterPrefix = "$t"
	cfg.Codegen.EntrypointName = "main"

	cfg.Logging.Level = "warn"

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "compass")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".compass.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "compass")

	default:
		return ".compass.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return ".compass.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, or from a
// ".compass.toml" in the current directory if path is empty.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ".compass.toml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
