// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hayloft-mods/hayloft/internal/constants"
	"github.com/hayloft-mods/hayloft/internal/safe"
)

// Loader handles loading and saving configuration files.
type Loader struct {
	homeDir string
}

// NewLoader creates a new config loader.
// The base directory is resolved in this order:
//  1. HAYLOFT_CONFIG environment variable.
//  2. User home directory (~/).
//  3. /tmp/hayloft-fallback (environments without a home dir).
//
// The loader never returns an error. When no config file exists, Load
// returns defaults with env var overrides applied, so the mod works out of
// the box.
func NewLoader() (*Loader, error) {
	if baseDir := os.Getenv(constants.EnvConfigDir); baseDir != "" {
		return &Loader{
			homeDir: baseDir,
		}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		return &Loader{
			homeDir: homeDir,
		}, nil
	}

	// Fallback for environments without a home directory.
	return &Loader{
		homeDir: "/tmp/hayloft-fallback",
	}, nil
}

// ConfigPath returns the path to the config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.homeDir, constants.DefaultDir, constants.ConfigFile)
}

// Load loads the configuration.
// Returns the default config if the file doesn't exist.
// Applies environment variable overrides for layered configuration, then
// validates the result.
func (l *Loader) Load() (*Config, error) {
	path := l.ConfigPath()

	var config *Config
	// Load from file or use default
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config = DefaultConfig()
	} else {
		loaded, err := loadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	// Apply environment variable overrides (layered configuration).
	if err := MergeFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config at %s: %w", path, err)
	}

	return config, nil
}

// LoadFile loads configuration from an explicit path, for the --config
// flag. Env overrides and validation apply the same as Load.
func (l *Loader) LoadFile(path string) (*Config, error) {
	config, err := loadFromFile(path)
	if err != nil {
		return nil, err
	}

	if err := MergeFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config at %s: %w", path, err)
	}

	return config, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := safe.ReadFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// Save saves the configuration.
func (l *Loader) Save(config *Config) error {
	path := l.ConfigPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	//nolint:gosec // G301: Directory needs standard permissions for traversal
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Patch config carries no secrets, use 0644
	//nolint:gosec // G306: Config file is not sensitive
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
