// Package helpers provides shared flag plumbing for hayloft commands.
package helpers

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/hayloft-mods/hayloft/internal/config"
)

// ConfigFlags holds the flag values for locating the configuration.
type ConfigFlags struct {
	Path string
}

// AddFlags adds config location flags to a FlagSet.
func (f *ConfigFlags) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.Path, "config", "", "Path to a config file (defaults to the standard location)")
}

// Load returns the effective configuration.
// Priority:
// 1. --config (explicit file, must exist)
// 2. The standard location, falling back to defaults when no file exists
func (f *ConfigFlags) Load() (*config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}

	if f.Path != "" {
		return loader.LoadFile(f.Path)
	}
	return loader.Load()
}
