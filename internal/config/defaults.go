package config

import (
	"github.com/hayloft-mods/hayloft/internal/constants"
)

// DefaultConfig returns the stock configuration: one patch on the shop
// purchase callable that rewrites its first integer argument to 1.
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		Logging: LoggingConfig{
			Level:  constants.DefaultLogLevel,
			Pretty: true,
		},
		Mod: ModConfig{
			Name:         constants.ModName,
			DebugLogging: false,
		},
		Patches: []PatchConfig{
			{
				Target:     constants.DefaultPatchTarget,
				Visibility: []string{"public", "instance"},
				Rules: []RuleConfig{
					{
						Match: MatchConfig{Kind: constants.DefaultRewriteKind},
						Set: &SetConfig{
							Kind:  constants.DefaultRewriteKind,
							Value: constants.DefaultRewriteValue,
						},
					},
				},
			},
		},
	}
}
