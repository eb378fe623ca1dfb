// Package constants defines shared configuration constants.
package constants

var (
	ConfigFile = "config.yaml"

	DefaultDir = ".hayloft"

	// EnvConfigDir overrides the base directory for configuration files.
	EnvConfigDir = "HAYLOFT_CONFIG"

	// ModName is the name the mod announces itself under when no
	// configuration overrides it.
	ModName = "hayloft"

	// ConfigVersion is the schema version written by this build.
	ConfigVersion = "1"
)
