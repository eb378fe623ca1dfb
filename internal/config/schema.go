package config

import (
	"fmt"
	"strings"

	"github.com/hayloft-mods/hayloft/internal/constants"
)

// SchemaVersion is the configuration schema version.
const SchemaVersion = "1"

// Config represents the ~/.hayloft/config.yaml config file. It describes
// which callables the mod patches and how their arguments are rewritten.
type Config struct {
	Version string        `yaml:"version"`
	Logging LoggingConfig `yaml:"logging"`
	Mod     ModConfig     `yaml:"mod"`
	Patches []PatchConfig `yaml:"patches"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"HAYLOFT_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"HAYLOFT_LOG_PRETTY"`
}

// ModConfig contains mod identity and behavior settings.
type ModConfig struct {
	Name string `yaml:"name" env:"HAYLOFT_MOD_NAME"`
	// DebugLogging forces the mod's own component to trace level so every
	// rewrite is visible, whatever the global level says.
	DebugLogging bool `yaml:"debug_logging" env:"HAYLOFT_DEBUG_LOGGING"`
}

// PatchConfig describes one patched callable and its rewrite rules.
type PatchConfig struct {
	// Target names the callable as "TypeName.MethodName".
	Target string `yaml:"target"`
	// Visibility holds lookup mask tokens (public, private, instance,
	// static). Empty means public instance methods.
	Visibility []string     `yaml:"visibility,omitempty"`
	Rules      []RuleConfig `yaml:"rules"`
}

// RuleConfig pairs a parameter matcher with an action: either rewrite the
// matched argument (set) or cancel the call (suppress). Exactly one of the
// two must be given.
type RuleConfig struct {
	Match    MatchConfig `yaml:"match"`
	Set      *SetConfig  `yaml:"set,omitempty"`
	Suppress bool        `yaml:"suppress,omitempty"`
}

// MatchConfig selects a parameter. Criteria combine with AND; at least one
// must be set. The first parameter (in declaration order) that satisfies
// any rule is the one acted on.
type MatchConfig struct {
	// Kind matches the parameter kind: bool, int, float, string, opaque.
	Kind string `yaml:"kind,omitempty"`
	// Name matches the declared parameter name.
	Name string `yaml:"name,omitempty"`
	// Position matches the zero-based parameter position.
	Position *int `yaml:"position,omitempty"`
}

// SetConfig is the replacement value for a matched argument. Value is the
// textual form and is parsed according to Kind.
type SetConfig struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

// ParseTarget splits a "TypeName.MethodName" target into its parts. Only
// the last dot separates the method, so dotted type names stay intact.
func ParseTarget(target string) (typeName, methodName string, err error) {
	i := strings.LastIndex(target, ".")
	if i <= 0 || i == len(target)-1 {
		return "", "", fmt.Errorf("target %q must be TypeName.MethodName", target)
	}
	return target[:i], target[i+1:], nil
}

// EffectiveLogLevel returns the log level the mod should run at, honoring
// the debug_logging escape hatch.
func (c *Config) EffectiveLogLevel() string {
	if c.Mod.DebugLogging {
		return "trace"
	}
	if c.Logging.Level == "" {
		return constants.DefaultLogLevel
	}
	return c.Logging.Level
}
