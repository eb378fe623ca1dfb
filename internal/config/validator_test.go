package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayloft-mods/hayloft/pkg/intercept"
)

func intPtr(i int) *int { return &i }

func TestConfig_Validate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("empty patch list is valid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Patches = nil
		assert.NoError(t, cfg.Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing version",
			mutate:  func(c *Config) { c.Version = "" },
			wantErr: "version",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "malformed target",
			mutate:  func(c *Config) { c.Patches[0].Target = "TryPurchase" },
			wantErr: "patches[0].target",
		},
		{
			name:    "trailing dot target",
			mutate:  func(c *Config) { c.Patches[0].Target = "ShopMenu." },
			wantErr: "patches[0].target",
		},
		{
			name:    "unknown visibility token",
			mutate:  func(c *Config) { c.Patches[0].Visibility = []string{"protected"} },
			wantErr: "patches[0].visibility",
		},
		{
			name:    "patch without rules",
			mutate:  func(c *Config) { c.Patches[0].Rules = nil },
			wantErr: "patches[0].rules",
		},
		{
			name: "rule without matcher",
			mutate: func(c *Config) {
				c.Patches[0].Rules[0].Match = MatchConfig{}
			},
			wantErr: "match",
		},
		{
			name: "unknown match kind",
			mutate: func(c *Config) {
				c.Patches[0].Rules[0].Match.Kind = "decimal"
			},
			wantErr: "match.kind",
		},
		{
			name: "negative match position",
			mutate: func(c *Config) {
				c.Patches[0].Rules[0].Match = MatchConfig{Position: intPtr(-1)}
			},
			wantErr: "match.position",
		},
		{
			name: "rule without action",
			mutate: func(c *Config) {
				c.Patches[0].Rules[0].Set = nil
			},
			wantErr: "action",
		},
		{
			name: "set and suppress together",
			mutate: func(c *Config) {
				c.Patches[0].Rules[0].Suppress = true
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "unparseable set value",
			mutate: func(c *Config) {
				c.Patches[0].Rules[0].Set = &SetConfig{Kind: "int", Value: "one"}
			},
			wantErr: "set",
		},
		{
			name: "opaque set value",
			mutate: func(c *Config) {
				c.Patches[0].Rules[0].Set = &SetConfig{Kind: "opaque", Value: "x"}
			},
			wantErr: "opaque",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = ""
	cfg.Logging.Level = "verbose"
	cfg.Patches[0].Target = "broken"

	err := cfg.Validate()
	require.Error(t, err)

	multi, ok := err.(*MultiValidationError)
	require.True(t, ok, "expected MultiValidationError, got %T", err)
	assert.Len(t, multi.Errors, 3)
}

func TestConfig_EffectiveLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.EffectiveLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.EffectiveLogLevel())

	cfg.Mod.DebugLogging = true
	assert.Equal(t, "trace", cfg.EffectiveLogLevel(), "debug_logging wins over the configured level")

	cfg = &Config{}
	assert.Equal(t, "info", cfg.EffectiveLogLevel())
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantType   string
		wantMethod string
		wantErr    bool
	}{
		{name: "simple", target: "ShopMenu.TryPurchase", wantType: "ShopMenu", wantMethod: "TryPurchase"},
		{name: "dotted type", target: "Shop.Menu.TryPurchase", wantType: "Shop.Menu", wantMethod: "TryPurchase"},
		{name: "no dot", target: "TryPurchase", wantErr: true},
		{name: "leading dot", target: ".TryPurchase", wantErr: true},
		{name: "trailing dot", target: "ShopMenu.", wantErr: true},
		{name: "empty", target: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typeName, methodName, err := ParseTarget(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, typeName)
			assert.Equal(t, tt.wantMethod, methodName)
		})
	}
}

func TestParseSetValue(t *testing.T) {
	tests := []struct {
		name    string
		set     SetConfig
		want    intercept.Value
		wantErr bool
	}{
		{name: "int", set: SetConfig{Kind: "int", Value: "1"}, want: intercept.Int(1)},
		{name: "negative int", set: SetConfig{Kind: "int", Value: "-3"}, want: intercept.Int(-3)},
		{name: "bool", set: SetConfig{Kind: "bool", Value: "true"}, want: intercept.Bool(true)},
		{name: "float", set: SetConfig{Kind: "float", Value: "0.5"}, want: intercept.Float(0.5)},
		{name: "string", set: SetConfig{Kind: "string", Value: "free"}, want: intercept.Str("free")},
		{name: "bad int", set: SetConfig{Kind: "int", Value: "one"}, wantErr: true},
		{name: "bad bool", set: SetConfig{Kind: "bool", Value: "yep"}, wantErr: true},
		{name: "bad kind", set: SetConfig{Kind: "decimal", Value: "1"}, wantErr: true},
		{name: "opaque rejected", set: SetConfig{Kind: "opaque", Value: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSetValue(&tt.set)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMatch(t *testing.T) {
	countParam := intercept.Param{Name: "count", Kind: intercept.KindInt, Position: 0}
	itemParam := intercept.Param{Name: "itemID", Kind: intercept.KindString, Position: 1}

	t.Run("kind only", func(t *testing.T) {
		pred, err := ParseMatch(MatchConfig{Kind: "int"})
		require.NoError(t, err)
		assert.True(t, pred(countParam))
		assert.False(t, pred(itemParam))
	})

	t.Run("criteria combine with AND", func(t *testing.T) {
		pred, err := ParseMatch(MatchConfig{Kind: "int", Name: "count", Position: intPtr(0)})
		require.NoError(t, err)
		assert.True(t, pred(countParam))

		pred, err = ParseMatch(MatchConfig{Kind: "int", Position: intPtr(1)})
		require.NoError(t, err)
		assert.False(t, pred(countParam))
	})

	t.Run("empty match rejected", func(t *testing.T) {
		_, err := ParseMatch(MatchConfig{})
		assert.Error(t, err)
	})

	t.Run("negative position rejected", func(t *testing.T) {
		_, err := ParseMatch(MatchConfig{Position: intPtr(-2)})
		assert.Error(t, err)
	})
}

func TestPatchConfig_IntoRules(t *testing.T) {
	t.Run("translates set rule", func(t *testing.T) {
		patch := DefaultConfig().Patches[0]
		rules, err := patch.IntoRules()
		require.NoError(t, err)
		require.Len(t, rules, 1)

		p := intercept.Param{Name: "count", Kind: intercept.KindInt, Position: 0}
		assert.True(t, rules[0].Match(p))
		assert.False(t, rules[0].Suppress)

		v, err := rules[0].Replace(p, intercept.Int(64))
		require.NoError(t, err)
		assert.Equal(t, int64(1), v.Int())
	})

	t.Run("translates suppress rule", func(t *testing.T) {
		patch := PatchConfig{
			Target: "ShopMenu.TryPurchase",
			Rules: []RuleConfig{
				{Match: MatchConfig{Name: "count"}, Suppress: true},
			},
		}
		rules, err := patch.IntoRules()
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.True(t, rules[0].Suppress)
		assert.Nil(t, rules[0].Replace)
	})

	t.Run("propagates rule errors with index", func(t *testing.T) {
		patch := PatchConfig{
			Target: "ShopMenu.TryPurchase",
			Rules: []RuleConfig{
				{Match: MatchConfig{Kind: "int"}, Set: &SetConfig{Kind: "int", Value: "1"}},
				{Match: MatchConfig{}, Suppress: true},
			},
		}
		_, err := patch.IntoRules()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rules[1]")
	})
}
