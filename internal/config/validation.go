package config

import (
	"fmt"
	"strconv"

	"github.com/hayloft-mods/hayloft/pkg/intercept"
)

// ParseSetValue parses a replacement value from its configuration form. The
// textual Value is interpreted according to Kind. Opaque values carry host
// payloads and cannot be written in configuration.
func ParseSetValue(set *SetConfig) (intercept.Value, error) {
	kind, err := intercept.ParseKind(set.Kind)
	if err != nil {
		return intercept.Value{}, err
	}

	switch kind {
	case intercept.KindBool:
		b, err := strconv.ParseBool(set.Value)
		if err != nil {
			return intercept.Value{}, fmt.Errorf("invalid bool value %q: %w", set.Value, err)
		}
		return intercept.Bool(b), nil

	case intercept.KindInt:
		i, err := strconv.ParseInt(set.Value, 10, 64)
		if err != nil {
			return intercept.Value{}, fmt.Errorf("invalid int value %q: %w", set.Value, err)
		}
		return intercept.Int(i), nil

	case intercept.KindFloat:
		f, err := strconv.ParseFloat(set.Value, 64)
		if err != nil {
			return intercept.Value{}, fmt.Errorf("invalid float value %q: %w", set.Value, err)
		}
		return intercept.Float(f), nil

	case intercept.KindString:
		return intercept.Str(set.Value), nil

	default:
		return intercept.Value{}, fmt.Errorf("kind %q cannot be expressed as a configuration value", set.Kind)
	}
}

// ParseMatch builds the parameter predicate a match block describes.
// Criteria combine with AND.
func ParseMatch(match MatchConfig) (intercept.Predicate, error) {
	var preds []intercept.Predicate

	if match.Kind != "" {
		kind, err := intercept.ParseKind(match.Kind)
		if err != nil {
			return nil, err
		}
		preds = append(preds, intercept.ByKind(kind))
	}
	if match.Name != "" {
		preds = append(preds, intercept.ByName(match.Name))
	}
	if match.Position != nil {
		if *match.Position < 0 {
			return nil, fmt.Errorf("position %d must not be negative", *match.Position)
		}
		preds = append(preds, intercept.ByPosition(*match.Position))
	}

	if len(preds) == 0 {
		return nil, fmt.Errorf("match needs at least one of kind, name, position")
	}
	if len(preds) == 1 {
		return preds[0], nil
	}
	return func(p intercept.Param) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}, nil
}

// IntoRules translates a patch's rule blocks into interception rules.
func (p *PatchConfig) IntoRules() ([]intercept.Rule, error) {
	rules := make([]intercept.Rule, 0, len(p.Rules))
	for i, rc := range p.Rules {
		match, err := ParseMatch(rc.Match)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}

		rule := intercept.Rule{Match: match, Suppress: rc.Suppress}
		if rc.Set != nil {
			v, err := ParseSetValue(rc.Set)
			if err != nil {
				return nil, fmt.Errorf("rules[%d]: %w", i, err)
			}
			rule.Replace = intercept.Constant(v)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
