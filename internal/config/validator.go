package config

import (
	"fmt"
	"strings"

	"github.com/hayloft-mods/hayloft/internal/logging"
	"github.com/hayloft-mods/hayloft/pkg/intercept"
)

// Validator is the interface for validating configuration.
type Validator interface {
	Validate() error
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiValidationError represents multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("validation failed with %d errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		builder.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

// Validate validates Config.
func (c *Config) Validate() error {
	var errors []ValidationError

	// Validate version
	if c.Version == "" {
		errors = append(errors, ValidationError{
			Field:   "version",
			Message: "version is required",
		})
	}

	// Validate log level. Empty means "use the default" and is filled in
	// by EffectiveLogLevel, so only non-empty values are checked.
	if c.Logging.Level != "" {
		if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
			errors = append(errors, ValidationError{
				Field:   "logging.level",
				Message: "level must be one of trace, debug, info, warn, error",
			})
		}
	}

	// Validate patches
	for i, patch := range c.Patches {
		prefix := fmt.Sprintf("patches[%d]", i)
		errors = append(errors, patch.validate(prefix)...)
	}

	if len(errors) > 0 {
		return &MultiValidationError{Errors: errors}
	}
	return nil
}

func (p *PatchConfig) validate(prefix string) []ValidationError {
	var errors []ValidationError

	if _, _, err := ParseTarget(p.Target); err != nil {
		errors = append(errors, ValidationError{
			Field:   prefix + ".target",
			Message: err.Error(),
		})
	}

	if _, err := intercept.ParseVisibility(p.Visibility); err != nil {
		errors = append(errors, ValidationError{
			Field:   prefix + ".visibility",
			Message: err.Error(),
		})
	}

	if len(p.Rules) == 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".rules",
			Message: "at least one rule is required",
		})
	}

	for i, rule := range p.Rules {
		errors = append(errors, rule.validate(fmt.Sprintf("%s.rules[%d]", prefix, i))...)
	}

	return errors
}

func (r *RuleConfig) validate(prefix string) []ValidationError {
	var errors []ValidationError

	// Validate matcher
	if r.Match.Kind == "" && r.Match.Name == "" && r.Match.Position == nil {
		errors = append(errors, ValidationError{
			Field:   prefix + ".match",
			Message: "at least one of kind, name, position is required",
		})
	}
	if r.Match.Kind != "" {
		if _, err := intercept.ParseKind(r.Match.Kind); err != nil {
			errors = append(errors, ValidationError{
				Field:   prefix + ".match.kind",
				Message: err.Error(),
			})
		}
	}
	if r.Match.Position != nil && *r.Match.Position < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".match.position",
			Message: "position must not be negative",
		})
	}

	// Validate action: exactly one of set or suppress
	switch {
	case r.Set == nil && !r.Suppress:
		errors = append(errors, ValidationError{
			Field:   prefix,
			Message: "rule needs an action: set or suppress",
		})
	case r.Set != nil && r.Suppress:
		errors = append(errors, ValidationError{
			Field:   prefix,
			Message: "set and suppress are mutually exclusive",
		})
	case r.Set != nil:
		if _, err := ParseSetValue(r.Set); err != nil {
			errors = append(errors, ValidationError{
				Field:   prefix + ".set",
				Message: err.Error(),
			})
		}
	}

	return errors
}
