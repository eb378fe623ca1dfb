package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// MergeFromEnv overlays environment variables onto cfg. Fields opt in
// with an `env` struct tag naming the variable; unset or empty variables
// leave the field alone so the file and default layers show through.
// Bad values are collected and reported together, the same way Validate
// reports every config error at once.
func MergeFromEnv(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var errs []error
	mergeEnvStruct(v, &errs)
	return errors.Join(errs...)
}

func mergeEnvStruct(v reflect.Value, errs *[]error) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			mergeEnvStruct(field, errs)
			continue
		}

		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := applyEnvValue(field, name, raw); err != nil {
			*errs = append(*errs, err)
		}
	}
}

// applyEnvValue parses raw according to the field's kind. Only the kinds
// the schema uses are supported; a new field type needs a branch here
// before it can carry an env tag.
func applyEnvValue(field reflect.Value, name, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid bool %q", name, raw)
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("%s: invalid int %q", name, raw)
		}
		field.SetInt(n)

	default:
		return fmt.Errorf("%s: env tag on unsupported %s field", name, field.Kind())
	}

	return nil
}
