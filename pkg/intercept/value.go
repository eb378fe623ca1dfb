package intercept

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hayloft-mods/hayloft/internal/safe"
)

// Kind classifies an argument value into the closed set of primitives the
// rewrite layer understands. Anything outside the set is carried as
// KindOpaque: it flows through dispatch untouched and can only be replaced
// by another opaque value of an assignable dynamic type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt // all Go signed and unsigned integer widths
	KindFloat
	KindString
	KindOpaque
)

// String returns the lowercase name used in logs and configuration.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindOpaque:
		return "opaque"
	default:
		return "invalid"
	}
}

// ParseKind converts a configuration token ("int", "string", ...) into a
// Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "string":
		return KindString, nil
	case "opaque":
		return KindOpaque, nil
	default:
		return KindInvalid, fmt.Errorf("unknown value kind %q", s)
	}
}

// Value is a tagged argument value. The zero Value has KindInvalid and is
// not usable; build values with Bool, Int, Float, Str, Opaque, or Values.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	o    any
}

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer Value. All integer widths share this
// representation; width checks happen when the value is written back into
// a declared parameter.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Str returns a string Value.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// Opaque returns a Value carrying an arbitrary host payload.
func Opaque(v any) Value { return Value{kind: KindOpaque, o: v} }

// Kind reports the value's tag.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. It is zero unless Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. It is zero unless Kind is KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. It is zero unless Kind is KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload. It is empty unless Kind is KindString.
func (v Value) Str() string { return v.s }

// Interface returns the payload as an untyped value, whatever the kind.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindOpaque:
		return v.o
	default:
		return nil
	}
}

// String renders the value for log output.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindOpaque:
		return fmt.Sprintf("opaque(%v)", v.o)
	default:
		return "invalid"
	}
}

// Values converts plain Go arguments into tagged values, in order. It is
// the host-side helper for building Invoke argument lists.
func Values(args ...any) []Value {
	out := make([]Value, len(args))
	for i, a := range args {
		if a == nil {
			out[i] = Opaque(nil)
			continue
		}
		out[i], _ = valueOf(reflect.ValueOf(a))
	}
	return out
}

// kindOf maps a declared Go type onto the closed Kind set. Pointer-sized
// integers stay opaque so address-like values never look rewritable.
func kindOf(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	default:
		return KindOpaque
	}
}

// valueOf converts a concrete Go value into a tagged Value. The boolean
// result reports whether an unsigned integer was clamped to MaxInt64 to fit
// the shared integer representation.
func valueOf(rv reflect.Value) (Value, bool) {
	if !rv.IsValid() {
		return Opaque(nil), false
	}
	switch kindOf(rv.Type()) {
	case KindBool:
		return Bool(rv.Bool()), false
	case KindInt:
		switch rv.Type().Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			i, clamped := safe.Uint64ToInt64(rv.Uint())
			return Int(i), clamped
		default:
			return Int(rv.Int()), false
		}
	case KindFloat:
		return Float(rv.Float()), false
	case KindString:
		return Str(rv.String()), false
	default:
		return Opaque(rv.Interface()), false
	}
}

// assignTo materializes the value as the declared parameter type t. A kind
// mismatch or a non-representable payload (integer overflow, unassignable
// opaque) fails with ErrRewriteType before anything is written.
func (v Value) assignTo(t reflect.Type) (reflect.Value, error) {
	if want := kindOf(t); want != v.kind {
		return reflect.Value{}, fmt.Errorf("%w: have %s, parameter is %s (%s)", ErrRewriteType, v.kind, want, t)
	}
	out := reflect.New(t).Elem()
	switch v.kind {
	case KindBool:
		out.SetBool(v.b)
	case KindInt:
		switch t.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if v.i < 0 || out.OverflowUint(uint64(v.i)) {
				return reflect.Value{}, fmt.Errorf("%w: %d does not fit %s", ErrRewriteType, v.i, t)
			}
			out.SetUint(uint64(v.i))
		default:
			if out.OverflowInt(v.i) {
				return reflect.Value{}, fmt.Errorf("%w: %d does not fit %s", ErrRewriteType, v.i, t)
			}
			out.SetInt(v.i)
		}
	case KindFloat:
		if out.OverflowFloat(v.f) {
			return reflect.Value{}, fmt.Errorf("%w: %g does not fit %s", ErrRewriteType, v.f, t)
		}
		out.SetFloat(v.f)
	case KindString:
		out.SetString(v.s)
	case KindOpaque:
		if v.o == nil {
			switch t.Kind() {
			case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
				return reflect.Zero(t), nil
			default:
				return reflect.Value{}, fmt.Errorf("%w: nil is not a valid %s", ErrRewriteType, t)
			}
		}
		ov := reflect.ValueOf(v.o)
		if !ov.Type().AssignableTo(t) {
			return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrRewriteType, ov.Type(), t)
		}
		out.Set(ov)
	default:
		return reflect.Value{}, fmt.Errorf("%w: invalid value", ErrRewriteType)
	}
	return out, nil
}

// zeroValue returns the zero Value for a declared parameter, used to
// synthesize results when a hook suppresses the original call.
func zeroValue(p Param) Value {
	switch p.Kind {
	case KindBool:
		return Bool(false)
	case KindInt:
		return Int(0)
	case KindFloat:
		return Float(0)
	case KindString:
		return Str("")
	default:
		if p.rtype != nil {
			return Opaque(reflect.Zero(p.rtype).Interface())
		}
		return Opaque(nil)
	}
}
