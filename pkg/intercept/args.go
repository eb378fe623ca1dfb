package intercept

import (
	"fmt"
	"reflect"
)

// Param describes one formal parameter (or result) of a target callable:
// its declared name, its kind, and its zero-based position. Bindings that
// cannot recover declared names synthesize positional ones (arg0, arg1, ...).
type Param struct {
	Name     string
	Kind     Kind
	Position int

	// rtype is the declared Go type when the binding knows it. It enables
	// representability checks on rewrites; bindings built outside this
	// package may leave it unset, in which case only kinds are checked.
	rtype reflect.Type
}

// String renders the parameter for log output.
func (p Param) String() string {
	return fmt.Sprintf("%s %s (pos %d)", p.Name, p.Kind, p.Position)
}

// Args is the ordered sequence of (parameter, value) pairs for one
// invocation. Hooks read parameters to decide what to rewrite and mutate
// values through Set, which enforces type compatibility.
type Args struct {
	params []Param
	values []Value
}

func newArgs(params []Param, values []Value) *Args {
	vs := make([]Value, len(values))
	copy(vs, values)
	return &Args{params: params, values: vs}
}

// Len returns the number of arguments.
func (a *Args) Len() int { return len(a.values) }

// Param returns the descriptor at position i.
func (a *Args) Param(i int) Param { return a.params[i] }

// Value returns the current argument value at position i.
func (a *Args) Value(i int) Value { return a.values[i] }

// Set replaces the argument at position i. The replacement must match the
// declared parameter's kind and be representable in its concrete type;
// otherwise Set fails with ErrRewriteType and the argument is untouched.
func (a *Args) Set(i int, v Value) error {
	if i < 0 || i >= len(a.values) {
		return fmt.Errorf("%w: position %d out of range (0..%d)", ErrRewriteType, i, len(a.values)-1)
	}
	p := a.params[i]
	if v.Kind() != p.Kind {
		return fmt.Errorf("%w: parameter %s is %s, replacement is %s", ErrRewriteType, p.Name, p.Kind, v.Kind())
	}
	if p.rtype != nil {
		if _, err := v.assignTo(p.rtype); err != nil {
			return fmt.Errorf("parameter %s: %w", p.Name, err)
		}
	}
	a.values[i] = v
	return nil
}

// snapshot copies the current values so a failing hook can be rolled back.
func (a *Args) snapshot() []Value {
	vs := make([]Value, len(a.values))
	copy(vs, a.values)
	return vs
}

func (a *Args) restore(vs []Value) {
	copy(a.values, vs)
}

// list copies the values out for the original call.
func (a *Args) list() []Value {
	vs := make([]Value, len(a.values))
	copy(vs, a.values)
	return vs
}
