package intercept

import (
	"fmt"
	"strings"
)

// Visibility is the lookup mask for target resolution. It mirrors the two
// axes a host binding distinguishes: access (exported or unexported names)
// and binding class (instance methods or free functions). A candidate
// matches a mask only when the mask admits its bit on both axes.
type Visibility uint8

const (
	// VisPublic admits exported callables.
	VisPublic Visibility = 1 << iota
	// VisPrivate admits unexported callables, which are reachable only
	// through an explicit function table.
	VisPrivate
	// VisInstance admits methods bound to a host instance.
	VisInstance
	// VisStatic admits package-level functions.
	VisStatic
)

// VisDefault matches exported instance methods, the common case.
const VisDefault = VisPublic | VisInstance

// VisAny matches every binding; dispatch of unpatched callables uses it.
const VisAny = VisPublic | VisPrivate | VisInstance | VisStatic

// admits reports whether the mask accepts a candidate carrying the given
// visibility bits, requiring a match on both the access and binding axes.
func (v Visibility) admits(candidate Visibility) bool {
	const access = VisPublic | VisPrivate
	const binding = VisInstance | VisStatic
	return v&candidate&access != 0 && v&candidate&binding != 0
}

// String renders the mask as "public|instance" style tokens.
func (v Visibility) String() string {
	var parts []string
	if v&VisPublic != 0 {
		parts = append(parts, "public")
	}
	if v&VisPrivate != 0 {
		parts = append(parts, "private")
	}
	if v&VisInstance != 0 {
		parts = append(parts, "instance")
	}
	if v&VisStatic != 0 {
		parts = append(parts, "static")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseVisibility builds a mask from configuration tokens. An empty token
// list yields VisDefault.
func ParseVisibility(tokens []string) (Visibility, error) {
	if len(tokens) == 0 {
		return VisDefault, nil
	}
	var v Visibility
	for _, tok := range tokens {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case "public":
			v |= VisPublic
		case "private":
			v |= VisPrivate
		case "instance":
			v |= VisInstance
		case "static":
			v |= VisStatic
		default:
			return 0, fmt.Errorf("unknown visibility token %q", tok)
		}
	}
	return v, nil
}

// Interceptable is the capability a resolved target exposes to the
// registry: parameter metadata for hooks to inspect, result metadata so a
// suppressed call can synthesize zero results, and the original body.
type Interceptable interface {
	// Name returns the qualified callable name, "TypeName.MethodName".
	Name() string
	// Params returns the declared formal parameters in order.
	Params() []Param
	// Results returns the declared results in order.
	Results() []Param
	// CallOriginal invokes the original implementation with the given
	// arguments. It returns an error only for binding-level failures
	// (arity or type mismatch); the original body's own return values,
	// including error results, come back as Values.
	CallOriginal(args []Value) ([]Value, error)
}

// Resolver locates a target callable for the registry. Resolution must be
// deterministic: exactly one match succeeds, zero or several fail with an
// error wrapping ErrLookup. The Catalog in this package is the standard
// implementation; hosts with their own dispatch tables can supply another.
type Resolver interface {
	Resolve(typeName, methodName string, vis Visibility) (Interceptable, error)
}

// targetKey is the registry table key for a callable.
func targetKey(typeName, methodName string) string {
	return typeName + "." + methodName
}
