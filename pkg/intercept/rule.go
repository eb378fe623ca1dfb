package intercept

import "fmt"

// Predicate selects parameters by their metadata.
type Predicate func(Param) bool

// Replacer produces the replacement for a matched argument. It receives the
// parameter descriptor and the current value and returns the new value.
type Replacer func(Param, Value) (Value, error)

// Rule pairs a parameter predicate with a replacement policy. A rule with
// Suppress set cancels the original call instead of rewriting an argument.
type Rule struct {
	Match    Predicate
	Replace  Replacer
	Suppress bool
}

// ByKind matches parameters of the given kind.
func ByKind(k Kind) Predicate {
	return func(p Param) bool { return p.Kind == k }
}

// ByName matches parameters by declared name.
func ByName(name string) Predicate {
	return func(p Param) bool { return p.Name == name }
}

// ByPosition matches the parameter at a zero-based position.
func ByPosition(i int) Predicate {
	return func(p Param) bool { return p.Position == i }
}

// Constant replaces the matched argument with a fixed value.
func Constant(v Value) Replacer {
	return func(Param, Value) (Value, error) { return v, nil }
}

// NewRewriteHook builds a hook that applies rules with first-match-wins
// semantics: parameters are scanned in declared order, and the first
// (parameter, rule) pair that matches fires; the scan stops there, so at
// most one rule fires per invocation. If nothing matches, the arguments
// pass through unchanged.
//
// The rewrite is logged at trace level with the callable, the parameter,
// and the old and new values.
func NewRewriteHook(rules ...Rule) Hook {
	return func(inv *Invocation) (Decision, error) {
		args := inv.Args()
		for i := 0; i < args.Len(); i++ {
			p := args.Param(i)
			for _, rule := range rules {
				if rule.Match == nil || !rule.Match(p) {
					continue
				}
				if rule.Suppress {
					logger := inv.Logger()
					logger.Debug().
						Str("parameter", p.Name).
						Msg("Rule suppressed original call")
					return Suppress, nil
				}
				if rule.Replace == nil {
					return Continue, fmt.Errorf("rule matched parameter %s but has no replacer", p.Name)
				}
				old := args.Value(i)
				next, err := rule.Replace(p, old)
				if err != nil {
					return Continue, fmt.Errorf("replace parameter %s: %w", p.Name, err)
				}
				if err := args.Set(i, next); err != nil {
					return Continue, err
				}
				logger := inv.Logger()
				logger.Trace().
					Str("parameter", p.Name).
					Int("position", p.Position).
					Stringer("old", old).
					Stringer("new", next).
					Msg("Rewrote argument")
				return Continue, nil
			}
		}
		return Continue, nil
	}
}
