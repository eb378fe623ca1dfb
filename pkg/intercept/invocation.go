package intercept

import "github.com/rs/zerolog"

// Decision is a hook's verdict on the intercepted call.
type Decision int

const (
	// Continue lets the original implementation run with the (possibly
	// rewritten) arguments.
	Continue Decision = iota
	// Suppress skips the original implementation. The dispatch returns the
	// callable's zero results and later hooks in the chain do not run.
	Suppress
)

// String returns the decision name for logs.
func (d Decision) String() string {
	if d == Suppress {
		return "suppress"
	}
	return "continue"
}

// Hook runs immediately before the original implementation of a patched
// callable, on the caller's goroutine. It may inspect parameter metadata,
// rewrite argument values, and decide whether the original runs.
//
// A hook that returns an error or panics is isolated: the failure is
// logged, its argument changes are rolled back, and dispatch continues as
// if the hook had not run. Hooks must be fast and must not block.
type Hook func(inv *Invocation) (Decision, error)

// Invocation carries one intercepted call through the hook chain.
type Invocation struct {
	target Interceptable
	args   *Args
	logger zerolog.Logger
}

// Callable returns the qualified name of the intercepted callable.
func (inv *Invocation) Callable() string { return inv.target.Name() }

// Params returns the callable's declared formal parameters in order.
func (inv *Invocation) Params() []Param {
	declared := inv.target.Params()
	out := make([]Param, len(declared))
	copy(out, declared)
	return out
}

// Args returns the mutable argument sequence for this invocation.
func (inv *Invocation) Args() *Args { return inv.args }

// Logger returns a logger scoped to the intercepted callable. Hooks log
// through it so all interception output reaches the sink the registry was
// initialized with.
func (inv *Invocation) Logger() zerolog.Logger { return inv.logger }
