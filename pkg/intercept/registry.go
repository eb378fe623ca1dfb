package intercept

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handle identifies one installed hook. It is opaque to callers and is the
// token Unregister consumes.
type Handle string

// Config contains registry configuration.
type Config struct {
	// Logger is the sink for all registry output. Registration failures
	// log at error level, suppressions at debug, rewrites at trace.
	Logger zerolog.Logger

	// Resolver locates target callables; required.
	Resolver Resolver
}

// Registry tracks patched callables and routes dispatch through their hook
// chains. Create one with New at host startup, pass it by reference to
// whatever performs registration, and Close it at host shutdown.
//
// Dispatch takes the read side of the registry lock and Register/Unregister
// the write side, so hooks may be installed or removed while the host keeps
// calling.
type Registry struct {
	logger   zerolog.Logger
	resolver Resolver

	mu      sync.RWMutex
	patches map[string]*patch
	handles map[Handle]*patch
	closed  bool
}

// patch is one patched callable with its hook chain in registration order.
type patch struct {
	key    string
	target Interceptable
	hooks  []installedHook
}

type installedHook struct {
	handle Handle
	hook   Hook
}

// PatchInfo describes one patched callable for introspection.
type PatchInfo struct {
	Target string
	Hooks  int
}

// New creates a registry. The resolver is required; the logger may be a
// no-op logger.
func New(cfg Config) (*Registry, error) {
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	return &Registry{
		logger:   cfg.Logger.With().Str("component", "intercept").Logger(),
		resolver: cfg.Resolver,
		patches:  make(map[string]*patch),
		handles:  make(map[Handle]*patch),
	}, nil
}

// Register resolves the named callable under the visibility mask and
// installs hook to run before its original implementation. Hooks for the
// same callable accumulate and run in registration order.
//
// When the callable cannot be uniquely resolved, Register logs the failure
// at error level, installs nothing, and returns an error wrapping
// ErrLookup; the callable keeps behaving unpatched.
func (r *Registry) Register(typeName, methodName string, vis Visibility, hook Hook) (Handle, error) {
	if hook == nil {
		return "", fmt.Errorf("hook is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrClosed
	}

	key := targetKey(typeName, methodName)
	p, ok := r.patches[key]
	if !ok {
		target, err := r.resolver.Resolve(typeName, methodName, vis)
		if err != nil {
			err = fmt.Errorf("resolve %s: %w", key, err)
			r.logger.Error().
				Err(err).
				Str("target", key).
				Stringer("visibility", vis).
				Msg("Patch registration failed, target stays unpatched")
			return "", err
		}
		p = &patch{key: key, target: target}
		r.patches[key] = p
	}

	h := Handle(uuid.New().String())
	p.hooks = append(p.hooks, installedHook{handle: h, hook: hook})
	r.handles[h] = p

	r.logger.Info().
		Str("target", key).
		Str("handle", string(h)).
		Int("hooks", len(p.hooks)).
		Msg("Installed interception patch")

	return h, nil
}

// Unregister removes a previously installed hook. Once the last hook on a
// callable is removed, dispatch runs the original unmodified. An unknown or
// already removed handle fails with ErrNotFound and has no side effects.
func (r *Registry) Unregister(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	p, ok := r.handles[h]
	if !ok {
		err := fmt.Errorf("unregister %s: %w", h, ErrNotFound)
		r.logger.Warn().Err(err).Msg("Unregister with unknown handle")
		return err
	}
	delete(r.handles, h)

	for i := range p.hooks {
		if p.hooks[i].handle == h {
			p.hooks = append(p.hooks[:i], p.hooks[i+1:]...)
			break
		}
	}
	if len(p.hooks) == 0 {
		delete(r.patches, p.key)
	}

	r.logger.Info().
		Str("target", p.key).
		Str("handle", string(h)).
		Int("hooks", len(p.hooks)).
		Msg("Removed interception patch")

	return nil
}

// Invoke is the host's dispatch surface. It routes a call to the named
// callable through any installed hooks and then into the original
// implementation. Unpatched callables resolve on demand and call through
// untouched.
//
// Hook failures never propagate: a hook that errors or panics is logged,
// its argument changes are rolled back, and the chain continues. The error
// return reports host-side problems only (unresolvable callable, argument
// arity or type mismatch) plus binding-level failures from the original
// call itself.
func (r *Registry) Invoke(typeName, methodName string, args []Value) ([]Value, error) {
	key := targetKey(typeName, methodName)

	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil, ErrClosed
	}
	var target Interceptable
	var chain []installedHook
	if p, ok := r.patches[key]; ok {
		target = p.target
		chain = make([]installedHook, len(p.hooks))
		copy(chain, p.hooks)
	}
	r.mu.RUnlock()

	if target == nil {
		t, err := r.resolver.Resolve(typeName, methodName, VisAny)
		if err != nil {
			return nil, fmt.Errorf("dispatch %s: %w", key, err)
		}
		target = t
	}

	params := target.Params()
	if len(args) != len(params) {
		return nil, fmt.Errorf("dispatch %s: got %d arguments, want %d", key, len(args), len(params))
	}

	if len(chain) == 0 {
		return target.CallOriginal(args)
	}

	a := newArgs(params, args)
	inv := &Invocation{
		target: target,
		args:   a,
		logger: r.logger.With().Str("target", key).Logger(),
	}

	suppressed := false
	for _, ih := range chain {
		before := a.snapshot()
		decision, err := runHook(ih.hook, inv)
		if err != nil {
			a.restore(before)
			r.logger.Error().
				Err(err).
				Str("target", key).
				Str("handle", string(ih.handle)).
				Msg("Hook failed, original proceeds with unmodified arguments")
			continue
		}
		if decision == Suppress {
			suppressed = true
			r.logger.Debug().
				Str("target", key).
				Str("handle", string(ih.handle)).
				Msg("Hook suppressed original call")
			break
		}
	}

	if suppressed {
		results := target.Results()
		out := make([]Value, len(results))
		for i, res := range results {
			out[i] = zeroValue(res)
		}
		return out, nil
	}

	return target.CallOriginal(a.list())
}

// runHook executes one hook with panic isolation.
func runHook(h Hook, inv *Invocation) (d Decision, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("hook panic: %v\n%s", rec, debug.Stack())
		}
	}()
	return h(inv)
}

// Patches lists the currently patched callables, sorted by target name.
func (r *Registry) Patches() []PatchInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PatchInfo, 0, len(r.patches))
	for _, p := range r.patches {
		out = append(out, PatchInfo{Target: p.key, Hooks: len(p.hooks)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

// Count returns the number of patched callables.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patches)
}

// Close tears the registry down. All patches are removed and every
// subsequent operation fails with ErrClosed.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.closed = true

	removed := len(r.patches)
	r.patches = make(map[string]*patch)
	r.handles = make(map[Handle]*patch)

	r.logger.Info().Int("removed", removed).Msg("Interception registry closed")
	return nil
}
