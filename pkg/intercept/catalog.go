package intercept

import (
	"fmt"
	"reflect"
	"sync"
)

// BindOption customizes a Catalog binding.
type BindOption func(*bindConfig)

type bindConfig struct {
	// names maps a method name to its parameter name hints. BindFunc
	// bindings use the empty key.
	names map[string][]string
}

func newBindConfig(opts []BindOption) *bindConfig {
	cfg := &bindConfig{names: make(map[string][]string)}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithParamNames supplies parameter names for a BindFunc binding. Runtime
// type information carries no parameter names, so without hints the
// parameters are named positionally (arg0, arg1, ...). Hooks that match
// parameters by name need the hints.
func WithParamNames(names ...string) BindOption {
	return func(cfg *bindConfig) {
		cfg.names[""] = names
	}
}

// WithMethodParamNames supplies parameter names for one method of a
// BindInstance binding.
func WithMethodParamNames(method string, names ...string) BindOption {
	return func(cfg *bindConfig) {
		cfg.names[method] = names
	}
}

// Catalog resolves type and method names to callables, and is the standard
// Resolver given to a registry.
//
// It supports two binding modes. BindInstance takes a live value and
// exposes its exported methods through runtime reflection; those resolve
// as public instance callables. Reflection cannot reach unexported methods
// or package-level functions, so BindFunc binds those explicitly, one
// callable at a time, with the visibility the caller declares for it.
//
// Bindings may be added while a registry resolves against the catalog.
type Catalog struct {
	mu        sync.RWMutex
	instances map[string]*boundInstance
	funcs     map[string]*boundFunc
}

type boundInstance struct {
	// methods holds one prebuilt callable per exported non-variadic
	// method.
	methods map[string]*callable
}

type boundFunc struct {
	target *callable
	vis    Visibility
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		instances: make(map[string]*boundInstance),
		funcs:     make(map[string]*boundFunc),
	}
}

// BindInstance registers a live value under typeName and exposes its
// exported methods for resolution. Variadic methods are skipped; they
// cannot be intercepted. Parameter name hints are given per method with
// WithMethodParamNames and must match the method's parameter count.
//
// Binding the same typeName twice fails.
func (c *Catalog) BindInstance(typeName string, instance any, opts ...BindOption) error {
	if typeName == "" {
		return fmt.Errorf("type name is required")
	}
	rv := reflect.ValueOf(instance)
	if !rv.IsValid() {
		return fmt.Errorf("bind %s: instance is nil", typeName)
	}

	cfg := newBindConfig(opts)

	methods := make(map[string]*callable)
	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if m.Func.Type().IsVariadic() {
			continue
		}
		target, err := newCallable(targetKey(typeName, m.Name), rv.Method(i), cfg.names[m.Name])
		if err != nil {
			return fmt.Errorf("bind %s: %w", typeName, err)
		}
		methods[m.Name] = target
	}
	if len(methods) == 0 {
		return fmt.Errorf("bind %s: %T has no exported methods", typeName, instance)
	}
	for method := range cfg.names {
		if _, ok := methods[method]; !ok {
			return fmt.Errorf("bind %s: parameter names given for unknown method %q", typeName, method)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.instances[typeName]; ok {
		return fmt.Errorf("bind %s: type already bound", typeName)
	}
	c.instances[typeName] = &boundInstance{methods: methods}
	return nil
}

// BindFunc registers a single callable under typeName and methodName with
// an explicit visibility, for callables reflection cannot reach: unexported
// methods (bind a method value or closure) and package-level functions
// (bind with VisStatic). The visibility must name exactly one access level
// and one binding kind, for example VisPrivate|VisInstance.
//
// Binding an already bound typeName.methodName pair fails.
func (c *Catalog) BindFunc(typeName, methodName string, fn any, vis Visibility, opts ...BindOption) error {
	if typeName == "" || methodName == "" {
		return fmt.Errorf("type and method names are required")
	}
	access := vis & (VisPublic | VisPrivate)
	binding := vis & (VisInstance | VisStatic)
	if (access != VisPublic && access != VisPrivate) || (binding != VisInstance && binding != VisStatic) {
		return fmt.Errorf("bind %s: visibility %s does not name one access level and one binding kind",
			targetKey(typeName, methodName), vis)
	}

	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return fmt.Errorf("bind %s: not a function", targetKey(typeName, methodName))
	}
	if rv.IsNil() {
		return fmt.Errorf("bind %s: function is nil", targetKey(typeName, methodName))
	}

	cfg := newBindConfig(opts)
	key := targetKey(typeName, methodName)

	target, err := newCallable(key, rv, cfg.names[""])
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.funcs[key]; ok {
		return fmt.Errorf("bind %s: callable already bound", key)
	}
	c.funcs[key] = &boundFunc{target: target, vis: vis}
	return nil
}

// Resolve implements Resolver. A reflective method and an explicit BindFunc
// binding under the same name are both candidates when the mask admits
// them; resolution fails with ErrLookup unless exactly one candidate
// remains. Narrow the mask to disambiguate.
func (c *Catalog) Resolve(typeName, methodName string, vis Visibility) (Interceptable, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := targetKey(typeName, methodName)
	var candidates []*callable

	if bi, ok := c.instances[typeName]; ok {
		if target, ok := bi.methods[methodName]; ok && vis.admits(VisPublic|VisInstance) {
			candidates = append(candidates, target)
		}
	}
	if bf, ok := c.funcs[key]; ok && vis.admits(bf.vis) {
		candidates = append(candidates, bf.target)
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%s under %s: no callable matches: %w", key, vis, ErrLookup)
	case 1:
		return candidates[0], nil
	default:
		return nil, fmt.Errorf("%s under %s: %d callables match: %w", key, vis, len(candidates), ErrLookup)
	}
}

// callable adapts a reflect.Value of func kind to Interceptable.
type callable struct {
	name    string
	fn      reflect.Value
	params  []Param
	results []Param
}

func newCallable(name string, fn reflect.Value, hints []string) (*callable, error) {
	t := fn.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("%s: variadic callables cannot be intercepted", name)
	}
	if hints != nil && len(hints) != t.NumIn() {
		return nil, fmt.Errorf("%s: got %d parameter names, want %d", name, len(hints), t.NumIn())
	}

	params := make([]Param, t.NumIn())
	for i := range params {
		pname := fmt.Sprintf("arg%d", i)
		if hints != nil {
			pname = hints[i]
		}
		params[i] = Param{Name: pname, Kind: kindOf(t.In(i)), Position: i, rtype: t.In(i)}
	}
	results := make([]Param, t.NumOut())
	for i := range results {
		results[i] = Param{Name: fmt.Sprintf("ret%d", i), Kind: kindOf(t.Out(i)), Position: i, rtype: t.Out(i)}
	}

	return &callable{name: name, fn: fn, params: params, results: results}, nil
}

// Name implements Interceptable.
func (t *callable) Name() string { return t.name }

// Params implements Interceptable.
func (t *callable) Params() []Param {
	out := make([]Param, len(t.params))
	copy(out, t.params)
	return out
}

// Results implements Interceptable.
func (t *callable) Results() []Param {
	out := make([]Param, len(t.results))
	copy(out, t.results)
	return out
}

// CallOriginal implements Interceptable. Arguments are converted back to
// their native types and the underlying function is invoked directly, so a
// panic inside the original body surfaces exactly as it would without
// interception.
func (t *callable) CallOriginal(args []Value) ([]Value, error) {
	if len(args) != len(t.params) {
		return nil, fmt.Errorf("%s: got %d arguments, want %d", t.name, len(args), len(t.params))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		rv, err := a.assignTo(t.params[i].rtype)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d (%s): %w", t.name, i, t.params[i].Name, err)
		}
		in[i] = rv
	}

	out := t.fn.Call(in)
	results := make([]Value, len(out))
	for i, rv := range out {
		v, _ := valueOf(rv)
		results[i] = v
	}
	return results, nil
}
