// Package intercept provides dynamic call interception and argument
// rewriting for host applications that route method dispatch through a
// Registry.
//
// The package is built around three pieces:
//
//   - Registry: tracks which callables are patched and runs installed hooks
//     immediately before (and optionally instead of) the original
//     implementation. Hooks for one callable run in registration order on
//     the caller's goroutine; the registry adds no scheduling of its own.
//   - Catalog: the host binding. It resolves a callable from a type name,
//     method name, and visibility mask, using reflection for exported
//     methods and an explicit function table for everything reflection
//     cannot reach.
//   - Hooks and rules: a Hook inspects the callable's formal parameters and
//     may rewrite the argument values that will be passed to the original,
//     or suppress the call entirely. NewRewriteHook builds the common case
//     from declarative rules with first-match-wins semantics.
//
// Basic usage:
//
//	catalog := intercept.NewCatalog()
//	if err := catalog.BindInstance("ShopMenu", menu,
//	    intercept.WithMethodParamNames("TryPurchase", "count", "itemID")); err != nil {
//	    return err
//	}
//
//	registry, err := intercept.New(intercept.Config{
//	    Logger:   logger,
//	    Resolver: catalog,
//	})
//	if err != nil {
//	    return err
//	}
//	defer registry.Close()
//
//	handle, err := registry.Register("ShopMenu", "TryPurchase",
//	    intercept.VisDefault,
//	    intercept.NewRewriteHook(intercept.Rule{
//	        Match:   intercept.ByKind(intercept.KindInt),
//	        Replace: intercept.Constant(intercept.Int(1)),
//	    }))
//
//	// The host dispatches patched calls through the registry.
//	results, err := registry.Invoke("ShopMenu", "TryPurchase",
//	    intercept.Values(64, "sword"))
//
// Failure isolation is the package's core contract: a hook that returns an
// error or panics is logged and discarded, its own argument changes are
// rolled back, and the original callable still runs. No error originating
// inside a hook ever propagates into the host's call path.
package intercept
