// Package constants defines shared configuration constants and defaults.
package constants

// Patch defaults - the stock rewrite shipped with the mod.
const (
	// DefaultPatchTarget is the callable the stock patch intercepts.
	DefaultPatchTarget = "ShopMenu.TryPurchase"

	// DefaultRewriteKind is the parameter kind the stock rule matches.
	// The first parameter of that kind gets rewritten.
	DefaultRewriteKind = "int"

	// DefaultRewriteValue is the replacement for the matched argument.
	DefaultRewriteValue = "1"
)

// Logging defaults.
const (
	// DefaultLogLevel is the log level used when configuration does not
	// set one.
	DefaultLogLevel = "info"
)
