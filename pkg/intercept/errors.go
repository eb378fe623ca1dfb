package intercept

import "errors"

// Sentinel errors returned by the registry and the host binding. Callers
// match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrLookup reports that a target callable could not be uniquely
	// resolved: either nothing matched the name and visibility mask, or
	// more than one binding did.
	ErrLookup = errors.New("target callable not uniquely resolved")

	// ErrNotFound reports an unregister with a handle that is not (or no
	// longer) installed.
	ErrNotFound = errors.New("patch handle not found")

	// ErrRewriteType reports an attempt to write an argument value that is
	// incompatible with the declared parameter type. The write is rejected
	// before any state changes.
	ErrRewriteType = errors.New("replacement value incompatible with parameter type")

	// ErrClosed reports use of a registry after Close.
	ErrClosed = errors.New("interception registry is closed")
)
