// Package hostapi defines the contract between the host game process and
// loaded mods.
//
// A host exposes static metadata about itself and an event bus that carries
// lifecycle notifications. Mods subscribe to the bus during initialization
// and react to events such as the game finishing its launch sequence or the
// process shutting down. The host owns the bus and emits on its own
// goroutine; handlers run synchronously in subscription order.
package hostapi

// GameInfo describes the host game a mod is loaded into.
type GameInfo struct {
	// Title is the human-readable game name.
	Title string

	// Version is the host build version string.
	Version string
}

// Host is the surface a mod receives from the loading framework.
type Host interface {
	// Info returns static metadata about the host game.
	Info() GameInfo

	// Events returns the lifecycle event bus. The returned bus is shared;
	// every mod loaded into the host subscribes to the same instance.
	Events() *EventBus
}
