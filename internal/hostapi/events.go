package hostapi

import (
	"errors"
	"sync"
)

// EventKind identifies a lifecycle notification emitted by the host.
type EventKind string

// Lifecycle notifications, listed in the order they occur during a normal
// session.
const (
	// GameLaunched fires once the host has finished loading and gameplay
	// systems are callable.
	GameLaunched EventKind = "game_launched"

	// MenuOpened fires each time the player opens an in-game menu. The
	// event detail carries the menu name.
	MenuOpened EventKind = "menu_opened"

	// ShuttingDown fires once when the host begins an orderly exit.
	ShuttingDown EventKind = "shutting_down"
)

// Event is a single lifecycle notification.
type Event struct {
	// Kind identifies the notification.
	Kind EventKind

	// Detail carries optional kind-specific context, such as the name of
	// the menu that opened. Empty when the kind needs none.
	Detail string
}

// Handler reacts to one lifecycle event. A non-nil error is reported to the
// emitter but never stops delivery to later subscribers.
type Handler func(Event) error

// EventBus dispatches lifecycle events to subscribers in subscription order.
//
// The zero value is not usable; create instances with NewEventBus. All
// methods are safe for concurrent use. Handlers run synchronously on the
// emitting goroutine and must not block.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[EventKind][]Handler
}

// NewEventBus returns a bus with no subscribers.
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventKind][]Handler),
	}
}

// Subscribe registers h for events of the given kind. Handlers for one kind
// run in the order they subscribed. Nil handlers are ignored.
func (b *EventBus) Subscribe(kind EventKind, h Handler) {
	if h == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Emit delivers e to every subscriber of e.Kind in subscription order.
// Every subscriber runs even when an earlier one fails; handler errors are
// joined and returned to the emitter.
func (b *EventBus) Emit(e Event) error {
	b.mu.RLock()
	chain := make([]Handler, len(b.handlers[e.Kind]))
	copy(chain, b.handlers[e.Kind])
	b.mu.RUnlock()

	var errs []error
	for _, h := range chain {
		if err := h(e); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
