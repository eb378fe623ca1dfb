// Package demohost simulates a small host game so the interception
// pipeline can be exercised end to end from the command line. The host
// owns the lifecycle bus and a shop menu whose methods stand in for the
// gameplay callables a real loading framework would expose.
package demohost

import (
	"github.com/hayloft-mods/hayloft/internal/hostapi"
)

// GameTitle and GameVersion identify the simulated host build.
const (
	GameTitle   = "Haystack Valley"
	GameVersion = "1.6.3"
)

// Host is the simulated game process. It satisfies hostapi.Host.
type Host struct {
	info hostapi.GameInfo
	bus  *hostapi.EventBus
	shop *ShopMenu
}

// NewHost returns a host with a freshly stocked shop and an empty bus.
func NewHost() *Host {
	return &Host{
		info: hostapi.GameInfo{Title: GameTitle, Version: GameVersion},
		bus:  hostapi.NewEventBus(),
		shop: NewShopMenu(),
	}
}

// Info returns static metadata about the simulated game.
func (h *Host) Info() hostapi.GameInfo { return h.info }

// Events returns the lifecycle bus mods subscribe to.
func (h *Host) Events() *hostapi.EventBus { return h.bus }

// Shop returns the menu whose callables the demo patches.
func (h *Host) Shop() *ShopMenu { return h.shop }

// Launch announces that the game finished loading.
func (h *Host) Launch() error {
	return h.bus.Emit(hostapi.Event{Kind: hostapi.GameLaunched})
}

// OpenMenu announces that the player opened the named menu.
func (h *Host) OpenMenu(name string) error {
	return h.bus.Emit(hostapi.Event{Kind: hostapi.MenuOpened, Detail: name})
}

// Shutdown announces an orderly exit.
func (h *Host) Shutdown() error {
	return h.bus.Emit(hostapi.Event{Kind: hostapi.ShuttingDown})
}
