// Package mod wires configured interception patches into a host process.
//
// A Mod is the single entry point the loading framework instantiates. It
// subscribes to the host lifecycle bus, installs the patches named in its
// configuration once gameplay systems are callable, and removes them again
// when the host begins shutting down. A patch that fails to install is
// logged and skipped; a mod never takes the host down with it.
package mod

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hayloft-mods/hayloft/internal/config"
	"github.com/hayloft-mods/hayloft/internal/hostapi"
	"github.com/hayloft-mods/hayloft/internal/logging"
	"github.com/hayloft-mods/hayloft/pkg/intercept"
	"github.com/hayloft-mods/hayloft/pkg/version"
)

// Mod installs and removes the configured interception patches in step with
// the host lifecycle.
type Mod struct {
	logger   zerolog.Logger
	settings *config.Config
	registry *intercept.Registry

	mu        sync.Mutex
	installed bool
	handles   []intercept.Handle
}

// New returns a Mod that installs the patches described in settings into
// registry. The registry must outlive the mod.
func New(settings *config.Config, registry *intercept.Registry, logger zerolog.Logger) (*Mod, error) {
	if settings == nil {
		return nil, fmt.Errorf("mod: settings are required")
	}
	if registry == nil {
		return nil, fmt.Errorf("mod: registry is required")
	}

	return &Mod{
		logger: logging.Component(logger, "mod").With().
			Str("mod", settings.Mod.Name).
			Logger(),
		settings: settings,
		registry: registry,
	}, nil
}

// Attach subscribes the mod to the host lifecycle bus. Patches install when
// the host reports that the game has launched and are removed again when it
// begins shutting down.
func (m *Mod) Attach(host hostapi.Host) error {
	if host == nil {
		return fmt.Errorf("mod: host is required")
	}

	info := host.Info()
	m.logger.Info().
		Str("game", info.Title).
		Str("game_version", info.Version).
		Str("mod_version", version.String()).
		Msg("Mod attached to host")

	bus := host.Events()
	bus.Subscribe(hostapi.GameLaunched, m.onGameLaunched)
	bus.Subscribe(hostapi.MenuOpened, m.onMenuOpened)
	bus.Subscribe(hostapi.ShuttingDown, m.onShuttingDown)

	return nil
}

// onGameLaunched installs every configured patch. Installation failures are
// logged per patch and never propagate back to the host.
func (m *Mod) onGameLaunched(hostapi.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.installed {
		m.logger.Warn().Msg("Patches already installed, ignoring repeated launch event")
		return nil
	}
	m.installed = true

	for i := range m.settings.Patches {
		patch := &m.settings.Patches[i]

		handle, err := m.install(patch)
		if err != nil {
			m.logger.Error().
				Err(err).
				Str("target", patch.Target).
				Msg("Skipping patch that failed to install")
			continue
		}
		m.handles = append(m.handles, handle)
	}

	m.logger.Info().
		Int("installed", len(m.handles)).
		Int("configured", len(m.settings.Patches)).
		Msg("Patch installation finished")

	return nil
}

// install translates one patch description into a registered rewrite hook.
func (m *Mod) install(patch *config.PatchConfig) (intercept.Handle, error) {
	typeName, methodName, err := config.ParseTarget(patch.Target)
	if err != nil {
		return "", err
	}

	vis, err := intercept.ParseVisibility(patch.Visibility)
	if err != nil {
		return "", err
	}

	rules, err := patch.IntoRules()
	if err != nil {
		return "", err
	}

	return m.registry.Register(typeName, methodName, vis, intercept.NewRewriteHook(rules...))
}

func (m *Mod) onMenuOpened(e hostapi.Event) error {
	m.logger.Debug().Str("menu", e.Detail).Msg("Menu opened")
	return nil
}

// onShuttingDown removes every patch this mod installed, restoring the
// original callables before the host exits.
func (m *Mod) onShuttingDown(hostapi.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, handle := range m.handles {
		if err := m.registry.Unregister(handle); err != nil {
			m.logger.Warn().
				Err(err).
				Str("handle", string(handle)).
				Msg("Patch was already gone during shutdown")
		}
	}
	removed := len(m.handles)
	m.handles = nil
	m.installed = false

	m.logger.Info().Int("removed", removed).Msg("Mod detached, patches removed")

	return nil
}
