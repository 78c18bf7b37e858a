package hotkey

import (
	"fmt"
	"log"

	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// GlobalSignature tags hotkeys owned by the GlobalRegistry.
const GlobalSignature Signature = 0x4F564C47 // "OVLG"

// Settings persists the global toggle configuration.
type Settings interface {
	SaveGlobalShortcut(c shortcut.Configuration) error
}

// GlobalRegistry owns the single show/hide hotkey and, inside a development
// sandbox, its fallback binding.
type GlobalRegistry struct {
	backend    Backend
	suspension *Suspension
	settings   Settings
	opts       options

	current          shortcut.Configuration
	trigger          func()
	handlerInstalled bool
	nextNumber       uint32
	primary          *Handle
	fallback         *Handle
}

// NewGlobalRegistry creates a registry for the configuration loaded from
// settings. Nothing is registered until RegisterCurrent.
func NewGlobalRegistry(backend Backend, suspension *Suspension, settings Settings, current shortcut.Configuration, opts ...Option) *GlobalRegistry {
	return &GlobalRegistry{
		backend:    backend,
		suspension: suspension,
		settings:   settings,
		opts:       buildOptions(opts),
		current:    current,
	}
}

// Configuration returns the configured toggle, live or not.
func (g *GlobalRegistry) Configuration() shortcut.Configuration {
	return g.current
}

// IsActive reports whether the configured toggle is currently registered.
func (g *GlobalRegistry) IsActive() bool {
	return g.primary != nil
}

// FallbackActive reports whether the sandbox fallback is registered.
func (g *GlobalRegistry) FallbackActive() bool {
	return g.fallback != nil
}

// RegisterCurrent installs the event handler if needed and (re)registers the
// configured toggle. Failure is non-fatal: the configuration stays stored and
// is retried on the next call.
func (g *GlobalRegistry) RegisterCurrent(trigger func()) bool {
	g.opts.confine("GlobalRegistry.RegisterCurrent")
	g.trigger = trigger
	if err := g.installHandler(); err != nil {
		log.Printf("Global hotkey: Failed to install event handler: %v", err)
		return false
	}
	g.releasePrimary()
	return g.registerActive()
}

// UpdateConfiguration persists c, then replaces the live registration.
// There is a short window where neither binding is registered.
func (g *GlobalRegistry) UpdateConfiguration(c shortcut.Configuration) (bool, error) {
	g.opts.confine("GlobalRegistry.UpdateConfiguration")
	if err := g.settings.SaveGlobalShortcut(c); err != nil {
		return false, fmt.Errorf("failed to save global shortcut '%s': %w", c, err)
	}
	g.current = c
	if err := g.installHandler(); err != nil {
		return false, fmt.Errorf("failed to install global hotkey handler: %w", err)
	}
	g.releasePrimary()
	return g.registerActive(), nil
}

// Disable releases every registration and then removes the event handler.
func (g *GlobalRegistry) Disable() {
	g.opts.confine("GlobalRegistry.Disable")
	g.releasePrimary()
	g.releaseFallback()
	if g.handlerInstalled {
		g.backend.RemoveHandler(GlobalSignature)
		g.handlerInstalled = false
	}
	log.Println("Global hotkey: Disabled")
}

func (g *GlobalRegistry) installHandler() error {
	if g.handlerInstalled {
		return nil
	}
	if err := g.backend.InstallHandler(GlobalSignature, g.handle); err != nil {
		return err
	}
	g.handlerInstalled = true
	return nil
}

func (g *GlobalRegistry) registerActive() bool {
	defer g.syncFallback()

	if g.current.IsDisabled() {
		log.Println("Global hotkey: No toggle configured")
		return false
	}
	h, err := g.backend.Register(g.allocate(), g.current)
	if err != nil {
		log.Printf("Global hotkey: '%s' is configured but inactive: %v", g.current, err)
		return false
	}
	g.primary = h
	log.Printf("Global hotkey: Registered toggle '%s'", g.current)
	return true
}

// syncFallback installs the sandbox fallback while the default toggle is
// active inside a sandbox and tears it down otherwise.
func (g *GlobalRegistry) syncFallback() {
	want := g.opts.sandbox && g.current == shortcut.DefaultGlobal
	switch {
	case want && g.fallback == nil:
		h, err := g.backend.Register(g.allocate(), shortcut.SandboxFallback)
		if err != nil {
			log.Printf("Global hotkey: Sandbox fallback '%s' is inactive: %v", shortcut.SandboxFallback, err)
			return
		}
		g.fallback = h
		log.Printf("Global hotkey: Registered sandbox fallback '%s'", shortcut.SandboxFallback)
	case !want && g.fallback != nil:
		g.releaseFallback()
	}
}

func (g *GlobalRegistry) allocate() ID {
	g.nextNumber++
	return ID{Signature: GlobalSignature, Number: g.nextNumber}
}

func (g *GlobalRegistry) releasePrimary() {
	if g.primary != nil {
		g.primary.Release()
		g.primary = nil
	}
}

func (g *GlobalRegistry) releaseFallback() {
	if g.fallback != nil {
		g.fallback.Release()
		g.fallback = nil
	}
}

func (g *GlobalRegistry) owns(number uint32) bool {
	if g.primary != nil && g.primary.ID().Number == number {
		return true
	}
	return g.fallback != nil && g.fallback.ID().Number == number
}

// handle is the OS event handler for GlobalSignature.
func (g *GlobalRegistry) handle(number uint32) bool {
	if !g.owns(number) {
		return false
	}
	if g.suspension.Active() {
		g.suspension.PublishReserved(g.current)
		return true
	}
	if g.trigger != nil {
		g.trigger()
	}
	return true
}
