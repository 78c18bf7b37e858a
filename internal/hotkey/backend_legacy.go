package hotkey

import (
	"errors"
	"fmt"
	"log"

	"github.com/TanaroSch/overlay-keys/internal/shortcut"
	"golang.design/x/hotkey"
)

// Poster queues a closure onto the event loop.
type Poster func(fn func()) bool

// LegacyBackend wraps the golang.design/x/hotkey library.
// This backend supports Windows, macOS, and X11 on Linux.
// It does NOT support Wayland.
type LegacyBackend struct {
	post          Poster
	handlers      handlerTable
	displayServer DisplayServer
}

// NewLegacyBackend creates a new legacy backend using golang.design/x/hotkey.
// Triggers are delivered through post so that handlers always run on the
// event loop.
func NewLegacyBackend(post Poster) *LegacyBackend {
	ds := DetectDisplayServer()
	log.Printf("Legacy backend: Detected display server: %s", ds)

	return &LegacyBackend{
		post:          post,
		handlers:      newHandlerTable(),
		displayServer: ds,
	}
}

// Name returns the name of this backend.
func (b *LegacyBackend) Name() string {
	return "Legacy (golang.design/x/hotkey)"
}

// IsAvailable checks if this backend can be used on the current system.
func (b *LegacyBackend) IsAvailable() bool {
	switch b.displayServer {
	case DisplayServerWindows, DisplayServerMacOS, DisplayServerX11:
		return true
	case DisplayServerWayland:
		// golang.design/x/hotkey does NOT support Wayland
		log.Println("Legacy backend: Not available on Wayland")
		return false
	default:
		log.Println("Legacy backend: Unknown display server, assuming unavailable")
		return false
	}
}

// InstallHandler installs the handler for sig.
func (b *LegacyBackend) InstallHandler(sig Signature, fn Handler) error {
	return b.handlers.install(sig, fn)
}

// RemoveHandler removes the handler for sig.
func (b *LegacyBackend) RemoveHandler(sig Signature) {
	b.handlers.remove(sig)
}

// Register registers c with the OS under id.
func (b *LegacyBackend) Register(id ID, c shortcut.Configuration) (*Handle, error) {
	modifiers, err := platformModifiers(c.Modifiers())
	if err != nil {
		return nil, fmt.Errorf("failed to map modifiers of '%s': %w", c, err)
	}
	key, err := platformKey(c.KeyCode())
	if err != nil {
		return nil, fmt.Errorf("failed to map key of '%s': %w", c, err)
	}

	// Register every lock-mask variant; only the base combination is required.
	var registered []*hotkey.Hotkey
	for i, variant := range expandModifiers(modifiers) {
		hk := hotkey.New(variant, key)
		if err := hk.Register(); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("%w: '%s': %v", ErrRegistrationRefused, c, err)
			}
			log.Printf("Legacy backend: Could not register lock-mask variant %d of '%s': %v", i, c, err)
			continue
		}
		registered = append(registered, hk)
	}

	stopCh := make(chan struct{})
	for _, hk := range registered {
		go b.forward(id, c, hk, stopCh)
	}

	log.Printf("Legacy backend: Successfully registered hotkey '%s' as %s", c, id)
	return NewHandle(id, c, func() error {
		close(stopCh)
		var errs []error
		for _, hk := range registered {
			if err := hk.Unregister(); err != nil {
				errs = append(errs, err)
			}
		}
		log.Printf("Legacy backend: Unregistered hotkey '%s' (%s)", c, id)
		return errors.Join(errs...)
	}), nil
}

// forward converts keydown events into dispatches on the event loop.
func (b *LegacyBackend) forward(id ID, c shortcut.Configuration, hk *hotkey.Hotkey, stopCh <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("RECOVERED FROM PANIC IN LEGACY HOTKEY CONVERTER (%s): %v", c, r)
		}
	}()

	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			if !b.post(func() { b.handlers.dispatch(id) }) {
				log.Printf("Legacy backend: Event loop stopped, dropping trigger for '%s'", c)
				return
			}
		}
	}
}
