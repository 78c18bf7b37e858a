package hotkey

import (
	"errors"
	"fmt"
	"log"

	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// ErrBackendNotAvailable is returned when a backend cannot be used on the current system.
var ErrBackendNotAvailable = errors.New("backend not available on this system")

// ErrRegistrationRefused is returned when the OS (or another process) already
// owns the requested combination.
var ErrRegistrationRefused = errors.New("hotkey combination already claimed")

// Signature identifies which registry owns a hotkey, so a single backend can
// route triggers to several registries.
type Signature uint32

// ID is the pair the OS round-trips on every trigger.
type ID struct {
	Signature Signature
	Number    uint32
}

func (id ID) String() string {
	return fmt.Sprintf("%08x/%d", uint32(id.Signature), id.Number)
}

// Handler receives the identifier of a pressed hotkey and reports whether it
// recognised it.
type Handler func(number uint32) bool

// Backend is an interface that abstracts the OS global-hotkey facility.
// This allows us to support multiple display servers (Windows, X11, macOS)
// and a headless fallback behind one contract.
type Backend interface {
	// Register claims the combination for id. The returned handle must be
	// released exactly once by its owner.
	Register(id ID, c shortcut.Configuration) (*Handle, error)

	// InstallHandler installs the process-wide event handler for sig.
	InstallHandler(sig Signature, fn Handler) error

	// RemoveHandler removes the handler for sig. Handles registered under sig
	// must be released first.
	RemoveHandler(sig Signature)

	// Name returns a human-readable name for this backend (for logging).
	Name() string

	// IsAvailable returns true if this backend can be used on the current system.
	IsAvailable() bool
}

// Handle is an owned OS hotkey registration. It is never copied or shared;
// only the registry that created it calls Release.
type Handle struct {
	id       ID
	config   shortcut.Configuration
	release  func() error
	released bool
}

// NewHandle wraps a backend-specific release function.
func NewHandle(id ID, c shortcut.Configuration, release func() error) *Handle {
	return &Handle{id: id, config: c, release: release}
}

// ID returns the identifier the handle was registered under.
func (h *Handle) ID() ID { return h.id }

// Configuration returns the registered combination.
func (h *Handle) Configuration() shortcut.Configuration { return h.config }

// Released reports whether Release has been called.
func (h *Handle) Released() bool { return h.released }

// Release returns the registration to the OS. Release failures are logged and
// otherwise ignored: from the caller's perspective unregistering always succeeds.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	if h.release == nil {
		return
	}
	if err := h.release(); err != nil {
		log.Printf("Hotkey %s (%s): error while unregistering: %v", h.id, h.config, err)
	}
}

// handlerTable routes triggers to the handler installed for their signature.
// It is only touched from the event loop.
type handlerTable struct {
	handlers map[Signature]Handler
}

func newHandlerTable() handlerTable {
	return handlerTable{handlers: make(map[Signature]Handler)}
}

func (t *handlerTable) install(sig Signature, fn Handler) error {
	if fn == nil {
		return errors.New("handler is required")
	}
	if _, exists := t.handlers[sig]; exists {
		return fmt.Errorf("handler for signature %08x already installed", uint32(sig))
	}
	t.handlers[sig] = fn
	return nil
}

func (t *handlerTable) remove(sig Signature) {
	delete(t.handlers, sig)
}

func (t *handlerTable) installed(sig Signature) bool {
	_, ok := t.handlers[sig]
	return ok
}

// dispatch forwards a trigger and reports whether anyone handled it.
func (t *handlerTable) dispatch(id ID) bool {
	fn, ok := t.handlers[id.Signature]
	if !ok {
		log.Printf("Hotkey %s: no handler installed, event not handled", id)
		return false
	}
	if !fn(id.Number) {
		log.Printf("Hotkey %s: identifier has no mapping, event not handled", id)
		return false
	}
	return true
}
