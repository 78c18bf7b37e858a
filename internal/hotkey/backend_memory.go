package hotkey

import (
	"log"

	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// MemoryBackend keeps registrations in process memory. It is selected when no
// supported display server is present: bindings are validated and tracked but
// only fire through Press. Tests use it to simulate the OS.
type MemoryBackend struct {
	handlers handlerTable
	live     map[ID]shortcut.Configuration
	refused  map[shortcut.Configuration]bool
	released int
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		handlers: newHandlerTable(),
		live:     make(map[ID]shortcut.Configuration),
		refused:  make(map[shortcut.Configuration]bool),
	}
}

// Name returns the name of this backend.
func (b *MemoryBackend) Name() string {
	return "In-memory (hotkeys never fire from the OS)"
}

// IsAvailable always returns true.
func (b *MemoryBackend) IsAvailable() bool {
	return true
}

// InstallHandler installs the handler for sig.
func (b *MemoryBackend) InstallHandler(sig Signature, fn Handler) error {
	return b.handlers.install(sig, fn)
}

// RemoveHandler removes the handler for sig.
func (b *MemoryBackend) RemoveHandler(sig Signature) {
	b.handlers.remove(sig)
}

// HandlerInstalled reports whether a handler is installed for sig.
func (b *MemoryBackend) HandlerInstalled(sig Signature) bool {
	return b.handlers.installed(sig)
}

// Register records c under id. Like the OS, it refuses a combination that is
// already live or that was marked with Refuse.
func (b *MemoryBackend) Register(id ID, c shortcut.Configuration) (*Handle, error) {
	key := c.Normalized()
	if b.refused[key] {
		return nil, ErrRegistrationRefused
	}
	for _, other := range b.live {
		if other == key {
			return nil, ErrRegistrationRefused
		}
	}
	b.live[id] = key
	return NewHandle(id, c, func() error {
		delete(b.live, id)
		b.released++
		return nil
	}), nil
}

// Refuse makes future registrations of c fail, as if another process owned it.
// Passing refuse=false lifts the refusal.
func (b *MemoryBackend) Refuse(c shortcut.Configuration, refuse bool) {
	if refuse {
		b.refused[c.Normalized()] = true
		return
	}
	delete(b.refused, c.Normalized())
}

// Press simulates the user pressing c anywhere in the OS. It reports whether
// a live registration existed and its handler accepted the event.
func (b *MemoryBackend) Press(c shortcut.Configuration) bool {
	key := c.Normalized()
	for id, live := range b.live {
		if live == key {
			return b.handlers.dispatch(id)
		}
	}
	log.Printf("Memory backend: '%s' is not registered", c)
	return false
}

// Deliver simulates the OS delivering an arbitrary identifier, including
// stale ones.
func (b *MemoryBackend) Deliver(id ID) bool {
	return b.handlers.dispatch(id)
}

// Live returns the number of live registrations for sig.
func (b *MemoryBackend) Live(sig Signature) int {
	n := 0
	for id := range b.live {
		if id.Signature == sig {
			n++
		}
	}
	return n
}

// IsLive reports whether c is currently registered by anyone.
func (b *MemoryBackend) IsLive(c shortcut.Configuration) bool {
	key := c.Normalized()
	for _, live := range b.live {
		if live == key {
			return true
		}
	}
	return false
}

// Released returns how many handles have been released so far.
func (b *MemoryBackend) Released() int {
	return b.released
}
