package hotkey

import (
	"log"

	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// TargetSignature tags hotkeys owned by the TargetRegistry.
const TargetSignature Signature = 0x4F564C54 // "OVLT"

// TargetRegistry owns one OS hotkey per addressable target.
//
// The OS round-trips only a small integer on trigger, so the registry keeps an
// explicit arena keyed by that integer. Identifiers start at 1, increase
// monotonically and are never reused by the same registry, which keeps the
// identifier→target map unambiguous. All four maps are updated together.
type TargetRegistry struct {
	backend    Backend
	suspension *Suspension
	opts       options

	onTrigger        func(targetID string)
	handlerInstalled bool
	nextNumber       uint32

	handles map[string]*Handle
	numbers map[string]uint32
	targets map[uint32]string
	configs map[string]shortcut.Configuration
	order   []string
}

// NewTargetRegistry creates an empty registry.
func NewTargetRegistry(backend Backend, suspension *Suspension, opts ...Option) *TargetRegistry {
	return &TargetRegistry{
		backend:    backend,
		suspension: suspension,
		opts:       buildOptions(opts),
		handles:    make(map[string]*Handle),
		numbers:    make(map[string]uint32),
		targets:    make(map[uint32]string),
		configs:    make(map[string]shortcut.Configuration),
	}
}

// Register is a full resync: everything currently held is unregistered, then
// entries are processed in order. An entry whose configuration equals one
// already processed in this call is skipped and never becomes triggerable.
// Disabled configurations are skipped as well.
func (r *TargetRegistry) Register(entries []shortcut.Entry, onTrigger func(targetID string)) {
	r.opts.confine("TargetRegistry.Register")
	r.unregisterAll()
	r.onTrigger = onTrigger
	if err := r.installHandler(); err != nil {
		log.Printf("Target hotkeys: Failed to install event handler: %v", err)
		return
	}

	claimed := make(map[shortcut.Configuration]string, len(entries))
	for _, e := range entries {
		if e.Configuration.IsDisabled() {
			continue
		}
		key := e.Configuration.Normalized()
		if owner, dup := claimed[key]; dup {
			log.Printf("Target hotkeys: Skipping '%s' for target %s, already used by target %s",
				e.Configuration, e.TargetID, owner)
			continue
		}
		claimed[key] = e.TargetID
		r.add(e.TargetID, e.Configuration)
	}
	log.Printf("Target hotkeys: %d of %d entries registered", len(r.order), len(entries))
}

// Update replaces the binding for targetID. A disabled configuration just
// removes it.
func (r *TargetRegistry) Update(c shortcut.Configuration, targetID string) {
	r.opts.confine("TargetRegistry.Update")
	r.unregister(targetID)
	if c.IsDisabled() {
		return
	}
	if err := r.installHandler(); err != nil {
		log.Printf("Target hotkeys: Failed to install event handler: %v", err)
		return
	}
	r.add(targetID, c)
}

// Unregister removes targetID. Unknown targets are ignored.
func (r *TargetRegistry) Unregister(targetID string) {
	r.opts.confine("TargetRegistry.Unregister")
	r.unregister(targetID)
}

// Reset unregisters every entry but keeps the event handler installed.
func (r *TargetRegistry) Reset() {
	r.opts.confine("TargetRegistry.Reset")
	r.unregisterAll()
}

// Disable unregisters every entry and then removes the event handler.
func (r *TargetRegistry) Disable() {
	r.opts.confine("TargetRegistry.Disable")
	r.unregisterAll()
	if r.handlerInstalled {
		r.backend.RemoveHandler(TargetSignature)
		r.handlerInstalled = false
	}
	log.Println("Target hotkeys: Disabled")
}

// Configuration returns the accepted configuration for targetID.
func (r *TargetRegistry) Configuration(targetID string) (shortcut.Configuration, bool) {
	c, ok := r.configs[targetID]
	return c, ok
}

// IsLive reports whether targetID currently holds an OS registration.
func (r *TargetRegistry) IsLive(targetID string) bool {
	return r.handles[targetID] != nil
}

// Identifier returns the number allocated to targetID.
func (r *TargetRegistry) Identifier(targetID string) (uint32, bool) {
	n, ok := r.numbers[targetID]
	return n, ok
}

// Bindings returns the accepted entries in registration order.
func (r *TargetRegistry) Bindings() []shortcut.Entry {
	out := make([]shortcut.Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, shortcut.Entry{TargetID: id, Configuration: r.configs[id]})
	}
	return out
}

// Len returns the number of accepted entries.
func (r *TargetRegistry) Len() int {
	return len(r.order)
}

func (r *TargetRegistry) installHandler() error {
	if r.handlerInstalled {
		return nil
	}
	if err := r.backend.InstallHandler(TargetSignature, r.handle); err != nil {
		return err
	}
	r.handlerInstalled = true
	return nil
}

// add allocates the next identifier for targetID. A refused OS registration
// leaves the entry configured but inactive until the next Register or Update.
func (r *TargetRegistry) add(targetID string, c shortcut.Configuration) {
	if _, exists := r.numbers[targetID]; exists {
		r.unregister(targetID)
	}
	r.nextNumber++
	number := r.nextNumber

	r.numbers[targetID] = number
	r.targets[number] = targetID
	r.configs[targetID] = c
	r.order = append(r.order, targetID)

	h, err := r.backend.Register(ID{Signature: TargetSignature, Number: number}, c)
	if err != nil {
		log.Printf("Target hotkeys: '%s' for target %s is configured but inactive: %v", c, targetID, err)
		return
	}
	r.handles[targetID] = h
}

func (r *TargetRegistry) unregister(targetID string) {
	number, ok := r.numbers[targetID]
	if !ok {
		return
	}
	if h := r.handles[targetID]; h != nil {
		h.Release()
	}
	delete(r.handles, targetID)
	delete(r.numbers, targetID)
	delete(r.targets, number)
	delete(r.configs, targetID)
	for i, id := range r.order {
		if id == targetID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *TargetRegistry) unregisterAll() {
	for len(r.order) > 0 {
		r.unregister(r.order[0])
	}
}

// handle is the OS event handler for TargetSignature.
func (r *TargetRegistry) handle(number uint32) bool {
	targetID, ok := r.targets[number]
	if !ok {
		return false
	}
	if r.suspension.Active() {
		r.suspension.PublishReserved(r.configs[targetID])
		return true
	}
	if r.onTrigger != nil {
		r.onTrigger(targetID)
	}
	return true
}
