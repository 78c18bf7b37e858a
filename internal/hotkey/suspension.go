package hotkey

import "github.com/TanaroSch/overlay-keys/internal/shortcut"

// Suspension is the "a shortcut is being recorded" token. One instance is
// created at startup and handed to both registries and the recording
// coordinator. While it is active the registries do not fire their triggers;
// they publish the pressed configuration on the reserved channel instead.
//
// Thread-confined to the event loop.
type Suspension struct {
	active      bool
	nextSubID   int
	subscribers map[int]func(shortcut.Configuration)
}

// NewSuspension returns an inactive token.
func NewSuspension() *Suspension {
	return &Suspension{subscribers: make(map[int]func(shortcut.Configuration))}
}

// Suspend marks recording as in progress.
func (s *Suspension) Suspend() { s.active = true }

// Resume clears the recording flag.
func (s *Suspension) Resume() { s.active = false }

// Active reports whether recording is in progress.
func (s *Suspension) Active() bool { return s.active }

// Subscribe registers fn on the reserved channel. The returned function
// removes the subscription.
func (s *Suspension) Subscribe(fn func(shortcut.Configuration)) (cancel func()) {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

// PublishReserved tells every subscriber that c fired while suspended.
func (s *Suspension) PublishReserved(c shortcut.Configuration) {
	for _, fn := range s.subscribers {
		fn(c)
	}
}
