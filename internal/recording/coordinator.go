// Package recording runs interactive capture of a new shortcut while normal
// triggering is suspended.
package recording

import (
	"errors"
	"log"

	"github.com/TanaroSch/overlay-keys/internal/conflict"
	"github.com/TanaroSch/overlay-keys/internal/hotkey"
	"github.com/TanaroSch/overlay-keys/internal/router"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// ErrRecordingActive is returned by Start while another session is open.
var ErrRecordingActive = errors.New("a shortcut is already being recorded")

// Request describes one capture session.
type Request struct {
	// Title names the binding being recorded, for logs and prompts.
	Title string
	// Excluding is the id of the user action being re-recorded, so its own
	// current value is not reported as a conflict.
	Excluding string
	// OnConflict is called for every candidate that is already taken. The
	// session stays open.
	OnConflict func(label string, c shortcut.Configuration)
	// OnCapture receives the first conflict-free candidate. The suspension is
	// already cleared when it runs.
	OnCapture func(c shortcut.Configuration)
	// OnCancel runs when the session ends without a capture.
	OnCancel func()
}

type session struct {
	req         Request
	unsubscribe func()
}

// Coordinator owns the suspension token for the duration of a session.
type Coordinator struct {
	suspension *hotkey.Suspension
	validator  *conflict.Validator
	confine    func(op string)
	active     *session
}

// New creates a coordinator. confine may be nil.
func New(suspension *hotkey.Suspension, validator *conflict.Validator, confine func(op string)) *Coordinator {
	if confine == nil {
		confine = func(string) {}
	}
	return &Coordinator{suspension: suspension, validator: validator, confine: confine}
}

// Recording reports whether a session is open.
func (c *Coordinator) Recording() bool {
	return c.active != nil
}

// Title returns the title of the open session, if any.
func (c *Coordinator) Title() string {
	if c.active == nil {
		return ""
	}
	return c.active.req.Title
}

// Start suspends both registries and opens a capture session. OS triggers
// that fire while recording are reported through OnConflict.
func (c *Coordinator) Start(req Request) error {
	c.confine("Coordinator.Start")
	if c.active != nil {
		return ErrRecordingActive
	}
	s := &session{req: req}
	c.suspension.Suspend()
	s.unsubscribe = c.suspension.Subscribe(func(pressed shortcut.Configuration) {
		label, ok := c.validator.ReservedLabel(pressed, req.Excluding)
		if !ok {
			label = "Global Shortcut"
		}
		c.conflict(s, label, pressed)
	})
	c.active = s
	log.Printf("Recording: Started for %s", req.Title)
	return nil
}

// HandleKeyDown offers a focused key-down to the open session. It reports
// whether the event was consumed; with no session open nothing is consumed.
func (c *Coordinator) HandleKeyDown(ev router.KeyEvent) bool {
	c.confine("Coordinator.HandleKeyDown")
	s := c.active
	if s == nil {
		return false
	}
	if ev.KeyCode == shortcut.KeyEscape && ev.Modifiers.Empty() {
		c.Cancel()
		return true
	}
	if shortcut.IsModifierKey(ev.KeyCode) {
		return true
	}
	candidate := ev.Configuration()
	if !c.validator.Allows(candidate) {
		return true
	}
	if label, taken := c.validator.ReservedLabel(candidate, s.req.Excluding); taken {
		c.conflict(s, label, candidate)
		return true
	}

	c.Finish()
	log.Printf("Recording: Captured '%s' for %s", candidate, s.req.Title)
	if s.req.OnCapture != nil {
		s.req.OnCapture(candidate)
	}
	return true
}

// Finish closes the session and clears the suspension. It is safe to call
// with no session open.
func (c *Coordinator) Finish() {
	c.confine("Coordinator.Finish")
	if s := c.active; s != nil {
		s.unsubscribe()
		c.active = nil
	}
	c.suspension.Resume()
}

// Cancel closes the session without changing any binding.
func (c *Coordinator) Cancel() {
	c.confine("Coordinator.Cancel")
	s := c.active
	c.Finish()
	if s == nil {
		return
	}
	log.Printf("Recording: Cancelled for %s", s.req.Title)
	if s.req.OnCancel != nil {
		s.req.OnCancel()
	}
}

func (c *Coordinator) conflict(s *session, label string, candidate shortcut.Configuration) {
	log.Printf("Recording: '%s' is already used by %s", candidate, label)
	if s.req.OnConflict != nil {
		s.req.OnConflict(label, candidate)
	}
}
