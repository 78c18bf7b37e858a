package app

import (
	"log"

	"github.com/TanaroSch/overlay-keys/internal/router"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
	"github.com/TanaroSch/overlay-keys/internal/ui"
)

// Surface is the overlay window. All methods are called on the event loop.
type Surface interface {
	// Toggle shows or hides the overlay (global shortcut).
	Toggle()
	// Activate brings the given target to the front (per-target shortcut).
	Activate(targetID string)
	// Dispatch performs a routed focused-keystroke command.
	Dispatch(cmd router.Command)
	// Terminate quits the application (kill switch).
	Terminate()
}

// Dialog is the native UI used while recording bindings.
type Dialog interface {
	PromptShortcut(title string, current shortcut.Configuration, feedback string) (shortcut.Configuration, error)
	AskName(title, prompt string) (string, error)
	Choose(title, prompt string, items []string) (string, error)
	Info(title, message string)
}

// logSurface stands in for the overlay window when none is attached.
type logSurface struct {
	visible bool
	quit    func()
}

func (s *logSurface) Toggle() {
	s.visible = !s.visible
	state := "hidden"
	if s.visible {
		state = "shown"
	}
	log.Printf("Overlay %s.", state)
	ui.ShowTriggerNotification("Overlay", "Overlay "+state)
}

func (s *logSurface) Activate(targetID string) {
	s.visible = true
	log.Printf("Activate target '%s'.", targetID)
	ui.ShowTriggerNotification("Overlay", "Activated "+targetID)
}

func (s *logSurface) Dispatch(cmd router.Command) {
	if cmd.Kind == router.Hide {
		s.visible = false
	}
	log.Printf("Command: %s", cmd)
}

func (s *logSurface) Terminate() {
	log.Println("Kill switch pressed.")
	if s.quit != nil {
		s.quit()
	}
}
