package app

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/config"
	"github.com/TanaroSch/overlay-keys/internal/recording"
	"github.com/TanaroSch/overlay-keys/internal/router"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
	"github.com/TanaroSch/overlay-keys/internal/ui"
)

// captureSession is the loop-owned state of one prompt sequence.
type captureSession struct {
	seq      int
	conflict string
}

// record opens a recording session and shows the capture prompt until the
// user enters a free combination or cancels. apply runs on the loop with the
// captured value. Runs on the loop.
func (a *Application) record(title, excluding string, current shortcut.Configuration, apply func(shortcut.Configuration)) {
	s := &captureSession{}
	err := a.coordinator.Start(recording.Request{
		Title:     title,
		Excluding: excluding,
		OnConflict: func(label string, c shortcut.Configuration) {
			s.conflict = fmt.Sprintf("'%s' is already used by %s.", display(c), label)
			ui.ShowAdminNotification(ui.LevelInfo, "Shortcut In Use", s.conflict)
		},
		OnCapture: apply,
		OnCancel: func() {
			log.Printf("Recording: '%s' left unchanged", title)
		},
	})
	if err != nil {
		ui.ShowAdminNotification(ui.LevelWarn, "Recording Busy", err.Error())
		return
	}
	a.recordSeq++
	s.seq = a.recordSeq
	go a.prompt(s, title, current, apply)
}

// prompt runs the capture dialog off the loop and feeds each answer to the
// coordinator as if it had been typed on the focused surface.
func (a *Application) prompt(s *captureSession, title string, current shortcut.Configuration, apply func(shortcut.Configuration)) {
	feedback := ""
	for {
		c, err := a.dialog.PromptShortcut(title, current, feedback)
		if errors.Is(err, ui.ErrInvalidShortcut) {
			feedback = err.Error()
			continue
		}
		if errors.Is(err, ui.ErrCleared) {
			a.loop.Post(func() {
				if a.sessionOpen(s) {
					a.coordinator.Finish()
					apply(shortcut.Disabled)
				}
			})
			return
		}
		if err != nil {
			if !errors.Is(err, ui.ErrCanceled) {
				log.Printf("Recording: Capture dialog failed: %v", err)
			}
			a.loop.Post(func() {
				if a.sessionOpen(s) {
					a.coordinator.Cancel()
				}
			})
			return
		}

		open := false
		callErr := a.loop.Call(func() {
			if !a.sessionOpen(s) {
				return
			}
			// A conflict reported while the dialog was open (e.g. the
			// global toggle pressed mid-capture) is carried into the next
			// prompt.
			pending := s.conflict
			s.conflict = ""
			a.coordinator.HandleKeyDown(router.KeyEvent{KeyCode: c.KeyCode(), Modifiers: c.Modifiers()})
			if open = a.coordinator.Recording(); !open {
				return
			}
			feedback = s.conflict
			if feedback == "" {
				feedback = fmt.Sprintf("'%s' needs at least one modifier (only F1-F20 work alone).", keyLabel(c))
				if pending != "" {
					feedback = pending + "\n" + feedback
				}
			}
			s.conflict = ""
		})
		if callErr != nil || !open {
			return
		}
		current = c
	}
}

// keyLabel names the key of c. A bare "a" is key code 0 and would otherwise
// render like the disabled sentinel.
func keyLabel(c shortcut.Configuration) string {
	if c.Modifiers().Normalize().Empty() {
		if name, ok := shortcut.KeyName(c.KeyCode()); ok {
			return name
		}
	}
	return c.String()
}

func (a *Application) sessionOpen(s *captureSession) bool {
	return a.recordSeq == s.seq && a.coordinator.Recording()
}

func (a *Application) recordGlobal() {
	a.record("Global Shortcut", "", a.global.Configuration(), a.applyGlobal)
}

func (a *Application) applyGlobal(c shortcut.Configuration) {
	ok, err := a.global.UpdateConfiguration(c)
	switch {
	case err != nil:
		log.Printf("Error: %v", err)
		ui.ShowAdminNotification(ui.LevelError, "Global Shortcut Not Saved", err.Error())
	case !ok && !c.IsDisabled():
		ui.ShowAdminNotification(ui.LevelWarn, "Global Shortcut Inactive",
			fmt.Sprintf("'%s' was saved but another application already uses it.", display(c)))
	default:
		ui.ShowAdminNotification(ui.LevelInfo, "Global Shortcut", "Set to "+display(c))
	}
	a.refreshMenu()
}

func (a *Application) recordTarget(targetID string) {
	t, ok := a.config.Target(targetID)
	if !ok {
		log.Printf("Recording: Unknown target %s", targetID)
		return
	}
	a.record("Activate "+t.Name, "", t.Shortcut, func(c shortcut.Configuration) {
		a.applyTarget(targetID, c)
	})
}

func (a *Application) applyTarget(targetID string, c shortcut.Configuration) {
	if err := a.config.SaveTargetShortcut(targetID, c); err != nil {
		log.Printf("Error: %v", err)
		ui.ShowAdminNotification(ui.LevelError, "Target Shortcut Not Saved", err.Error())
		return
	}
	a.targets.Update(c, targetID)
	name := a.targetName(targetID)
	if !c.IsDisabled() && !a.targets.IsLive(targetID) {
		ui.ShowAdminNotification(ui.LevelWarn, "Target Shortcut Inactive",
			fmt.Sprintf("'%s' for %s was saved but another application already uses it.", display(c), name))
	} else {
		ui.ShowAdminNotification(ui.LevelInfo, "Target Shortcut", fmt.Sprintf("%s set to %s", name, display(c)))
	}
	a.refreshMenu()
}

func (a *Application) recordNavigation(d catalog.Direction, alternate bool) {
	title := d.Label()
	g := a.catalog.Navigation(d)
	current := g.Primary
	if alternate {
		title += " (Alternate)"
		current = shortcut.Disabled
		if g.Alternate != nil {
			current = *g.Alternate
		}
	}
	a.record(title, "", current, func(c shortcut.Configuration) {
		a.applyNavigation(d, alternate, c)
	})
}

func (a *Application) applyNavigation(d catalog.Direction, alternate bool, c shortcut.Configuration) {
	previous := a.catalog.Navigation(d)
	g := previous
	if alternate {
		if c.IsDisabled() {
			g.Alternate = nil
		} else {
			g.Alternate = shortcut.Ptr(c)
		}
	} else {
		g.Primary = c
	}
	a.catalog.SetNavigation(d, g)
	if !a.saveBindings() {
		a.catalog.SetNavigation(d, previous)
		return
	}
	a.refreshMenu()
}

// saveBindings persists the catalog and reports success.
func (a *Application) saveBindings() bool {
	if err := a.config.SaveBindings(a.catalog.State()); err != nil {
		log.Printf("Error: %v", err)
		ui.ShowAdminNotification(ui.LevelError, "Shortcuts Not Saved", err.Error())
		return false
	}
	return true
}

// addAction asks for a name, then records the action's shortcut. Runs on a
// menu goroutine.
func (a *Application) addAction() {
	name, err := a.dialog.AskName("Add Action", "Name of the new action:")
	if err != nil {
		if !errors.Is(err, ui.ErrCanceled) {
			ui.ShowAdminNotification(ui.LevelWarn, "Action Not Added", err.Error())
		}
		return
	}
	a.loop.Post(func() {
		a.record(fmt.Sprintf("action %q", name), "", shortcut.Disabled, func(c shortcut.Configuration) {
			action := config.NewAction(name, c)
			a.catalog.PutAction(action)
			if !a.saveBindings() {
				a.catalog.RemoveAction(action.ID)
				return
			}
			log.Printf("Action '%s' added with %s", name, c)
		})
	})
}

// editAction lets the user pick an action and records a new shortcut for it.
// Runs on a menu goroutine.
func (a *Application) editAction() {
	action, ok := a.chooseAction("Change Action Shortcut", "Action to re-record:")
	if !ok {
		return
	}
	a.loop.Post(func() {
		a.record(fmt.Sprintf("action %q", action.Name), action.ID, action.Configuration, func(c shortcut.Configuration) {
			previous, exists := a.catalog.Action(action.ID)
			if !exists {
				log.Printf("Recording: Action '%s' disappeared while recording", action.Name)
				return
			}
			updated := previous
			updated.Configuration = c
			a.catalog.PutAction(updated)
			if !a.saveBindings() {
				a.catalog.PutAction(previous)
			}
		})
	})
}

// removeAction deletes a user action after the user picks it. Runs on a menu
// goroutine.
func (a *Application) removeAction() {
	action, ok := a.chooseAction("Remove Action", "Action to remove:")
	if !ok {
		return
	}
	a.loop.Post(func() {
		previous := a.catalog.Actions()
		a.catalog.RemoveAction(action.ID)
		if !a.saveBindings() {
			a.catalog.SetActions(previous)
			return
		}
		ui.ShowAdminNotification(ui.LevelInfo, "Action Removed", action.Name)
	})
}

func (a *Application) chooseAction(title, prompt string) (catalog.Action, bool) {
	var actions []catalog.Action
	if err := a.loop.Call(func() { actions = a.catalog.Actions() }); err != nil {
		return catalog.Action{}, false
	}
	if len(actions) == 0 {
		a.dialog.Info(title, "No actions defined yet.")
		return catalog.Action{}, false
	}

	byLabel := make(map[string]catalog.Action, len(actions))
	labels := make([]string, 0, len(actions))
	for _, act := range actions {
		label := fmt.Sprintf("%s (%s)", act.Name, display(act.Configuration))
		byLabel[label] = act
		labels = append(labels, label)
	}
	sort.Strings(labels)

	choice, err := a.dialog.Choose(title, prompt, labels)
	if err != nil {
		if !errors.Is(err, ui.ErrCanceled) {
			log.Printf("Warning: %s dialog failed: %v", title, err)
		}
		return catalog.Action{}, false
	}
	act, ok := byLabel[choice]
	return act, ok
}
