// Package catalog holds the editable bindings that are not registered with
// the OS: navigation groups, digit-modifier groups and user-defined actions.
package catalog

import (
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// Direction names one of the four navigation bindings.
type Direction int

const (
	NextSession Direction = iota
	PreviousSession
	NextEngine
	PreviousEngine
)

// Directions lists every navigation direction in dispatch order.
var Directions = [...]Direction{NextSession, PreviousSession, NextEngine, PreviousEngine}

// Label is the human-readable name used in menus and conflict messages.
func (d Direction) Label() string {
	switch d {
	case NextSession:
		return "Next Session"
	case PreviousSession:
		return "Previous Session"
	case NextEngine:
		return "Next Engine"
	case PreviousEngine:
		return "Previous Engine"
	}
	return "Unknown"
}

// Action is a user-defined binding that runs a named action.
type Action struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Configuration shortcut.Configuration `json:"shortcut"`
}

// Catalog is plain data: mutators replace whole values and nothing here talks
// to the OS. It is confined to the event loop like the registries.
type Catalog struct {
	navigation    [len(Directions)]shortcut.BindingGroup
	sessionDigits shortcut.DigitModifierGroup
	engineDigits  shortcut.DigitModifierGroup
	actions       []Action
}

// New returns a catalog with the factory bindings.
func New() *Catalog {
	return FromState(DefaultState())
}

// Navigation returns the binding group for d.
func (c *Catalog) Navigation(d Direction) shortcut.BindingGroup {
	return c.navigation[d]
}

// SetNavigation replaces the binding group for d.
func (c *Catalog) SetNavigation(d Direction, g shortcut.BindingGroup) {
	if g.Alternate != nil {
		g.Alternate = shortcut.Ptr(*g.Alternate)
	}
	c.navigation[d] = g
}

// SessionDigits returns the modifiers that select a session slot with a digit.
func (c *Catalog) SessionDigits() shortcut.DigitModifierGroup {
	return c.sessionDigits
}

// SetSessionDigits replaces the session digit group.
func (c *Catalog) SetSessionDigits(g shortcut.DigitModifierGroup) {
	c.sessionDigits = copyDigits(g)
}

// EngineDigits returns the modifiers that select an engine with a digit.
func (c *Catalog) EngineDigits() shortcut.DigitModifierGroup {
	return c.engineDigits
}

// SetEngineDigits replaces the engine digit group.
func (c *Catalog) SetEngineDigits(g shortcut.DigitModifierGroup) {
	c.engineDigits = copyDigits(g)
}

// Actions returns a copy of the user-defined actions in order.
func (c *Catalog) Actions() []Action {
	out := make([]Action, len(c.actions))
	copy(out, c.actions)
	return out
}

// SetActions replaces every user-defined action.
func (c *Catalog) SetActions(actions []Action) {
	c.actions = make([]Action, len(actions))
	copy(c.actions, actions)
}

// Action looks up a user-defined action by id.
func (c *Catalog) Action(id string) (Action, bool) {
	for _, a := range c.actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// PutAction replaces the action with the same id, or appends it.
func (c *Catalog) PutAction(a Action) {
	for i := range c.actions {
		if c.actions[i].ID == a.ID {
			c.actions[i] = a
			return
		}
	}
	c.actions = append(c.actions, a)
}

// RemoveAction deletes the action with the given id. Unknown ids are ignored.
func (c *Catalog) RemoveAction(id string) {
	for i := range c.actions {
		if c.actions[i].ID == id {
			c.actions = append(c.actions[:i], c.actions[i+1:]...)
			return
		}
	}
}

func copyDigits(g shortcut.DigitModifierGroup) shortcut.DigitModifierGroup {
	out := shortcut.DigitModifierGroup{}
	if g.Primary != nil {
		out.Primary = shortcut.Mods(*g.Primary)
	}
	if g.Alternate != nil {
		out.Alternate = shortcut.Mods(*g.Alternate)
	}
	return out
}
