package catalog

import "github.com/TanaroSch/overlay-keys/internal/shortcut"

// NavigationState is the persisted form of the four navigation groups.
type NavigationState struct {
	NextSession     shortcut.BindingGroup `json:"next_session"`
	PreviousSession shortcut.BindingGroup `json:"previous_session"`
	NextEngine      shortcut.BindingGroup `json:"next_engine"`
	PreviousEngine  shortcut.BindingGroup `json:"previous_engine"`
}

// State is the persisted form of a Catalog.
type State struct {
	Navigation    NavigationState             `json:"navigation"`
	SessionDigits shortcut.DigitModifierGroup `json:"session_digits"`
	EngineDigits  shortcut.DigitModifierGroup `json:"engine_digits"`
	Actions       []Action                    `json:"actions"`
}

// DefaultState returns the factory bindings. Every value is distinct from the
// others, from the reserved combinations and from the default global toggle.
func DefaultState() State {
	return State{
		Navigation: NavigationState{
			NextSession: shortcut.BindingGroup{
				Primary:   shortcut.New(shortcut.KeyTab, shortcut.Control),
				Alternate: shortcut.Ptr(shortcut.New(shortcut.KeyRightBracket, shortcut.Command|shortcut.Shift)),
			},
			PreviousSession: shortcut.BindingGroup{
				Primary:   shortcut.New(shortcut.KeyTab, shortcut.Control|shortcut.Shift),
				Alternate: shortcut.Ptr(shortcut.New(shortcut.KeyLeftBracket, shortcut.Command|shortcut.Shift)),
			},
			NextEngine: shortcut.BindingGroup{
				Primary: shortcut.New(shortcut.KeyDown, shortcut.Command|shortcut.Option),
			},
			PreviousEngine: shortcut.BindingGroup{
				Primary: shortcut.New(shortcut.KeyUp, shortcut.Command|shortcut.Option),
			},
		},
		SessionDigits: shortcut.DigitModifierGroup{
			Primary:   shortcut.Mods(shortcut.Command),
			Alternate: shortcut.Mods(shortcut.Control),
		},
		EngineDigits: shortcut.DigitModifierGroup{
			Primary: shortcut.Mods(shortcut.Command | shortcut.Option),
		},
		Actions: []Action{},
	}
}

// FromState builds a catalog from its persisted form.
func FromState(s State) *Catalog {
	c := &Catalog{}
	c.SetNavigation(NextSession, s.Navigation.NextSession)
	c.SetNavigation(PreviousSession, s.Navigation.PreviousSession)
	c.SetNavigation(NextEngine, s.Navigation.NextEngine)
	c.SetNavigation(PreviousEngine, s.Navigation.PreviousEngine)
	c.SetSessionDigits(s.SessionDigits)
	c.SetEngineDigits(s.EngineDigits)
	c.SetActions(s.Actions)
	return c
}

// State returns the persisted form of c.
func (c *Catalog) State() State {
	return State{
		Navigation: NavigationState{
			NextSession:     c.Navigation(NextSession),
			PreviousSession: c.Navigation(PreviousSession),
			NextEngine:      c.Navigation(NextEngine),
			PreviousEngine:  c.Navigation(PreviousEngine),
		},
		SessionDigits: c.SessionDigits(),
		EngineDigits:  c.EngineDigits(),
		Actions:       c.Actions(),
	}
}
