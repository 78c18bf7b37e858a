// Package router maps focused keystrokes to commands through a fixed,
// first-match-wins chain of steps.
package router

import (
	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// KeyEvent is a key-down delivered while the content surface has focus.
// Modifiers are raw event flags; incidental bits are ignored when matching.
type KeyEvent struct {
	KeyCode   uint32
	Modifiers shortcut.Modifiers
}

// Configuration returns the normalized configuration the event would record.
func (ev KeyEvent) Configuration() shortcut.Configuration {
	return shortcut.New(ev.KeyCode, ev.Modifiers.Normalize())
}

// Bindings is the binding state the router reads on every keystroke.
type Bindings interface {
	Navigation(d catalog.Direction) shortcut.BindingGroup
	Actions() []catalog.Action
	Targets() []shortcut.Entry
	TargetCount() int
	SessionDigits() shortcut.DigitModifierGroup
	EngineDigits() shortcut.DigitModifierGroup
}

// Step is one link in the dispatch chain.
type Step struct {
	Name  string
	Match func(b Bindings, ev KeyEvent) (Command, bool)
}

var steps = []Step{
	{Name: "kill-switch", Match: matchKillSwitch},
	{Name: "navigation", Match: matchNavigation},
	{Name: "actions", Match: matchActions},
	{Name: "targets", Match: matchTargets},
	{Name: "digits", Match: matchDigits},
	{Name: "built-in", Match: matchBuiltIn},
}

// Steps returns the dispatch chain in evaluation order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Route runs ev through the chain. The first matching step wins and the event
// is consumed; false means the event passes through unchanged.
func Route(b Bindings, ev KeyEvent) (Command, bool) {
	for _, s := range steps {
		if cmd, ok := s.Match(b, ev); ok {
			return cmd, true
		}
	}
	return Command{}, false
}

func matchKillSwitch(_ Bindings, ev KeyEvent) (Command, bool) {
	if shortcut.Terminate.Matches(ev.KeyCode, ev.Modifiers) {
		return Command{Kind: Terminate}, true
	}
	return Command{}, false
}

func matchNavigation(b Bindings, ev KeyEvent) (Command, bool) {
	for _, d := range catalog.Directions {
		if b.Navigation(d).Matches(ev.KeyCode, ev.Modifiers) {
			return Command{Kind: Navigate, Direction: d}, true
		}
	}
	return Command{}, false
}

func matchActions(b Bindings, ev KeyEvent) (Command, bool) {
	for _, a := range b.Actions() {
		if a.Configuration.Matches(ev.KeyCode, ev.Modifiers) {
			return Command{Kind: RunAction, ActionID: a.ID}, true
		}
	}
	return Command{}, false
}

func matchTargets(b Bindings, ev KeyEvent) (Command, bool) {
	for _, e := range b.Targets() {
		if e.Configuration.Matches(ev.KeyCode, ev.Modifiers) {
			return Command{Kind: ActivateTarget, TargetID: e.TargetID}, true
		}
	}
	return Command{}, false
}

// matchDigits maps digit d to index d-1 and 0 to index 9. Engine digit 0 only
// matches when there are at least ten targets.
func matchDigits(b Bindings, ev KeyEvent) (Command, bool) {
	d, ok := shortcut.Digit(ev.KeyCode)
	if !ok {
		return Command{}, false
	}
	index := d - 1
	if d == 0 {
		index = 9
	}
	if b.SessionDigits().Match(ev.Modifiers) != shortcut.DigitSlotNone {
		return Command{Kind: SelectSession, Index: index}, true
	}
	if b.EngineDigits().Match(ev.Modifiers) != shortcut.DigitSlotNone {
		if d == 0 && b.TargetCount() < 10 {
			return Command{}, false
		}
		return Command{Kind: SelectEngine, Index: index}, true
	}
	return Command{}, false
}

type builtIn struct {
	config shortcut.Configuration
	kind   Kind
}

// builtIns all require Command. Find-next with Shift searches backwards.
var builtIns = []builtIn{
	{shortcut.New(shortcut.KeyComma, shortcut.Command), OpenSettings},
	{shortcut.New(shortcut.KeyW, shortcut.Command), Hide},
	{shortcut.New(shortcut.KeyR, shortcut.Command), Reload},
	{shortcut.New(shortcut.KeyF, shortcut.Command), Find},
	{shortcut.New(shortcut.KeyG, shortcut.Command), FindNext},
	{shortcut.New(shortcut.KeyG, shortcut.Command|shortcut.Shift), FindPrevious},
	{shortcut.New(shortcut.KeyEqual, shortcut.Command), ZoomIn},
	{shortcut.New(shortcut.KeyEqual, shortcut.Command|shortcut.Shift), ZoomIn},
	{shortcut.New(shortcut.KeyKeypadPlus, shortcut.Command), ZoomIn},
	{shortcut.New(shortcut.KeyMinus, shortcut.Command), ZoomOut},
	{shortcut.New(shortcut.KeyKeypadMinus, shortcut.Command), ZoomOut},
	{shortcut.New(shortcut.KeyDelete, shortcut.Command), ResetZoom},
	{shortcut.New(shortcut.KeyForwardDelete, shortcut.Command), ResetZoom},
}

// BuiltIns returns the fixed step-six shortcuts, for the cheat sheet.
func BuiltIns() map[shortcut.Configuration]Kind {
	out := make(map[shortcut.Configuration]Kind, len(builtIns))
	for _, bi := range builtIns {
		out[bi.config] = bi.kind
	}
	return out
}

func matchBuiltIn(_ Bindings, ev KeyEvent) (Command, bool) {
	if !ev.Modifiers.Has(shortcut.Command) {
		return Command{}, false
	}
	for _, bi := range builtIns {
		if bi.config.Matches(ev.KeyCode, ev.Modifiers) {
			return Command{Kind: bi.kind}, true
		}
	}
	return Command{}, false
}
