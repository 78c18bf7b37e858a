// Package conflict decides whether a candidate shortcut may be assigned.
package conflict

import (
	"fmt"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// GlobalSource provides the configured global toggle.
type GlobalSource interface {
	Configuration() shortcut.Configuration
}

// TargetSource provides the accepted per-target activation bindings.
type TargetSource interface {
	Bindings() []shortcut.Entry
}

// Labelled pairs a configuration with the label that owns it.
type Labelled struct {
	Label         string
	Configuration shortcut.Configuration
}

// Validator checks candidates against every binding category. Its methods are
// total: they never fail and never touch the OS.
type Validator struct {
	global  GlobalSource
	targets TargetSource
	catalog *catalog.Catalog
	names   func(targetID string) string
}

// New creates a validator over the live binding state. names resolves a
// target id to its display name; nil falls back to the id.
func New(global GlobalSource, targets TargetSource, cat *catalog.Catalog, names func(targetID string) string) *Validator {
	if names == nil {
		names = func(id string) string { return id }
	}
	return &Validator{global: global, targets: targets, catalog: cat, names: names}
}

// Allows reports whether c may be used at all. A candidate without modifiers
// is allowed only on a function key, so ordinary typing is never captured.
func (v *Validator) Allows(c shortcut.Configuration) bool {
	if c.Modifiers().Empty() {
		return shortcut.IsFunctionKey(c.KeyCode())
	}
	return true
}

// ReservedLabel returns the label of the first binding already using c.
// Categories are checked in a fixed order: global toggle, targets,
// navigation, built-in shortcuts, user actions, digit groups. The user action
// whose id equals excluding is skipped.
func (v *Validator) ReservedLabel(c shortcut.Configuration, excluding string) (string, bool) {
	if c.IsDisabled() {
		return "", false
	}
	c = c.Normalized()
	for _, check := range []func(shortcut.Configuration, string) (string, bool){
		v.globalLabel,
		v.targetLabel,
		v.navigationLabel,
		reservedLabel,
		v.actionLabel,
		v.digitLabel,
	} {
		if label, ok := check(c, excluding); ok {
			return label, true
		}
	}
	return "", false
}

func (v *Validator) globalLabel(c shortcut.Configuration, _ string) (string, bool) {
	if v.global != nil && v.global.Configuration().Same(c) {
		return "Global Shortcut", true
	}
	return "", false
}

func (v *Validator) targetLabel(c shortcut.Configuration, _ string) (string, bool) {
	if v.targets == nil {
		return "", false
	}
	for _, e := range v.targets.Bindings() {
		if e.Configuration.Same(c) {
			return "Activate " + v.names(e.TargetID), true
		}
	}
	return "", false
}

func (v *Validator) navigationLabel(c shortcut.Configuration, _ string) (string, bool) {
	for _, d := range catalog.Directions {
		g := v.catalog.Navigation(d)
		if g.Primary.Same(c) {
			return d.Label(), true
		}
		if g.Alternate != nil && g.Alternate.Same(c) {
			return d.Label() + " (Alternate)", true
		}
	}
	return "", false
}

func reservedLabel(c shortcut.Configuration, _ string) (string, bool) {
	for _, r := range reserved {
		for _, rc := range r.configs {
			if rc.Same(c) {
				return r.label, true
			}
		}
	}
	return "", false
}

func (v *Validator) actionLabel(c shortcut.Configuration, excluding string) (string, bool) {
	for _, a := range v.catalog.Actions() {
		if excluding != "" && a.ID == excluding {
			continue
		}
		if a.Configuration.Same(c) {
			return fmt.Sprintf("Used by %q", a.Name), true
		}
	}
	return "", false
}

func (v *Validator) digitLabel(c shortcut.Configuration, _ string) (string, bool) {
	d, ok := shortcut.Digit(c.KeyCode())
	if !ok {
		return "", false
	}
	switch v.catalog.SessionDigits().Match(c.Modifiers()) {
	case shortcut.DigitSlotPrimary:
		return fmt.Sprintf("Go to Session %d", d), true
	case shortcut.DigitSlotAlternate:
		return fmt.Sprintf("Go to Session %d (Alternate)", d), true
	}
	switch v.catalog.EngineDigits().Match(c.Modifiers()) {
	case shortcut.DigitSlotPrimary:
		return fmt.Sprintf("Go to Engine %d", d), true
	case shortcut.DigitSlotAlternate:
		return fmt.Sprintf("Go to Engine %d (Secondary)", d), true
	}
	return "", false
}
