package shortcut

// Entry is one per-target activation binding.
type Entry struct {
	TargetID      string        `json:"target_id"`
	Configuration Configuration `json:"configuration"`
}

// BindingGroup is a navigation binding with an optional alternate slot.
type BindingGroup struct {
	Primary   Configuration  `json:"primary"`
	Alternate *Configuration `json:"alternate,omitempty"`
}

// Slots returns the primary and, if set, the alternate configuration.
func (g BindingGroup) Slots() []Configuration {
	if g.Alternate == nil {
		return []Configuration{g.Primary}
	}
	return []Configuration{g.Primary, *g.Alternate}
}

// Matches reports whether either slot is triggered by the key-down.
func (g BindingGroup) Matches(keyCode uint32, raw Modifiers) bool {
	for _, c := range g.Slots() {
		if c.Matches(keyCode, raw) {
			return true
		}
	}
	return false
}

// DigitModifierGroup is a modifier-only binding that selects a numbered slot
// when combined with any digit key.
type DigitModifierGroup struct {
	Primary   *Modifiers `json:"primary_modifiers,omitempty"`
	Alternate *Modifiers `json:"alternate_modifiers,omitempty"`
}

// DigitSlot identifies which half of a DigitModifierGroup matched.
type DigitSlot int

const (
	DigitSlotNone DigitSlot = iota
	DigitSlotPrimary
	DigitSlotAlternate
)

// Match reports which slot, if any, the raw modifier flags select. An unset or
// empty modifier slot never matches, so bare digits keep typing.
func (g DigitModifierGroup) Match(raw Modifiers) DigitSlot {
	mods := raw.Normalize()
	if g.Primary != nil && !g.Primary.Empty() && g.Primary.Normalize() == mods {
		return DigitSlotPrimary
	}
	if g.Alternate != nil && !g.Alternate.Empty() && g.Alternate.Normalize() == mods {
		return DigitSlotAlternate
	}
	return DigitSlotNone
}

// Mods is a convenience for building the optional modifier slots.
func Mods(m Modifiers) *Modifiers {
	return &m
}

// Ptr returns a pointer to a copy of c, for optional alternate slots.
func Ptr(c Configuration) *Configuration {
	return &c
}
