package shortcut

import (
	"encoding/json"
	"fmt"
)

// Modifiers is a modifier-key bitset. The bit values match the platform-neutral
// event flags delivered by the focused-keystroke collaborator, so raw event
// flags can be stored directly and normalized later.
type Modifiers uint

const (
	CapsLock   Modifiers = 1 << 16
	Shift      Modifiers = 1 << 17
	Control    Modifiers = 1 << 18
	Option     Modifiers = 1 << 19
	Command    Modifiers = 1 << 20
	NumericPad Modifiers = 1 << 21
	Help       Modifiers = 1 << 22
	Function   Modifiers = 1 << 23
)

// Significant is the set of modifiers that take part in shortcut comparison.
const Significant = Command | Option | Control | Shift

// Normalize drops every bit outside Significant.
func (m Modifiers) Normalize() Modifiers {
	return m & Significant
}

// Has reports whether all bits in o are set.
func (m Modifiers) Has(o Modifiers) bool {
	return m&o == o
}

// Empty reports whether no significant modifier is set.
func (m Modifiers) Empty() bool {
	return m.Normalize() == 0
}

// Configuration is one key binding: a key code plus a modifier bitset.
// Values are immutable; replace the whole value to change a binding.
// Two configurations are equal iff their key codes and modifiers are equal,
// so Configuration can be compared with == and used as a map key.
type Configuration struct {
	keyCode   uint32
	modifiers Modifiers
}

// Disabled is the sentinel for "no binding".
var Disabled = Configuration{}

// New builds a configuration. Modifiers are stored as given; callers building
// from raw events should Normalize first.
func New(keyCode uint32, modifiers Modifiers) Configuration {
	return Configuration{keyCode: keyCode, modifiers: modifiers}
}

// KeyCode returns the virtual key code.
func (c Configuration) KeyCode() uint32 { return c.keyCode }

// Modifiers returns the modifier bitset.
func (c Configuration) Modifiers() Modifiers { return c.modifiers }

// IsDisabled reports whether c is the disabled sentinel.
func (c Configuration) IsDisabled() bool {
	return c.keyCode == 0 && c.modifiers == 0
}

// Matches reports whether a key-down with the given key code and raw modifier
// flags triggers c. A disabled configuration never matches.
func (c Configuration) Matches(keyCode uint32, raw Modifiers) bool {
	if c.IsDisabled() {
		return false
	}
	return c.keyCode == keyCode && c.modifiers.Normalize() == raw.Normalize()
}

// Normalized returns c with incidental modifier bits removed.
func (c Configuration) Normalized() Configuration {
	return Configuration{keyCode: c.keyCode, modifiers: c.modifiers.Normalize()}
}

// Same reports whether c and o describe the same key combination once
// incidental modifier bits are ignored.
func (c Configuration) Same(o Configuration) bool {
	return c.Normalized() == o.Normalized()
}

type configurationJSON struct {
	KeyCode       uint32 `json:"key_code"`
	ModifierFlags uint   `json:"modifier_flags"`
}

// MarshalJSON encodes c as {"key_code": ..., "modifier_flags": ...}.
func (c Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(configurationJSON{KeyCode: c.keyCode, ModifierFlags: uint(c.modifiers)})
}

// UnmarshalJSON accepts the object form and, for hand-edited settings files,
// the string form understood by Parse.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	var raw configurationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid shortcut configuration: %w", err)
	}
	*c = New(raw.KeyCode, Modifiers(raw.ModifierFlags))
	return nil
}
