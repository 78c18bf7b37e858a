//go:build windows

package hotkey

import (
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
	"golang.design/x/hotkey"
)

// platformModifiers converts a modifier bitset into golang.design/x/hotkey modifiers.
// On Windows, command is treated as the Windows key.
func platformModifiers(m shortcut.Modifiers) ([]hotkey.Modifier, error) {
	m = m.Normalize()
	var modifiers []hotkey.Modifier
	if m.Has(shortcut.Control) {
		modifiers = append(modifiers, hotkey.ModCtrl)
	}
	if m.Has(shortcut.Option) {
		modifiers = append(modifiers, hotkey.ModAlt)
	}
	if m.Has(shortcut.Shift) {
		modifiers = append(modifiers, hotkey.ModShift)
	}
	if m.Has(shortcut.Command) {
		modifiers = append(modifiers, hotkey.ModWin)
	}
	return modifiers, nil
}

func expandModifiers(modifiers []hotkey.Modifier) [][]hotkey.Modifier {
	return [][]hotkey.Modifier{modifiers}
}
