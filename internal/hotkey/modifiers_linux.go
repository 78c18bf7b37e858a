//go:build linux

package hotkey

import (
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
	"golang.design/x/hotkey"
)

// X11 lock masks that commonly interfere with XGrabKey.
// CapsLock is LockMask (1<<1) and NumLock is often Mod2.
const (
	linuxCapsLockMask hotkey.Modifier = 1 << 1
)

// platformModifiers converts a modifier bitset into golang.design/x/hotkey modifiers.
//
// Linux implementation notes (X11):
// - Alt is typically Mod1
// - Super/Win is typically Mod4
func platformModifiers(m shortcut.Modifiers) ([]hotkey.Modifier, error) {
	m = m.Normalize()
	var modifiers []hotkey.Modifier
	if m.Has(shortcut.Control) {
		modifiers = append(modifiers, hotkey.ModCtrl)
	}
	if m.Has(shortcut.Option) {
		modifiers = append(modifiers, hotkey.Mod1)
	}
	if m.Has(shortcut.Shift) {
		modifiers = append(modifiers, hotkey.ModShift)
	}
	if m.Has(shortcut.Command) {
		modifiers = append(modifiers, hotkey.Mod4)
	}
	return modifiers, nil
}

func expandModifiers(modifiers []hotkey.Modifier) [][]hotkey.Modifier {
	// Register the same hotkey for common lock-modifier states so it still
	// triggers when NumLock/CapsLock are enabled.
	base := append([]hotkey.Modifier(nil), modifiers...)
	withNum := append(append([]hotkey.Modifier(nil), modifiers...), hotkey.Mod2)
	withCaps := append(append([]hotkey.Modifier(nil), modifiers...), linuxCapsLockMask)
	withBoth := append(append([]hotkey.Modifier(nil), modifiers...), hotkey.Mod2, linuxCapsLockMask)

	return [][]hotkey.Modifier{base, withNum, withCaps, withBoth}
}
