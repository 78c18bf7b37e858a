//go:build !windows && !linux && !darwin

package hotkey

import (
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
	"golang.design/x/hotkey"
)

// platformModifiers is not implemented on this OS.
func platformModifiers(shortcut.Modifiers) ([]hotkey.Modifier, error) {
	return nil, ErrBackendNotAvailable
}

func expandModifiers(modifiers []hotkey.Modifier) [][]hotkey.Modifier {
	return [][]hotkey.Modifier{modifiers}
}
