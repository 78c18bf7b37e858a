package shortcut

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedKey is returned when a key name or code has no mapping.
var ErrUnsupportedKey = errors.New("unsupported key")

// keyNames maps lower-case names, as written in settings files
// (e.g. "cmd+shift+k"), to key codes.
var keyNames = map[string]uint32{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF, "g": KeyG,
	"h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL, "m": KeyM, "n": KeyN,
	"o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR, "s": KeyS, "t": KeyT, "u": KeyU,
	"v": KeyV, "w": KeyW, "x": KeyX, "y": KeyY, "z": KeyZ,

	"0": Key0, "1": Key1, "2": Key2, "3": Key3, "4": Key4,
	"5": Key5, "6": Key6, "7": Key7, "8": Key8, "9": Key9,

	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4, "f5": KeyF5,
	"f6": KeyF6, "f7": KeyF7, "f8": KeyF8, "f9": KeyF9, "f10": KeyF10,
	"f11": KeyF11, "f12": KeyF12, "f13": KeyF13, "f14": KeyF14, "f15": KeyF15,
	"f16": KeyF16, "f17": KeyF17, "f18": KeyF18, "f19": KeyF19, "f20": KeyF20,

	"space":         KeySpace,
	"tab":           KeyTab,
	"enter":         KeyReturn,
	"escape":        KeyEscape,
	"delete":        KeyDelete,
	"forwarddelete": KeyForwardDelete,
	"home":          KeyHome,
	"end":           KeyEnd,
	"pageup":        KeyPageUp,
	"pagedown":      KeyPageDown,
	"left":          KeyLeft,
	"right":         KeyRight,
	"up":            KeyUp,
	"down":          KeyDown,

	"-":  KeyMinus,
	"=":  KeyEqual,
	",":  KeyComma,
	".":  KeyPeriod,
	"/":  KeySlash,
	";":  KeySemicolon,
	"'":  KeyQuote,
	"\\": KeyBackslash,
	"[":  KeyLeftBracket,
	"]":  KeyRightBracket,
	"`":  KeyGrave,

	"num0": KeyKeypad0, "num1": KeyKeypad1, "num2": KeyKeypad2, "num3": KeyKeypad3, "num4": KeyKeypad4,
	"num5": KeyKeypad5, "num6": KeyKeypad6, "num7": KeyKeypad7, "num8": KeyKeypad8, "num9": KeyKeypad9,
	"numplus":     KeyKeypadPlus,
	"numminus":    KeyKeypadMinus,
	"nummultiply": KeyKeypadMultiply,
	"numdivide":   KeyKeypadDivide,
	"numdecimal":  KeyKeypadDecimal,
	"numenter":    KeyKeypadEnter,
	"numequals":   KeyKeypadEquals,
}

// aliases accepted by Parse but never produced by String.
var keyAliases = map[string]uint32{
	"return":    KeyReturn,
	"esc":       KeyEscape,
	"backspace": KeyDelete,
	"del":       KeyForwardDelete,
	"minus":     KeyMinus,
	"equal":     KeyEqual,
	"plus":      KeyEqual,
	"comma":     KeyComma,
	"period":    KeyPeriod,
	"slash":     KeySlash,
}

var nameByCode = func() map[uint32]string {
	m := make(map[uint32]string, len(keyNames))
	for name, code := range keyNames {
		m[code] = name
	}
	return m
}()

var modifierNames = map[string]Modifiers{
	"cmd":     Command,
	"command": Command,
	"super":   Command,
	"win":     Command,
	"alt":     Option,
	"opt":     Option,
	"option":  Option,
	"ctrl":    Control,
	"control": Control,
	"shift":   Shift,
}

// KeyName returns the settings-file name of keyCode.
func KeyName(keyCode uint32) (string, bool) {
	name, ok := nameByCode[keyCode]
	return name, ok
}

// KeyNames returns every key name understood by Parse, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keyNames))
	for name := range keyNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse converts a string combination (e.g. "ctrl+alt+v") into a
// Configuration. The empty string and "none" parse as Disabled.
func Parse(s string) (Configuration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return Disabled, nil
	}
	parts := strings.Split(s, "+")

	// Get the key (last part)
	keyStr := strings.TrimSpace(parts[len(parts)-1])
	key, exists := keyNames[keyStr]
	if !exists {
		key, exists = keyAliases[keyStr]
	}
	if !exists {
		return Disabled, fmt.Errorf("%w: %q", ErrUnsupportedKey, keyStr)
	}

	// Parse modifiers (all parts except the last)
	var mods Modifiers
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierNames[strings.TrimSpace(part)]
		if !ok {
			return Disabled, fmt.Errorf("unsupported modifier: %s", part)
		}
		mods |= mod
	}
	return New(key, mods), nil
}

// String renders c in the form accepted by Parse.
func (c Configuration) String() string {
	if c.IsDisabled() {
		return "none"
	}
	var parts []string
	mods := c.modifiers.Normalize()
	if mods.Has(Control) {
		parts = append(parts, "ctrl")
	}
	if mods.Has(Option) {
		parts = append(parts, "alt")
	}
	if mods.Has(Shift) {
		parts = append(parts, "shift")
	}
	if mods.Has(Command) {
		parts = append(parts, "cmd")
	}
	name, ok := nameByCode[c.keyCode]
	if !ok {
		name = fmt.Sprintf("key%#x", c.keyCode)
	}
	return strings.Join(append(parts, name), "+")
}

var keyGlyphs = map[uint32]string{
	KeySpace:         "Space",
	KeyTab:           "⇥",
	KeyReturn:        "↩",
	KeyEscape:        "⎋",
	KeyDelete:        "⌫",
	KeyForwardDelete: "⌦",
	KeyLeft:          "←",
	KeyRight:         "→",
	KeyUp:            "↑",
	KeyDown:          "↓",
	KeyHome:          "↖",
	KeyEnd:           "↘",
	KeyPageUp:        "⇞",
	KeyPageDown:      "⇟",
	KeyKeypadPlus:    "+",
	KeyKeypadMinus:   "-",
	KeyKeypadEnter:   "⌤",
}

// Glyphs renders c with modifier symbols, e.g. "⌃⌥⇧⌘K".
func (c Configuration) Glyphs() string {
	if c.IsDisabled() {
		return ""
	}
	return ModifierGlyphs(c.modifiers) + keyGlyph(c.keyCode)
}

// ModifierGlyphs renders the significant bits of m in the conventional order.
func ModifierGlyphs(m Modifiers) string {
	var b strings.Builder
	m = m.Normalize()
	if m.Has(Control) {
		b.WriteString("⌃")
	}
	if m.Has(Option) {
		b.WriteString("⌥")
	}
	if m.Has(Shift) {
		b.WriteString("⇧")
	}
	if m.Has(Command) {
		b.WriteString("⌘")
	}
	return b.String()
}

func keyGlyph(keyCode uint32) string {
	if g, ok := keyGlyphs[keyCode]; ok {
		return g
	}
	if d, ok := keypadDigits[keyCode]; ok {
		return fmt.Sprintf("%d", d)
	}
	if name, ok := nameByCode[keyCode]; ok {
		return strings.ToUpper(name)
	}
	return "?"
}
