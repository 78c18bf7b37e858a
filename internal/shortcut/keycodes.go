package shortcut

// Virtual key codes for the ANSI layout. The numbering follows the key
// positions reported by the focused-keystroke collaborator, which is also the
// numbering persisted in settings files.
const (
	KeyA            uint32 = 0x00
	KeyS            uint32 = 0x01
	KeyD            uint32 = 0x02
	KeyF            uint32 = 0x03
	KeyH            uint32 = 0x04
	KeyG            uint32 = 0x05
	KeyZ            uint32 = 0x06
	KeyX            uint32 = 0x07
	KeyC            uint32 = 0x08
	KeyV            uint32 = 0x09
	KeyB            uint32 = 0x0B
	KeyQ            uint32 = 0x0C
	KeyW            uint32 = 0x0D
	KeyE            uint32 = 0x0E
	KeyR            uint32 = 0x0F
	KeyY            uint32 = 0x10
	KeyT            uint32 = 0x11
	Key1            uint32 = 0x12
	Key2            uint32 = 0x13
	Key3            uint32 = 0x14
	Key4            uint32 = 0x15
	Key6            uint32 = 0x16
	Key5            uint32 = 0x17
	KeyEqual        uint32 = 0x18
	Key9            uint32 = 0x19
	Key7            uint32 = 0x1A
	KeyMinus        uint32 = 0x1B
	Key8            uint32 = 0x1C
	Key0            uint32 = 0x1D
	KeyRightBracket uint32 = 0x1E
	KeyO            uint32 = 0x1F
	KeyU            uint32 = 0x20
	KeyLeftBracket  uint32 = 0x21
	KeyI            uint32 = 0x22
	KeyP            uint32 = 0x23
	KeyReturn       uint32 = 0x24
	KeyL            uint32 = 0x25
	KeyJ            uint32 = 0x26
	KeyQuote        uint32 = 0x27
	KeyK            uint32 = 0x28
	KeySemicolon    uint32 = 0x29
	KeyBackslash    uint32 = 0x2A
	KeyComma        uint32 = 0x2B
	KeySlash        uint32 = 0x2C
	KeyN            uint32 = 0x2D
	KeyM            uint32 = 0x2E
	KeyPeriod       uint32 = 0x2F
	KeyTab          uint32 = 0x30
	KeySpace        uint32 = 0x31
	KeyGrave        uint32 = 0x32
	KeyDelete       uint32 = 0x33
	KeyEscape       uint32 = 0x35

	KeyRightCommand uint32 = 0x36
	KeyCommand      uint32 = 0x37
	KeyShift        uint32 = 0x38
	KeyCapsLock     uint32 = 0x39
	KeyOption       uint32 = 0x3A
	KeyControl      uint32 = 0x3B
	KeyRightShift   uint32 = 0x3C
	KeyRightOption  uint32 = 0x3D
	KeyRightControl uint32 = 0x3E
	KeyFunction     uint32 = 0x3F

	KeyKeypadDecimal  uint32 = 0x41
	KeyKeypadMultiply uint32 = 0x43
	KeyKeypadPlus     uint32 = 0x45
	KeyKeypadDivide   uint32 = 0x4B
	KeyKeypadEnter    uint32 = 0x4C
	KeyKeypadMinus    uint32 = 0x4E
	KeyKeypadEquals   uint32 = 0x51
	KeyKeypad0        uint32 = 0x52
	KeyKeypad1        uint32 = 0x53
	KeyKeypad2        uint32 = 0x54
	KeyKeypad3        uint32 = 0x55
	KeyKeypad4        uint32 = 0x56
	KeyKeypad5        uint32 = 0x57
	KeyKeypad6        uint32 = 0x58
	KeyKeypad7        uint32 = 0x59
	KeyKeypad8        uint32 = 0x5B
	KeyKeypad9        uint32 = 0x5C

	KeyF1  uint32 = 0x7A
	KeyF2  uint32 = 0x78
	KeyF3  uint32 = 0x63
	KeyF4  uint32 = 0x76
	KeyF5  uint32 = 0x60
	KeyF6  uint32 = 0x61
	KeyF7  uint32 = 0x62
	KeyF8  uint32 = 0x64
	KeyF9  uint32 = 0x65
	KeyF10 uint32 = 0x6D
	KeyF11 uint32 = 0x67
	KeyF12 uint32 = 0x6F
	KeyF13 uint32 = 0x69
	KeyF14 uint32 = 0x6B
	KeyF15 uint32 = 0x71
	KeyF16 uint32 = 0x6A
	KeyF17 uint32 = 0x40
	KeyF18 uint32 = 0x4F
	KeyF19 uint32 = 0x50
	KeyF20 uint32 = 0x5A

	KeyHome          uint32 = 0x73
	KeyPageUp        uint32 = 0x74
	KeyForwardDelete uint32 = 0x75
	KeyEnd           uint32 = 0x77
	KeyPageDown      uint32 = 0x79
	KeyLeft          uint32 = 0x7B
	KeyRight         uint32 = 0x7C
	KeyDown          uint32 = 0x7D
	KeyUp            uint32 = 0x7E
)

var functionKeys = map[uint32]int{
	KeyF1: 1, KeyF2: 2, KeyF3: 3, KeyF4: 4, KeyF5: 5,
	KeyF6: 6, KeyF7: 7, KeyF8: 8, KeyF9: 9, KeyF10: 10,
	KeyF11: 11, KeyF12: 12, KeyF13: 13, KeyF14: 14, KeyF15: 15,
	KeyF16: 16, KeyF17: 17, KeyF18: 18, KeyF19: 19, KeyF20: 20,
}

var topRowDigits = map[uint32]int{
	Key0: 0, Key1: 1, Key2: 2, Key3: 3, Key4: 4,
	Key5: 5, Key6: 6, Key7: 7, Key8: 8, Key9: 9,
}

var keypadDigits = map[uint32]int{
	KeyKeypad0: 0, KeyKeypad1: 1, KeyKeypad2: 2, KeyKeypad3: 3, KeyKeypad4: 4,
	KeyKeypad5: 5, KeyKeypad6: 6, KeyKeypad7: 7, KeyKeypad8: 8, KeyKeypad9: 9,
}

var modifierKeys = map[uint32]bool{
	KeyCommand: true, KeyRightCommand: true, KeyShift: true, KeyRightShift: true,
	KeyOption: true, KeyRightOption: true, KeyControl: true, KeyRightControl: true,
	KeyCapsLock: true, KeyFunction: true,
}

// IsModifierKey reports whether keyCode is a modifier key on its own.
func IsModifierKey(keyCode uint32) bool {
	return modifierKeys[keyCode]
}

// IsFunctionKey reports whether keyCode is one of F1 through F20.
func IsFunctionKey(keyCode uint32) bool {
	_, ok := functionKeys[keyCode]
	return ok
}

// Digit returns the digit produced by keyCode. Top-row and keypad digits are
// treated identically.
func Digit(keyCode uint32) (int, bool) {
	if d, ok := topRowDigits[keyCode]; ok {
		return d, true
	}
	d, ok := keypadDigits[keyCode]
	return d, ok
}
