package conflict

import "github.com/TanaroSch/overlay-keys/internal/shortcut"

type reservedShortcut struct {
	label   string
	configs []shortcut.Configuration
}

// reserved lists the built-in combinations that can never be reassigned.
// Every one requires Command.
var reserved = []reservedShortcut{
	{"Settings", []shortcut.Configuration{
		shortcut.New(shortcut.KeyComma, shortcut.Command),
	}},
	{"Web Inspector", []shortcut.Configuration{
		shortcut.New(shortcut.KeyI, shortcut.Command|shortcut.Option),
	}},
	{"Keyboard Shortcuts", []shortcut.Configuration{
		shortcut.New(shortcut.KeySlash, shortcut.Command|shortcut.Shift),
	}},
	{"Minimize", []shortcut.Configuration{
		shortcut.New(shortcut.KeyM, shortcut.Command|shortcut.Option),
	}},
	{"Quit", []shortcut.Configuration{
		shortcut.Terminate,
	}},
	{"Zoom In", []shortcut.Configuration{
		shortcut.New(shortcut.KeyEqual, shortcut.Command),
		shortcut.New(shortcut.KeyKeypadPlus, shortcut.Command),
	}},
	{"Zoom Out", []shortcut.Configuration{
		shortcut.New(shortcut.KeyMinus, shortcut.Command),
		shortcut.New(shortcut.KeyKeypadMinus, shortcut.Command),
	}},
	{"Reset Zoom", []shortcut.Configuration{
		shortcut.New(shortcut.KeyDelete, shortcut.Command),
		shortcut.New(shortcut.KeyForwardDelete, shortcut.Command),
	}},
}

// ReservedLabels returns every built-in combination with its label, in table
// order. Used for the cheat sheet.
func ReservedLabels() []Labelled {
	var out []Labelled
	for _, r := range reserved {
		for _, c := range r.configs {
			out = append(out, Labelled{Label: r.label, Configuration: c})
		}
	}
	return out
}
