package conflict

import (
	"testing"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

type fixedGlobal shortcut.Configuration

func (g fixedGlobal) Configuration() shortcut.Configuration { return shortcut.Configuration(g) }

type fixedTargets []shortcut.Entry

func (t fixedTargets) Bindings() []shortcut.Entry { return t }

func newValidator(cat *catalog.Catalog, targets ...shortcut.Entry) *Validator {
	names := map[string]string{"chat": "Chat", "search": "Search"}
	return New(fixedGlobal(shortcut.DefaultGlobal), fixedTargets(targets), cat, func(id string) string {
		return names[id]
	})
}

func TestAllows(t *testing.T) {
	v := newValidator(catalog.New())
	tests := []struct {
		name string
		c    shortcut.Configuration
		want bool
	}{
		{"bare letter", shortcut.New(shortcut.KeyK, 0), false},
		{"bare space", shortcut.New(shortcut.KeySpace, 0), false},
		{"bare digit", shortcut.New(shortcut.Key1, 0), false},
		{"bare F1", shortcut.New(shortcut.KeyF1, 0), true},
		{"bare F20", shortcut.New(shortcut.KeyF20, 0), true},
		{"caps lock only", shortcut.New(shortcut.KeyK, shortcut.CapsLock), false},
		{"function flag only", shortcut.New(shortcut.KeyF5, shortcut.Function), true},
		{"shift letter", shortcut.New(shortcut.KeyK, shortcut.Shift), true},
		{"command letter", shortcut.New(shortcut.KeyK, shortcut.Command), true},
		{"option F1", shortcut.New(shortcut.KeyF1, shortcut.Option), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Allows(tt.c); got != tt.want {
				t.Errorf("Allows(%s) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestAllowsOnlyRejectsBareNonFunctionKeys(t *testing.T) {
	v := newValidator(catalog.New())
	mods := []shortcut.Modifiers{0, shortcut.Shift, shortcut.Control, shortcut.Option, shortcut.Command, shortcut.CapsLock | shortcut.NumericPad}
	for key := uint32(0); key < 0x80; key++ {
		for _, m := range mods {
			c := shortcut.New(key, m)
			want := !(m.Empty() && !shortcut.IsFunctionKey(key))
			if got := v.Allows(c); got != want {
				t.Fatalf("Allows(key %#x, mods %#x) = %v, want %v", key, uint(m), got, want)
			}
		}
	}
}

func TestReservedLabel(t *testing.T) {
	cat := catalog.New()
	cat.PutAction(catalog.Action{ID: "a1", Name: "Summarize", Configuration: shortcut.New(shortcut.KeyS, shortcut.Command|shortcut.Option)})
	v := newValidator(cat,
		shortcut.Entry{TargetID: "chat", Configuration: shortcut.New(shortcut.Key1, shortcut.Control|shortcut.Option)},
	)

	tests := []struct {
		name      string
		c         shortcut.Configuration
		excluding string
		want      string
	}{
		{"global", shortcut.New(shortcut.KeySpace, shortcut.Option), "", "Global Shortcut"},
		{"target", shortcut.New(shortcut.Key1, shortcut.Control|shortcut.Option), "", "Activate Chat"},
		{"navigation primary", shortcut.New(shortcut.KeyTab, shortcut.Control), "", "Next Session"},
		{"navigation alternate", shortcut.New(shortcut.KeyLeftBracket, shortcut.Command|shortcut.Shift), "", "Previous Session (Alternate)"},
		{"engine navigation", shortcut.New(shortcut.KeyUp, shortcut.Command|shortcut.Option), "", "Previous Engine"},
		{"settings", shortcut.New(shortcut.KeyComma, shortcut.Command), "", "Settings"},
		{"inspector", shortcut.New(shortcut.KeyI, shortcut.Command|shortcut.Option), "", "Web Inspector"},
		{"help", shortcut.New(shortcut.KeySlash, shortcut.Command|shortcut.Shift), "", "Keyboard Shortcuts"},
		{"minimize", shortcut.New(shortcut.KeyM, shortcut.Command|shortcut.Option), "", "Minimize"},
		{"quit", shortcut.New(shortcut.KeyQ, shortcut.Control|shortcut.Command|shortcut.Shift), "", "Quit"},
		{"zoom in keypad", shortcut.New(shortcut.KeyKeypadPlus, shortcut.Command), "", "Zoom In"},
		{"zoom out", shortcut.New(shortcut.KeyMinus, shortcut.Command), "", "Zoom Out"},
		{"reset zoom", shortcut.New(shortcut.KeyForwardDelete, shortcut.Command), "", "Reset Zoom"},
		{"action", shortcut.New(shortcut.KeyS, shortcut.Command|shortcut.Option), "", `Used by "Summarize"`},
		{"action excluded", shortcut.New(shortcut.KeyS, shortcut.Command|shortcut.Option), "a1", ""},
		{"session digit", shortcut.New(shortcut.Key3, shortcut.Command), "", "Go to Session 3"},
		{"session digit keypad", shortcut.New(shortcut.KeyKeypad3, shortcut.Command), "", "Go to Session 3"},
		{"session digit alternate", shortcut.New(shortcut.Key0, shortcut.Control), "", "Go to Session 0 (Alternate)"},
		{"engine digit", shortcut.New(shortcut.Key7, shortcut.Command|shortcut.Option), "", "Go to Engine 7"},
		{"incidental bits ignored", shortcut.New(shortcut.KeyComma, shortcut.Command|shortcut.CapsLock|shortcut.NumericPad), "", "Settings"},
		{"quit needs exact modifiers", shortcut.New(shortcut.KeyQ, shortcut.Control|shortcut.Command), "", ""},
		{"free", shortcut.New(shortcut.KeyK, shortcut.Command|shortcut.Option|shortcut.Shift), "", ""},
		{"disabled", shortcut.Disabled, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.ReservedLabel(tt.c, tt.excluding)
			if ok != (tt.want != "") || got != tt.want {
				t.Errorf("ReservedLabel(%s, %q) = %q, %v; want %q", tt.c, tt.excluding, got, ok, tt.want)
			}
		})
	}
}

func TestReservedLabelOrder(t *testing.T) {
	cat := catalog.New()
	// Same combination in every category: the global toggle must win.
	shared := shortcut.DefaultGlobal
	cat.SetNavigation(catalog.NextSession, shortcut.BindingGroup{Primary: shared})
	cat.PutAction(catalog.Action{ID: "a1", Name: "Clash", Configuration: shared})
	v := newValidator(cat, shortcut.Entry{TargetID: "chat", Configuration: shared})

	if got, _ := v.ReservedLabel(shared, ""); got != "Global Shortcut" {
		t.Fatalf("label = %q, want Global Shortcut", got)
	}

	v = New(fixedGlobal(shortcut.Disabled), fixedTargets{{TargetID: "chat", Configuration: shared}}, cat, nil)
	if got, _ := v.ReservedLabel(shared, ""); got != "Activate chat" {
		t.Fatalf("label = %q, want target before navigation", got)
	}

	v = New(fixedGlobal(shortcut.Disabled), fixedTargets{}, cat, nil)
	if got, _ := v.ReservedLabel(shared, ""); got != "Next Session" {
		t.Fatalf("label = %q, want navigation before actions", got)
	}
}

// Global toggle is Option+Space; recording a target binding with the same
// combination is rejected.
func TestRecordingTargetOnGlobalToggleIsRejected(t *testing.T) {
	v := newValidator(catalog.New())
	c := shortcut.New(shortcut.KeySpace, shortcut.Option)
	if !v.Allows(c) {
		t.Fatal("Option+Space not allowed")
	}
	if got, ok := v.ReservedLabel(c, "chat"); !ok || got != "Global Shortcut" {
		t.Fatalf("ReservedLabel = %q, %v; want Global Shortcut", got, ok)
	}
}

func TestEngineSecondaryDigitLabel(t *testing.T) {
	cat := catalog.New()
	cat.SetEngineDigits(shortcut.DigitModifierGroup{
		Primary:   shortcut.Mods(shortcut.Command | shortcut.Option),
		Alternate: shortcut.Mods(shortcut.Command | shortcut.Shift),
	})
	v := newValidator(cat)
	if got, _ := v.ReservedLabel(shortcut.New(shortcut.Key2, shortcut.Command|shortcut.Shift), ""); got != "Go to Engine 2 (Secondary)" {
		t.Fatalf("label = %q", got)
	}
}
