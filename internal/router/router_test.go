package router

import (
	"fmt"
	"testing"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

type entries []shortcut.Entry

func (e entries) Bindings() []shortcut.Entry { return e }

var digitKeys = []uint32{
	shortcut.Key1, shortcut.Key2, shortcut.Key3, shortcut.Key4, shortcut.Key5,
	shortcut.Key6, shortcut.Key7, shortcut.Key8, shortcut.Key9, shortcut.Key0,
}

func defaultTargets(n int) entries {
	out := make(entries, n)
	for i := range out {
		out[i] = shortcut.Entry{
			TargetID:      fmt.Sprintf("target-%d", i+1),
			Configuration: shortcut.New(digitKeys[i%len(digitKeys)], shortcut.Control|shortcut.Option),
		}
	}
	return out
}

func defaultSource(targets int) Source {
	return Source{Catalog: catalog.New(), Registry: defaultTargets(targets)}
}

func TestRoute(t *testing.T) {
	src := defaultSource(3)
	src.PutAction(catalog.Action{ID: "sum", Name: "Summarize", Configuration: shortcut.New(shortcut.KeyS, shortcut.Command|shortcut.Option)})

	tests := []struct {
		name string
		ev   KeyEvent
		want Command
		ok   bool
	}{
		{"kill switch", KeyEvent{shortcut.KeyQ, shortcut.Control | shortcut.Command | shortcut.Shift}, Command{Kind: Terminate}, true},
		{"next session", KeyEvent{shortcut.KeyTab, shortcut.Control}, Command{Kind: Navigate, Direction: catalog.NextSession}, true},
		{"previous session alternate", KeyEvent{shortcut.KeyLeftBracket, shortcut.Command | shortcut.Shift}, Command{Kind: Navigate, Direction: catalog.PreviousSession}, true},
		{"next engine", KeyEvent{shortcut.KeyDown, shortcut.Command | shortcut.Option | shortcut.NumericPad | shortcut.Function}, Command{Kind: Navigate, Direction: catalog.NextEngine}, true},
		{"action", KeyEvent{shortcut.KeyS, shortcut.Command | shortcut.Option}, Command{Kind: RunAction, ActionID: "sum"}, true},
		{"target", KeyEvent{shortcut.Key2, shortcut.Control | shortcut.Option}, Command{Kind: ActivateTarget, TargetID: "target-2"}, true},
		{"session digit", KeyEvent{shortcut.Key4, shortcut.Command}, Command{Kind: SelectSession, Index: 3}, true},
		{"session digit alternate", KeyEvent{shortcut.Key4, shortcut.Control}, Command{Kind: SelectSession, Index: 3}, true},
		{"engine digit keypad", KeyEvent{shortcut.KeyKeypad2, shortcut.Command | shortcut.Option | shortcut.NumericPad}, Command{Kind: SelectEngine, Index: 1}, true},
		{"engine digit zero with few targets", KeyEvent{shortcut.Key0, shortcut.Command | shortcut.Option}, Command{}, false},
		{"settings", KeyEvent{shortcut.KeyComma, shortcut.Command}, Command{Kind: OpenSettings}, true},
		{"hide", KeyEvent{shortcut.KeyW, shortcut.Command}, Command{Kind: Hide}, true},
		{"reload", KeyEvent{shortcut.KeyR, shortcut.Command}, Command{Kind: Reload}, true},
		{"find", KeyEvent{shortcut.KeyF, shortcut.Command}, Command{Kind: Find}, true},
		{"find next", KeyEvent{shortcut.KeyG, shortcut.Command}, Command{Kind: FindNext}, true},
		{"find previous", KeyEvent{shortcut.KeyG, shortcut.Command | shortcut.Shift}, Command{Kind: FindPrevious}, true},
		{"zoom in", KeyEvent{shortcut.KeyEqual, shortcut.Command}, Command{Kind: ZoomIn}, true},
		{"zoom in keypad", KeyEvent{shortcut.KeyKeypadPlus, shortcut.Command}, Command{Kind: ZoomIn}, true},
		{"zoom out", KeyEvent{shortcut.KeyMinus, shortcut.Command}, Command{Kind: ZoomOut}, true},
		{"reset zoom", KeyEvent{shortcut.KeyDelete, shortcut.Command}, Command{Kind: ResetZoom}, true},
		{"built-in without command", KeyEvent{shortcut.KeyR, shortcut.Control}, Command{}, false},
		{"plain typing", KeyEvent{shortcut.KeyR, 0}, Command{}, false},
		{"bare digit", KeyEvent{shortcut.Key1, 0}, Command{}, false},
		{"shifted digit", KeyEvent{shortcut.Key1, shortcut.Shift}, Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Route(src, tt.ev)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Route(%+v) = %v, %v; want %v, %v", tt.ev, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// An action bound to the kill-switch combination never shadows it.
func TestKillSwitchWinsOverAction(t *testing.T) {
	src := defaultSource(0)
	src.PutAction(catalog.Action{ID: "evil", Name: "Clash", Configuration: shortcut.Terminate})

	got, ok := Route(src, KeyEvent{shortcut.KeyQ, shortcut.Control | shortcut.Command | shortcut.Shift})
	if !ok || got.Kind != Terminate {
		t.Fatalf("Route = %v, %v; want terminate", got, ok)
	}
}

func TestSessionDigitsWithCommand(t *testing.T) {
	src := defaultSource(0)
	src.SetSessionDigits(shortcut.DigitModifierGroup{Primary: shortcut.Mods(shortcut.Command)})

	if got, ok := Route(src, KeyEvent{shortcut.Key1, shortcut.Command}); !ok || got != (Command{Kind: SelectSession, Index: 0}) {
		t.Fatalf("Command+1 = %v, %v; want slot 0", got, ok)
	}
	if got, ok := Route(src, KeyEvent{shortcut.Key0, shortcut.Command}); !ok || got != (Command{Kind: SelectSession, Index: 9}) {
		t.Fatalf("Command+0 = %v, %v; want slot 9", got, ok)
	}
}

func TestDigitMapping(t *testing.T) {
	src := defaultSource(10)
	for i, key := range digitKeys {
		keypad := []uint32{
			shortcut.KeyKeypad1, shortcut.KeyKeypad2, shortcut.KeyKeypad3, shortcut.KeyKeypad4, shortcut.KeyKeypad5,
			shortcut.KeyKeypad6, shortcut.KeyKeypad7, shortcut.KeyKeypad8, shortcut.KeyKeypad9, shortcut.KeyKeypad0,
		}[i]
		for _, k := range []uint32{key, keypad} {
			if got, ok := Route(src, KeyEvent{k, shortcut.Command}); !ok || got != (Command{Kind: SelectSession, Index: i}) {
				t.Errorf("session key %#x = %v, %v; want index %d", k, got, ok, i)
			}
			if got, ok := Route(src, KeyEvent{k, shortcut.Command | shortcut.Option}); !ok || got != (Command{Kind: SelectEngine, Index: i}) {
				t.Errorf("engine key %#x = %v, %v; want index %d", k, got, ok, i)
			}
		}
	}
}

func TestDisabledNavigationNeverMatches(t *testing.T) {
	src := defaultSource(0)
	src.SetNavigation(catalog.NextSession, shortcut.BindingGroup{Primary: shortcut.Disabled})

	if got, ok := Route(src, KeyEvent{shortcut.KeyA, 0}); ok {
		t.Fatalf("disabled binding matched: %v", got)
	}
}

// Under the factory binding set no keystroke is claimed by two steps.
func TestStepsAreDisjointUnderDefaults(t *testing.T) {
	src := defaultSource(10)
	src.PutAction(catalog.Action{ID: "sum", Name: "Summarize", Configuration: shortcut.New(shortcut.KeyS, shortcut.Command|shortcut.Option)})

	var combos []shortcut.Modifiers
	for m := shortcut.Modifiers(0); m <= 0xF; m++ {
		combos = append(combos, m<<17)
	}
	for key := uint32(0); key < 0x80; key++ {
		for _, m := range combos {
			ev := KeyEvent{KeyCode: key, Modifiers: m}
			var matched []string
			for _, s := range Steps() {
				if _, ok := s.Match(src, ev); ok {
					matched = append(matched, s.Name)
				}
			}
			if len(matched) > 1 {
				t.Errorf("%s matched by %v", ev.Configuration(), matched)
			}
		}
	}
}

func TestStepsOrder(t *testing.T) {
	want := []string{"kill-switch", "navigation", "actions", "targets", "digits", "built-in"}
	got := Steps()
	if len(got) != len(want) {
		t.Fatalf("len(Steps()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("step %d = %s, want %s", i, got[i].Name, want[i])
		}
	}
}
