package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GlobalShortcut != shortcut.DefaultGlobal {
		t.Fatalf("GlobalShortcut = %s, want %s", cfg.GlobalShortcut, shortcut.DefaultGlobal)
	}
	if len(cfg.Targets) == 0 {
		t.Fatal("default config has no targets")
	}
	for _, target := range cfg.Targets {
		if target.ID == "" {
			t.Fatalf("target %q has no id", target.Name)
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("permissions = %o, want 600", perm)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	next := shortcut.New(shortcut.KeyK, shortcut.Command|shortcut.Shift)
	if err := cfg.SaveGlobalShortcut(next); err != nil {
		t.Fatal(err)
	}
	action := NewAction("Summarize", shortcut.New(shortcut.KeyS, shortcut.Command|shortcut.Option))
	state := cfg.Bindings
	state.Actions = append(state.Actions, action)
	if err := cfg.SaveBindings(state); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.GlobalShortcut != next {
		t.Fatalf("GlobalShortcut = %s, want %s", reloaded.GlobalShortcut, next)
	}
	if len(reloaded.Bindings.Actions) != 1 || reloaded.Bindings.Actions[0] != action {
		t.Fatalf("Actions = %+v, want [%+v]", reloaded.Bindings.Actions, action)
	}
	if reloaded.Targets[0].ID != cfg.Targets[0].ID {
		t.Fatal("target ids changed across reload")
	}
}

func TestSaveTargetShortcut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	id := cfg.Targets[0].ID
	sc := shortcut.New(shortcut.KeyJ, shortcut.Control|shortcut.Option)
	if err := cfg.SaveTargetShortcut(id, sc); err != nil {
		t.Fatal(err)
	}
	if got, _ := cfg.Target(id); got.Shortcut != sc {
		t.Fatalf("Shortcut = %s, want %s", got.Shortcut, sc)
	}
	if err := cfg.SaveTargetShortcut("missing", sc); err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestLoadMigratesLegacyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	legacy := `{
  "use_notifications": false,
  "hotkey": "ctrl+alt+space",
  "service_hotkeys": {"Chat": "cmd+shift+1"},
  "targets": [{"name": "Search", "shortcut": "cmd+shift+2"}],
  "bindings": {"actions": [{"name": "Summarize", "shortcut": {"key_code": 1, "modifier_flags": 1572864}}]}
}`
	if err := os.WriteFile(path, []byte(legacy), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := shortcut.New(shortcut.KeySpace, shortcut.Control|shortcut.Option); cfg.GlobalShortcut != want {
		t.Fatalf("GlobalShortcut = %s, want %s", cfg.GlobalShortcut, want)
	}
	if len(cfg.Targets) != 2 {
		t.Fatalf("Targets = %+v", cfg.Targets)
	}
	for _, target := range cfg.Targets {
		if target.ID == "" {
			t.Fatalf("target %q not given an id", target.Name)
		}
	}
	if cfg.Bindings.Actions[0].ID == "" {
		t.Fatal("action not given an id")
	}
	if cfg.Bindings.Navigation.NextSession.Primary != catalog.DefaultState().Navigation.NextSession.Primary {
		t.Fatal("missing navigation did not fall back to defaults")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["hotkey"]; ok {
		t.Fatal("legacy hotkey field was written back")
	}
	if _, ok := raw["service_hotkeys"]; ok {
		t.Fatal("legacy service_hotkeys field was written back")
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTargetName(t *testing.T) {
	cfg := &Config{Targets: []Target{{ID: "t1", Name: "Chat"}, {ID: "t2"}}}
	tests := map[string]string{"t1": "Chat", "t2": "t2", "missing": "missing"}
	for id, want := range tests {
		if got := cfg.TargetName(id); got != want {
			t.Errorf("TargetName(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestWatchDebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := CreateDefaultConfig(path); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	if err := Watch(ctx, path, 50*time.Millisecond, func() { changes <- struct{}{} }); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{"use_notifications": true}`), 0600); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-changes:
		t.Fatal("burst of writes reported more than once")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := CreateDefaultConfig(path); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 1)
	if err := Watch(ctx, path, 20*time.Millisecond, func() { changes <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changes:
		t.Fatal("change reported for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSaveBindingsKeepsClearedSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	state := cfg.Bindings
	state.Navigation.NextSession.Alternate = nil
	state.EngineDigits.Primary = nil
	if err := cfg.SaveBindings(state); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if alt := reloaded.Bindings.Navigation.NextSession.Alternate; alt != nil {
		t.Errorf("cleared NextSession alternate came back as %s", *alt)
	}
	if mods := reloaded.Bindings.EngineDigits.Primary; mods != nil {
		t.Errorf("cleared engine digit primary came back as %v", *mods)
	}
	if reloaded.Bindings.Navigation.PreviousSession.Alternate == nil {
		t.Error("untouched PreviousSession alternate was lost")
	}
}

func TestParseWithoutBindingsUsesDefaults(t *testing.T) {
	tests := map[string]string{
		"missing": `{"global_shortcut": "alt+space", "targets": []}`,
		"null":    `{"global_shortcut": "alt+space", "targets": [], "bindings": null}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse([]byte(data))
			if err != nil {
				t.Fatal(err)
			}
			want := catalog.DefaultState()
			got := cfg.Bindings.Navigation.NextSession
			if got.Primary != want.Navigation.NextSession.Primary || got.Alternate == nil {
				t.Errorf("NextSession = %+v, want the factory group", got)
			}
			if cfg.Bindings.EngineDigits.Primary == nil {
				t.Error("engine digit primary missing, want the factory value")
			}
		})
	}
}
