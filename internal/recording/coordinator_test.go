package recording

import (
	"errors"
	"testing"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/conflict"
	"github.com/TanaroSch/overlay-keys/internal/hotkey"
	"github.com/TanaroSch/overlay-keys/internal/router"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

type fixture struct {
	backend    *hotkey.MemoryBackend
	suspension *hotkey.Suspension
	global     *hotkey.GlobalRegistry
	targets    *hotkey.TargetRegistry
	catalog    *catalog.Catalog
	coord      *Coordinator

	conflicts []string
	captured  []shortcut.Configuration
	cancelled int
	fired     int
}

type nopSettings struct{}

func (nopSettings) SaveGlobalShortcut(shortcut.Configuration) error { return nil }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		backend:    hotkey.NewMemoryBackend(),
		suspension: hotkey.NewSuspension(),
		catalog:    catalog.New(),
	}
	f.global = hotkey.NewGlobalRegistry(f.backend, f.suspension, nopSettings{}, shortcut.DefaultGlobal)
	f.targets = hotkey.NewTargetRegistry(f.backend, f.suspension)
	f.global.RegisterCurrent(func() { f.fired++ })
	f.targets.Register([]shortcut.Entry{
		{TargetID: "chat", Configuration: shortcut.New(shortcut.Key1, shortcut.Control|shortcut.Option)},
	}, func(string) { f.fired++ })
	v := conflict.New(f.global, f.targets, f.catalog, nil)
	f.coord = New(f.suspension, v, nil)
	return f
}

func (f *fixture) request(excluding string) Request {
	return Request{
		Title:      "test binding",
		Excluding:  excluding,
		OnConflict: func(label string, _ shortcut.Configuration) { f.conflicts = append(f.conflicts, label) },
		OnCapture:  func(c shortcut.Configuration) { f.captured = append(f.captured, c) },
		OnCancel:   func() { f.cancelled++ },
	}
}

func TestCaptureFirstFreeCandidate(t *testing.T) {
	f := newFixture(t)
	if err := f.coord.Start(f.request("")); err != nil {
		t.Fatal(err)
	}
	if !f.suspension.Active() {
		t.Fatal("suspension not set by Start")
	}

	f.coord.HandleKeyDown(router.KeyEvent{KeyCode: shortcut.KeyShift})
	f.coord.HandleKeyDown(router.KeyEvent{KeyCode: shortcut.KeyK})
	f.coord.HandleKeyDown(router.KeyEvent{KeyCode: shortcut.KeyComma, Modifiers: shortcut.Command})
	if len(f.captured) != 0 {
		t.Fatalf("captured %v before a free candidate", f.captured)
	}
	if len(f.conflicts) != 1 || f.conflicts[0] != "Settings" {
		t.Fatalf("conflicts = %v", f.conflicts)
	}
	if !f.coord.Recording() {
		t.Fatal("conflict closed the session")
	}

	want := shortcut.New(shortcut.KeyK, shortcut.Command|shortcut.Shift)
	if !f.coord.HandleKeyDown(router.KeyEvent{KeyCode: shortcut.KeyK, Modifiers: shortcut.Command | shortcut.Shift | shortcut.CapsLock}) {
		t.Fatal("candidate not consumed")
	}
	if len(f.captured) != 1 || f.captured[0] != want {
		t.Fatalf("captured = %v, want [%s]", f.captured, want)
	}
	if f.coord.Recording() || f.suspension.Active() {
		t.Fatal("session still open after capture")
	}
}

func TestEscapeCancelsWithoutChange(t *testing.T) {
	f := newFixture(t)
	f.coord.Start(f.request(""))
	f.coord.HandleKeyDown(router.KeyEvent{KeyCode: shortcut.KeyEscape})

	if f.cancelled != 1 || len(f.captured) != 0 {
		t.Fatalf("cancelled = %d, captured = %v", f.cancelled, f.captured)
	}
	if f.suspension.Active() {
		t.Fatal("suspension left active after cancel")
	}
	if f.global.Configuration() != shortcut.DefaultGlobal {
		t.Fatal("cancel changed the global toggle")
	}
	if f.coord.HandleKeyDown(router.KeyEvent{KeyCode: shortcut.KeyK, Modifiers: shortcut.Command}) {
		t.Fatal("key consumed with no session open")
	}
}

func TestGlobalTriggerDuringRecordingIsReported(t *testing.T) {
	f := newFixture(t)
	f.coord.Start(f.request(""))

	f.backend.Press(shortcut.DefaultGlobal)
	f.backend.Press(shortcut.New(shortcut.Key1, shortcut.Control|shortcut.Option))
	if f.fired != 0 {
		t.Fatalf("triggers fired %d times while recording", f.fired)
	}
	want := []string{"Global Shortcut", "Activate chat"}
	if len(f.conflicts) != 2 || f.conflicts[0] != want[0] || f.conflicts[1] != want[1] {
		t.Fatalf("conflicts = %v, want %v", f.conflicts, want)
	}

	f.coord.Cancel()
	f.backend.Press(shortcut.DefaultGlobal)
	if f.fired != 1 {
		t.Fatal("trigger did not fire after the session closed")
	}
	if len(f.conflicts) != 2 {
		t.Fatal("reserved channel still subscribed after cancel")
	}
}

func TestStartWhileRecording(t *testing.T) {
	f := newFixture(t)
	if err := f.coord.Start(f.request("")); err != nil {
		t.Fatal(err)
	}
	if err := f.coord.Start(f.request("")); !errors.Is(err, ErrRecordingActive) {
		t.Fatalf("second Start = %v, want ErrRecordingActive", err)
	}
}

func TestExcludedActionIsNotAConflict(t *testing.T) {
	f := newFixture(t)
	own := shortcut.New(shortcut.KeyS, shortcut.Command|shortcut.Option)
	f.catalog.PutAction(catalog.Action{ID: "sum", Name: "Summarize", Configuration: own})

	f.coord.Start(f.request("sum"))
	f.coord.HandleKeyDown(router.KeyEvent{KeyCode: shortcut.KeyS, Modifiers: shortcut.Command | shortcut.Option})
	if len(f.captured) != 1 || f.captured[0] != own {
		t.Fatalf("captured = %v, conflicts = %v", f.captured, f.conflicts)
	}
}

func TestFinishAlwaysClearsSuspension(t *testing.T) {
	f := newFixture(t)
	f.suspension.Suspend()
	f.coord.Finish()
	if f.suspension.Active() {
		t.Fatal("Finish left the suspension active")
	}
}

func TestFunctionKeyWithoutModifiersIsCaptured(t *testing.T) {
	f := newFixture(t)
	f.coord.Start(f.request(""))
	f.coord.HandleKeyDown(router.KeyEvent{KeyCode: shortcut.KeyF6, Modifiers: shortcut.Function})
	if len(f.captured) != 1 || f.captured[0] != shortcut.New(shortcut.KeyF6, 0) {
		t.Fatalf("captured = %v", f.captured)
	}
}
