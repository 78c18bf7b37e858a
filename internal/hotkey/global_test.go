package hotkey

import (
	"errors"
	"testing"

	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

type memorySettings struct {
	saved []shortcut.Configuration
	err   error
}

func (s *memorySettings) SaveGlobalShortcut(c shortcut.Configuration) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, c)
	return nil
}

func newGlobal(t *testing.T, current shortcut.Configuration, opts ...Option) (*GlobalRegistry, *MemoryBackend, *Suspension, *memorySettings) {
	t.Helper()
	backend := NewMemoryBackend()
	suspension := NewSuspension()
	settings := &memorySettings{}
	return NewGlobalRegistry(backend, suspension, settings, current, opts...), backend, suspension, settings
}

func TestRegisterCurrentIsIdempotent(t *testing.T) {
	g, backend, _, _ := newGlobal(t, shortcut.DefaultGlobal)
	fired := 0
	trigger := func() { fired++ }

	if !g.RegisterCurrent(trigger) {
		t.Fatal("first RegisterCurrent failed")
	}
	if !g.RegisterCurrent(trigger) {
		t.Fatal("second RegisterCurrent failed")
	}
	if got := backend.Live(GlobalSignature); got != 1 {
		t.Fatalf("live global handles = %d, want 1", got)
	}
	if !backend.Press(shortcut.DefaultGlobal) {
		t.Fatal("press not handled")
	}
	if fired != 1 {
		t.Fatalf("trigger fired %d times, want 1", fired)
	}
}

func TestRegisterCurrentRefusedIsNonFatal(t *testing.T) {
	g, backend, _, _ := newGlobal(t, shortcut.DefaultGlobal)
	backend.Refuse(shortcut.DefaultGlobal, true)

	if g.RegisterCurrent(func() {}) {
		t.Fatal("RegisterCurrent succeeded for a refused combination")
	}
	if g.IsActive() {
		t.Fatal("registry reports active after refusal")
	}
	if g.Configuration() != shortcut.DefaultGlobal {
		t.Fatal("configuration lost after refusal")
	}

	backend.Refuse(shortcut.DefaultGlobal, false)
	if !g.RegisterCurrent(func() {}) {
		t.Fatal("retry did not register")
	}
}

func TestUpdateConfigurationPersistsAndReplaces(t *testing.T) {
	g, backend, _, settings := newGlobal(t, shortcut.DefaultGlobal)
	g.RegisterCurrent(func() {})

	next := shortcut.New(shortcut.KeyK, shortcut.Command|shortcut.Shift)
	ok, err := g.UpdateConfiguration(next)
	if err != nil || !ok {
		t.Fatalf("UpdateConfiguration = %v, %v", ok, err)
	}
	if len(settings.saved) != 1 || settings.saved[0] != next {
		t.Fatalf("saved = %v", settings.saved)
	}
	if backend.IsLive(shortcut.DefaultGlobal) {
		t.Fatal("old toggle still registered")
	}
	if !backend.IsLive(next) {
		t.Fatal("new toggle not registered")
	}
	if got := backend.Live(GlobalSignature); got != 1 {
		t.Fatalf("live global handles = %d, want 1", got)
	}
}

func TestUpdateConfigurationSaveFailureKeepsOldBinding(t *testing.T) {
	g, backend, _, settings := newGlobal(t, shortcut.DefaultGlobal)
	g.RegisterCurrent(func() {})
	settings.err = errors.New("disk full")

	if _, err := g.UpdateConfiguration(shortcut.New(shortcut.KeyK, shortcut.Command)); err == nil {
		t.Fatal("expected save error")
	}
	if g.Configuration() != shortcut.DefaultGlobal || !backend.IsLive(shortcut.DefaultGlobal) {
		t.Fatal("failed save changed the live binding")
	}
}

func TestSandboxFallback(t *testing.T) {
	g, backend, _, _ := newGlobal(t, shortcut.DefaultGlobal, WithSandbox(true))
	fired := 0
	g.RegisterCurrent(func() { fired++ })

	if !g.FallbackActive() || !backend.IsLive(shortcut.SandboxFallback) {
		t.Fatal("fallback not registered for default toggle inside sandbox")
	}
	backend.Press(shortcut.SandboxFallback)
	if fired != 1 {
		t.Fatalf("fallback fired trigger %d times, want 1", fired)
	}

	g.RegisterCurrent(func() { fired++ })
	if got := backend.Live(GlobalSignature); got != 2 {
		t.Fatalf("live global handles after re-register = %d, want 2", got)
	}

	if _, err := g.UpdateConfiguration(shortcut.New(shortcut.KeyJ, shortcut.Command)); err != nil {
		t.Fatal(err)
	}
	if g.FallbackActive() || backend.IsLive(shortcut.SandboxFallback) {
		t.Fatal("fallback kept after leaving the default toggle")
	}

	if _, err := g.UpdateConfiguration(shortcut.DefaultGlobal); err != nil {
		t.Fatal(err)
	}
	if !g.FallbackActive() {
		t.Fatal("fallback not restored after returning to the default toggle")
	}
}

func TestNoSandboxFallbackOutsideSandbox(t *testing.T) {
	g, backend, _, _ := newGlobal(t, shortcut.DefaultGlobal)
	g.RegisterCurrent(func() {})
	if g.FallbackActive() || backend.IsLive(shortcut.SandboxFallback) {
		t.Fatal("fallback registered outside the sandbox")
	}
}

func TestGlobalTriggerWhileRecordingPublishesReserved(t *testing.T) {
	g, backend, suspension, _ := newGlobal(t, shortcut.DefaultGlobal)
	fired := 0
	g.RegisterCurrent(func() { fired++ })

	var reserved []shortcut.Configuration
	cancel := suspension.Subscribe(func(c shortcut.Configuration) { reserved = append(reserved, c) })
	defer cancel()

	suspension.Suspend()
	backend.Press(shortcut.DefaultGlobal)
	suspension.Resume()

	if fired != 0 {
		t.Fatal("trigger fired while recording")
	}
	if len(reserved) != 1 || reserved[0] != shortcut.DefaultGlobal {
		t.Fatalf("reserved = %v", reserved)
	}

	backend.Press(shortcut.DefaultGlobal)
	if fired != 1 {
		t.Fatal("trigger did not fire after recording ended")
	}
}

func TestGlobalDisableReleasesBeforeRemovingHandler(t *testing.T) {
	g, backend, _, _ := newGlobal(t, shortcut.DefaultGlobal, WithSandbox(true))
	g.RegisterCurrent(func() {})
	g.Disable()

	if got := backend.Live(GlobalSignature); got != 0 {
		t.Fatalf("live global handles after Disable = %d", got)
	}
	if backend.HandlerInstalled(GlobalSignature) {
		t.Fatal("handler still installed after Disable")
	}
	if !g.RegisterCurrent(func() {}) {
		t.Fatal("RegisterCurrent after Disable failed to reinstall")
	}
}

func TestDisabledGlobalRegistersNothing(t *testing.T) {
	g, backend, _, _ := newGlobal(t, shortcut.Disabled)
	if g.RegisterCurrent(func() {}) {
		t.Fatal("disabled toggle reported as registered")
	}
	if backend.Live(GlobalSignature) != 0 {
		t.Fatal("disabled toggle created a handle")
	}
}
