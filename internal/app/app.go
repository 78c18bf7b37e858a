package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/config"
	"github.com/TanaroSch/overlay-keys/internal/conflict"
	"github.com/TanaroSch/overlay-keys/internal/hotkey"
	"github.com/TanaroSch/overlay-keys/internal/loop"
	"github.com/TanaroSch/overlay-keys/internal/recording"
	"github.com/TanaroSch/overlay-keys/internal/resources"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
	"github.com/TanaroSch/overlay-keys/internal/ui"
)

// Application represents the main application. Everything below the loop
// field is owned by the loop goroutine.
type Application struct {
	version  string
	loop     *loop.Loop
	surface  Surface
	dialog   Dialog
	sandbox  bool
	headless bool

	config      *config.Config
	backend     hotkey.Backend
	suspension  *hotkey.Suspension
	global      *hotkey.GlobalRegistry
	targets     *hotkey.TargetRegistry
	catalog     *catalog.Catalog
	validator   *conflict.Validator
	coordinator *recording.Coordinator
	tray        *ui.SystrayManager

	recordSeq             int
	lastBefore, lastAfter string
	cancel                context.CancelFunc
}

// Option customises an Application.
type Option func(*Application)

// WithBackend replaces the automatically selected hotkey backend.
func WithBackend(b hotkey.Backend) Option {
	return func(a *Application) { a.backend = b }
}

// WithSurface routes triggers and commands to s instead of the logging surface.
func WithSurface(s Surface) Option {
	return func(a *Application) { a.surface = s }
}

// WithDialog replaces the native capture dialogs.
func WithDialog(d Dialog) Option {
	return func(a *Application) { a.dialog = d }
}

// WithSandbox overrides development-sandbox detection.
func WithSandbox(enabled bool) Option {
	return func(a *Application) { a.sandbox = enabled }
}

// WithHeadless runs without the tray menu.
func WithHeadless(enabled bool) Option {
	return func(a *Application) { a.headless = enabled }
}

// New creates a new application instance.
func New(cfg *config.Config, version string, opts ...Option) *Application {
	a := &Application{
		version:    version,
		loop:       loop.New(0),
		config:     cfg,
		suspension: hotkey.NewSuspension(),
		catalog:    catalog.FromState(cfg.Bindings),
		dialog:     ui.CaptureDialog{AppName: "Overlay Keys"},
		sandbox:    hotkey.IsDevSandbox(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.surface == nil {
		a.surface = &logSurface{quit: a.Quit}
	}
	if a.backend == nil {
		a.backend = hotkey.SelectBackend(a.loop.Post)
	}

	a.global = hotkey.NewGlobalRegistry(a.backend, a.suspension, settingsView{a}, cfg.GlobalShortcut, a.hotkeyOptions()...)
	a.targets = hotkey.NewTargetRegistry(a.backend, a.suspension, a.hotkeyOptions()...)
	a.validator = conflict.New(globalView{a}, targetsView{a}, a.catalog, a.targetName)
	a.coordinator = recording.New(a.suspension, a.validator, a.loop.AssertConfined)
	return a
}

func (a *Application) hotkeyOptions() []hotkey.Option {
	return []hotkey.Option{
		hotkey.WithThreadCheck(a.loop.AssertConfined),
		hotkey.WithSandbox(a.sandbox),
	}
}

// Run starts the event loop, registers every hotkey and blocks until the
// application quits. With a tray it must be called from the main goroutine.
func (a *Application) Run(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)
	defer a.cancel()

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	loopErr := make(chan error, 1)
	go func() { loopErr <- a.loop.Run(loopCtx) }()

	var state ui.MenuState
	if err := a.loop.Call(func() {
		a.start()
		state = a.menuState()
	}); err != nil {
		return fmt.Errorf("failed to start event loop: %w", err)
	}

	go func() {
		err := config.Watch(ctx, a.config.Path(), config.DefaultDebounce, func() {
			a.loop.Post(func() { a.reload(false) })
		})
		if err != nil {
			log.Printf("Warning: Config watcher stopped: %v", err)
		}
	}()

	if a.headless {
		log.Println("Running without tray menu.")
		<-ctx.Done()
	} else {
		a.runTray(state)
	}

	if err := a.loop.Call(a.shutdown); err != nil {
		log.Printf("Warning: Shutdown did not run on the event loop: %v", err)
	}
	stopLoop()
	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *Application) runTray(state ui.MenuState) {
	icon, err := resources.GetIcon()
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	tray := ui.NewSystrayManager(a.version, icon, state, a.callbacks())
	if err := a.loop.Call(func() { a.tray = tray }); err != nil {
		log.Printf("Warning: %v", err)
	}
	tray.Run()
}

// Quit ends Run. Runs on the loop.
func (a *Application) Quit() {
	log.Println("Quit requested.")
	if a.tray != nil {
		a.tray.Quit()
	}
	if a.cancel != nil {
		a.cancel()
	}
}

// start registers the global and per-target hotkeys. Runs on the loop.
func (a *Application) start() {
	log.Printf("Registering hotkeys with %s backend.", a.backend.Name())
	if !a.global.RegisterCurrent(a.surface.Toggle) {
		msg := fmt.Sprintf("Global shortcut '%s' could not be registered. Record a different one from the tray menu.", a.global.Configuration())
		ui.ShowAdminNotification(ui.LevelWarn, "Global Shortcut Inactive", msg)
	}
	a.targets.Register(a.config.Entries(), a.surface.Activate)
	if refused := a.refusedTargets(); len(refused) > 0 {
		msg := fmt.Sprintf("%d target shortcut(s) could not be registered.", len(refused))
		ui.ShowAdminNotification(ui.LevelWarn, "Target Shortcuts Inactive", msg)
	}
}

// shutdown releases every handle before removing the handlers.
func (a *Application) shutdown() {
	if a.coordinator.Recording() {
		a.coordinator.Cancel()
	}
	a.targets.Disable()
	a.global.Disable()
	log.Println("Hotkeys released.")
}

// refusedTargets lists configured targets whose binding is not live.
func (a *Application) refusedTargets() []string {
	var out []string
	for _, e := range a.config.Entries() {
		if e.Configuration.IsDisabled() {
			continue
		}
		if !a.targets.IsLive(e.TargetID) {
			out = append(out, e.TargetID)
		}
	}
	return out
}

func (a *Application) targetName(id string) string {
	return a.config.TargetName(id)
}

// globalView and targetsView let the validator follow registries that are
// replaced on reload.
type globalView struct{ a *Application }

func (v globalView) Configuration() shortcut.Configuration { return v.a.global.Configuration() }

type targetsView struct{ a *Application }

func (v targetsView) Bindings() []shortcut.Entry { return v.a.targets.Bindings() }

type settingsView struct{ a *Application }

func (v settingsView) SaveGlobalShortcut(c shortcut.Configuration) error {
	return v.a.config.SaveGlobalShortcut(c)
}
