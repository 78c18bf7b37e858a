package ui

import (
	"fmt"
	"log"
	"sync"

	"github.com/getlantern/systray"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// TargetItem is one target as shown in the tray menu.
type TargetItem struct {
	ID            string
	Name          string
	Configuration shortcut.Configuration
	Live          bool
}

// MenuState is everything the tray menu displays.
type MenuState struct {
	Global       shortcut.Configuration
	GlobalActive bool
	Targets      []TargetItem
	Navigation   [len(catalog.Directions)]shortcut.BindingGroup
	Backend      string
}

// Callbacks are invoked from menu goroutines. Implementations must hand the
// work to the event loop.
type Callbacks struct {
	OnRecordGlobal     func()
	OnRecordTarget     func(targetID string)
	OnRecordNavigation func(d catalog.Direction, alternate bool)
	OnAddAction        func()
	OnEditAction       func()
	OnRemoveAction     func()
	OnCopyCheatSheet   func()
	OnViewChanges      func()
	OnReloadConfig     func()
	OnOpenConfig       func()
	OnQuit             func()
}

// SystrayManager handles the system tray icon and menu.
type SystrayManager struct {
	version      string
	embeddedIcon []byte
	callbacks    Callbacks

	mu          sync.Mutex
	state       MenuState
	ready       bool
	miGlobal    *systray.MenuItem
	miBackend   *systray.MenuItem
	miChanges   *systray.MenuItem
	targetItems []*systray.MenuItem
	targetIDs   []string
	navItems    [len(catalog.Directions)][2]*systray.MenuItem
}

// NewSystrayManager creates a new system tray manager.
func NewSystrayManager(version string, embeddedIcon []byte, initial MenuState, callbacks Callbacks) *SystrayManager {
	return &SystrayManager{
		version:      version,
		embeddedIcon: embeddedIcon,
		callbacks:    callbacks,
		state:        initial,
	}
}

// Run initializes and starts the system tray. It blocks until Quit.
func (s *SystrayManager) Run() {
	systray.Run(s.onReady, s.onExit)
}

// Quit stops the tray loop.
func (s *SystrayManager) Quit() {
	systray.Quit()
}

// Update refreshes menu titles. Targets added since startup only appear after
// a restart; removed ones are hidden.
func (s *SystrayManager) Update(state MenuState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if s.ready {
		s.applyLocked()
	}
}

// SetChangesAvailable enables the "View Last Reload Changes" item.
func (s *SystrayManager) SetChangesAvailable(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.miChanges == nil {
		return
	}
	if enabled {
		s.miChanges.Enable()
	} else {
		s.miChanges.Disable()
	}
}

func bindingTitle(label string, c shortcut.Configuration, live bool) string {
	if c.IsDisabled() {
		return label + ": none"
	}
	title := fmt.Sprintf("%s: %s", label, c.Glyphs())
	if !live {
		title += " (inactive)"
	}
	return title
}

func (s *SystrayManager) onReady() {
	title := fmt.Sprintf("Overlay Keys %s", s.version)
	systray.SetTitle(title)
	systray.SetTooltip(title)
	if len(s.embeddedIcon) > 0 {
		systray.SetIcon(s.embeddedIcon)
	} else {
		log.Println("Warning: No embedded icon data to set for systray.")
	}

	s.mu.Lock()
	miVersion := systray.AddMenuItem(fmt.Sprintf("Version: %s", s.version), "Overlay Keys version")
	miVersion.Disable()
	s.miBackend = systray.AddMenuItem("", "Global hotkey backend")
	s.miBackend.Disable()
	systray.AddSeparator()

	s.miGlobal = systray.AddMenuItem("", "Click to record a new show/hide shortcut")
	s.onClick(s.miGlobal, "Record global shortcut", func() { call(s.callbacks.OnRecordGlobal) })

	miTargets := systray.AddMenuItem("Target Shortcuts", "Click a target to record its activation shortcut")
	for i, t := range s.state.Targets {
		item := miTargets.AddSubMenuItem("", "Record activation shortcut for "+t.Name)
		s.targetItems = append(s.targetItems, item)
		s.targetIDs = append(s.targetIDs, t.ID)
		index := i
		s.onClick(item, "Record target shortcut", func() {
			s.mu.Lock()
			id := s.targetIDs[index]
			s.mu.Unlock()
			if id != "" && s.callbacks.OnRecordTarget != nil {
				s.callbacks.OnRecordTarget(id)
			}
		})
	}
	if len(s.state.Targets) == 0 {
		none := miTargets.AddSubMenuItem("(No targets defined)", "Add targets in the config file")
		none.Disable()
	}

	miNav := systray.AddMenuItem("Navigation Shortcuts", "Record navigation shortcuts")
	for _, d := range catalog.Directions {
		for slot := 0; slot < 2; slot++ {
			item := miNav.AddSubMenuItem("", "Record "+d.Label())
			s.navItems[d][slot] = item
			dir, alternate := d, slot == 1
			s.onClick(item, "Record navigation shortcut", func() {
				if s.callbacks.OnRecordNavigation != nil {
					s.callbacks.OnRecordNavigation(dir, alternate)
				}
			})
		}
	}

	miActions := systray.AddMenuItem("Actions", "User-defined action shortcuts")
	s.onClick(miActions.AddSubMenuItem("Add Action...", "Create a named action with a shortcut"), "Add action",
		func() { call(s.callbacks.OnAddAction) })
	s.onClick(miActions.AddSubMenuItem("Change Action Shortcut...", "Record a new shortcut for an action"), "Edit action",
		func() { call(s.callbacks.OnEditAction) })
	s.onClick(miActions.AddSubMenuItem("Remove Action...", "Delete an action"), "Remove action",
		func() { call(s.callbacks.OnRemoveAction) })
	systray.AddSeparator()

	s.onClick(systray.AddMenuItem("Copy Shortcut Cheat Sheet", "Copy every binding to the clipboard"), "Copy cheat sheet",
		func() { call(s.callbacks.OnCopyCheatSheet) })
	s.miChanges = systray.AddMenuItem("View Last Reload Changes", "Show which bindings changed on the last reload")
	s.miChanges.Disable()
	s.onClick(s.miChanges, "View reload changes", func() { call(s.callbacks.OnViewChanges) })
	s.onClick(systray.AddMenuItem("Reload Configuration", "Reload the config file and re-register hotkeys"), "Reload configuration",
		func() { call(s.callbacks.OnReloadConfig) })
	s.onClick(systray.AddMenuItem("Open Config File", "Open the config file in the default editor"), "Open config file",
		func() { call(s.callbacks.OnOpenConfig) })
	systray.AddSeparator()
	miQuit := systray.AddMenuItem("Quit", "Exit the application")

	s.ready = true
	s.applyLocked()
	s.mu.Unlock()

	go func() {
		<-miQuit.ClickedCh
		log.Println("Quit menu item clicked.")
		call(s.callbacks.OnQuit)
		systray.Quit()
	}()
	log.Println("Systray ready and menu configured.")
}

func (s *SystrayManager) onClick(item *systray.MenuItem, name string, fn func()) {
	go func() {
		for range item.ClickedCh {
			log.Printf("%s menu item clicked.", name)
			fn()
		}
	}()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// applyLocked pushes s.state into the menu items. s.mu must be held.
func (s *SystrayManager) applyLocked() {
	st := s.state
	s.miBackend.SetTitle("Backend: " + st.Backend)
	s.miGlobal.SetTitle(bindingTitle("Global Shortcut", st.Global, st.GlobalActive))

	byID := make(map[string]TargetItem, len(st.Targets))
	for _, t := range st.Targets {
		byID[t.ID] = t
	}
	for i, item := range s.targetItems {
		t, ok := byID[s.targetIDs[i]]
		if !ok {
			item.Hide()
			continue
		}
		item.Show()
		item.SetTitle(bindingTitle(t.Name, t.Configuration, t.Live))
	}

	for _, d := range catalog.Directions {
		g := st.Navigation[d]
		s.navItems[d][0].SetTitle(bindingTitle(d.Label(), g.Primary, true))
		alt := shortcut.Disabled
		if g.Alternate != nil {
			alt = *g.Alternate
		}
		s.navItems[d][1].SetTitle(bindingTitle(d.Label()+" (Alternate)", alt, true))
	}
}

func (s *SystrayManager) onExit() {
	log.Println("Systray exiting.")
}
