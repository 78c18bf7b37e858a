package app

import (
	"fmt"
	"log"
	"sort"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/config"
	"github.com/TanaroSch/overlay-keys/internal/conflict"
	"github.com/TanaroSch/overlay-keys/internal/diffutil"
	"github.com/TanaroSch/overlay-keys/internal/hotkey"
	"github.com/TanaroSch/overlay-keys/internal/router"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
	"github.com/TanaroSch/overlay-keys/internal/ui"
)

// reload re-reads the config file and resyncs every registry. Without force
// an unchanged file is ignored, so our own saves do not churn registrations.
// Runs on the loop.
func (a *Application) reload(force bool) {
	log.Println("Reloading configuration...")
	newCfg, err := config.Load(a.config.Path())
	if err != nil {
		log.Printf("Error reloading configuration: %v", err)
		ui.ShowAdminNotification(ui.LevelError, "Configuration Reload Failed", err.Error())
		return
	}
	ui.SetNotificationsEnabled(newCfg.UseNotifications)

	before := ui.BindingLines(sheetEntries(a.config, a.catalog.State()))
	after := ui.BindingLines(sheetEntries(newCfg, newCfg.Bindings))
	if before == after && !force {
		log.Println("Configuration reloaded: no shortcut changes.")
		a.config = newCfg
		return
	}

	if a.coordinator.Recording() {
		log.Println("Recording: Cancelled by configuration reload")
		a.coordinator.Cancel()
	}

	previousGlobal := a.global.Configuration()
	a.config = newCfg
	*a.catalog = *catalog.FromState(newCfg.Bindings)

	if newCfg.GlobalShortcut != previousGlobal {
		a.global.Disable()
		a.global = hotkey.NewGlobalRegistry(a.backend, a.suspension, settingsView{a}, newCfg.GlobalShortcut, a.hotkeyOptions()...)
	}
	if !a.global.RegisterCurrent(a.surface.Toggle) {
		ui.ShowAdminNotification(ui.LevelWarn, "Global Shortcut Inactive",
			fmt.Sprintf("'%s' could not be registered after reload.", display(newCfg.GlobalShortcut)))
	}
	a.targets.Register(newCfg.Entries(), a.surface.Activate)

	_, summary := diffutil.BindingChanges(before, after)
	if summary.Changed() {
		a.lastBefore, a.lastAfter = before, after
		if a.tray != nil {
			a.tray.SetChangesAvailable(true)
		}
	}
	log.Printf("Configuration reloaded: %s", summary)
	ui.ShowAdminNotification(ui.LevelInfo, "Configuration Reloaded", summary.String())
	a.refreshMenu()
}

// LastChanges returns the binding sheets before and after the last reload
// that changed anything.
func (a *Application) LastChanges() (before, after string) {
	return a.lastBefore, a.lastAfter
}

// sheetEntries lists every configured binding of cfg and st, plus the fixed
// built-in shortcuts.
func sheetEntries(cfg *config.Config, st catalog.State) []ui.SheetEntry {
	cat := catalog.FromState(st)
	entries := []ui.SheetEntry{{Section: "Global", Label: "Show/Hide Overlay", Configuration: cfg.GlobalShortcut}}

	for _, t := range cfg.Targets {
		entries = append(entries, ui.SheetEntry{Section: "Targets", Label: "Activate " + t.Name, Configuration: t.Shortcut})
	}

	for _, d := range catalog.Directions {
		g := cat.Navigation(d)
		entries = append(entries, ui.SheetEntry{Section: "Navigation", Label: d.Label(), Configuration: g.Primary})
		if g.Alternate != nil {
			entries = append(entries, ui.SheetEntry{Section: "Navigation", Label: d.Label() + " (Alternate)", Configuration: *g.Alternate})
		}
	}

	entries = appendDigits(entries, "Go to Session", "Alternate", cat.SessionDigits())
	entries = appendDigits(entries, "Go to Engine", "Secondary", cat.EngineDigits())

	for _, act := range cat.Actions() {
		entries = append(entries, ui.SheetEntry{Section: "Actions", Label: act.Name, Configuration: act.Configuration})
	}

	reservedSet := make(map[shortcut.Configuration]bool)
	for _, r := range conflict.ReservedLabels() {
		reservedSet[r.Configuration] = true
		entries = append(entries, ui.SheetEntry{Section: "Built-in", Label: r.Label, Configuration: r.Configuration})
	}
	var extra []ui.SheetEntry
	for c, kind := range router.BuiltIns() {
		if reservedSet[c] {
			continue
		}
		extra = append(extra, ui.SheetEntry{Section: "Built-in", Label: builtInLabel(kind), Configuration: c})
	}
	sort.Slice(extra, func(i, j int) bool {
		if extra[i].Label != extra[j].Label {
			return extra[i].Label < extra[j].Label
		}
		return extra[i].Configuration.String() < extra[j].Configuration.String()
	})
	return append(entries, extra...)
}

func appendDigits(entries []ui.SheetEntry, label, secondSlot string, g shortcut.DigitModifierGroup) []ui.SheetEntry {
	label += " 1-9, 0"
	if g.Primary != nil {
		entries = append(entries, ui.SheetEntry{Section: "Digits", Label: label, Configuration: shortcut.New(shortcut.Key1, *g.Primary)})
	}
	if g.Alternate != nil {
		entries = append(entries, ui.SheetEntry{Section: "Digits", Label: label + " (" + secondSlot + ")", Configuration: shortcut.New(shortcut.Key1, *g.Alternate)})
	}
	return entries
}

var builtInLabels = map[router.Kind]string{
	router.OpenSettings: "Settings",
	router.Hide:         "Hide Overlay",
	router.Reload:       "Reload Page",
	router.Find:         "Find",
	router.FindNext:     "Find Next",
	router.FindPrevious: "Find Previous",
	router.ZoomIn:       "Zoom In",
	router.ZoomOut:      "Zoom Out",
	router.ResetZoom:    "Reset Zoom",
}

func builtInLabel(k router.Kind) string {
	if label, ok := builtInLabels[k]; ok {
		return label
	}
	return k.String()
}

// display renders c for notifications and pickers.
func display(c shortcut.Configuration) string {
	if c.IsDisabled() {
		return "none"
	}
	return c.Glyphs()
}
