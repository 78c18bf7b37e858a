package app

import (
	"log"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/ui"
)

// menuState snapshots what the tray shows. Runs on the loop.
func (a *Application) menuState() ui.MenuState {
	st := ui.MenuState{
		Global:       a.global.Configuration(),
		GlobalActive: a.global.IsActive(),
		Backend:      a.backend.Name(),
	}
	for _, t := range a.config.Targets {
		st.Targets = append(st.Targets, ui.TargetItem{
			ID:            t.ID,
			Name:          t.Name,
			Configuration: t.Shortcut,
			Live:          a.targets.IsLive(t.ID),
		})
	}
	for _, d := range catalog.Directions {
		st.Navigation[d] = a.catalog.Navigation(d)
	}
	return st
}

func (a *Application) refreshMenu() {
	if a.tray != nil {
		a.tray.Update(a.menuState())
	}
}

// callbacks hands every menu action to the loop. Dialog-driven actions start
// on the menu goroutine and post their result.
func (a *Application) callbacks() ui.Callbacks {
	return ui.Callbacks{
		OnRecordGlobal: func() { a.loop.Post(a.recordGlobal) },
		OnRecordTarget: func(targetID string) {
			a.loop.Post(func() { a.recordTarget(targetID) })
		},
		OnRecordNavigation: func(d catalog.Direction, alternate bool) {
			a.loop.Post(func() { a.recordNavigation(d, alternate) })
		},
		OnAddAction:      a.addAction,
		OnEditAction:     a.editAction,
		OnRemoveAction:   a.removeAction,
		OnCopyCheatSheet: func() { a.loop.Post(a.copyCheatSheet) },
		OnViewChanges:    func() { a.loop.Post(a.viewChanges) },
		OnReloadConfig:   func() { a.loop.Post(func() { a.reload(true) }) },
		OnOpenConfig:     func() { a.loop.Post(a.openConfig) },
		OnQuit:           func() { log.Println("Quit requested from tray.") },
	}
}

// CheatSheet renders every binding, one per line.
func (a *Application) CheatSheet() string {
	return ui.RenderCheatSheet(sheetEntries(a.config, a.catalog.State()))
}

func (a *Application) copyCheatSheet() {
	if err := ui.CopyCheatSheet(sheetEntries(a.config, a.catalog.State())); err != nil {
		log.Printf("Error copying cheat sheet: %v", err)
		ui.ShowAdminNotification(ui.LevelError, "Cheat Sheet", err.Error())
		return
	}
	ui.ShowAdminNotification(ui.LevelInfo, "Cheat Sheet", "Shortcut cheat sheet copied to clipboard.")
}

func (a *Application) viewChanges() {
	before, after := a.LastChanges()
	if before == "" && after == "" {
		ui.ShowAdminNotification(ui.LevelInfo, "No Changes", "No reload has changed any shortcut yet.")
		return
	}
	contextLines := a.config.GetDiffContextLines()
	go ui.ShowChangesViewer(before, after, contextLines)
}

func (a *Application) openConfig() {
	path := a.config.Path()
	go func() {
		log.Printf("Request to open config file: %s", path)
		if err := ui.OpenFileInDefaultApp(path); err != nil {
			log.Printf("Error opening config file: %v", err)
			ui.ShowAdminNotification(ui.LevelWarn, "Error Opening File", err.Error())
		}
	}()
}
