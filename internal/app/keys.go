package app

import (
	"github.com/TanaroSch/overlay-keys/internal/router"
)

// HandleKeyDown offers a focused keystroke to the application. An open
// recording session sees it first, then the router. It reports whether the
// keystroke was consumed. Must run on the event loop.
func (a *Application) HandleKeyDown(ev router.KeyEvent) bool {
	a.loop.AssertConfined("HandleKeyDown")
	if a.coordinator.HandleKeyDown(ev) {
		return true
	}
	cmd, ok := router.Route(a.bindings(), ev)
	if !ok {
		return false
	}
	a.dispatch(cmd)
	return true
}

// PostKeyDown hands a keystroke from another goroutine to the loop.
func (a *Application) PostKeyDown(ev router.KeyEvent) bool {
	return a.loop.Post(func() { a.HandleKeyDown(ev) })
}

func (a *Application) bindings() router.Source {
	return router.Source{
		Catalog:  a.catalog,
		Registry: a.targets,
		Count:    func() int { return len(a.config.Targets) },
	}
}

func (a *Application) dispatch(cmd router.Command) {
	switch cmd.Kind {
	case router.Terminate:
		a.surface.Terminate()
	case router.ActivateTarget:
		a.surface.Activate(cmd.TargetID)
	default:
		a.surface.Dispatch(cmd)
	}
}
