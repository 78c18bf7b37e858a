package router

import (
	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// TargetSource provides the per-target activation bindings.
type TargetSource interface {
	Bindings() []shortcut.Entry
}

// Source adapts a catalog and a target registry to Bindings. Count returns
// the number of known targets, bound or not.
type Source struct {
	*catalog.Catalog
	Registry TargetSource
	Count    func() int
}

// Targets returns the accepted per-target bindings.
func (s Source) Targets() []shortcut.Entry {
	if s.Registry == nil {
		return nil
	}
	return s.Registry.Bindings()
}

// TargetCount returns the number of targets used for engine digit 0.
func (s Source) TargetCount() int {
	if s.Count != nil {
		return s.Count()
	}
	return len(s.Targets())
}
