package router

import (
	"fmt"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
)

// Kind tags a Command.
type Kind int

const (
	Terminate Kind = iota + 1
	Navigate
	RunAction
	ActivateTarget
	SelectSession
	SelectEngine
	OpenSettings
	Hide
	Reload
	Find
	FindNext
	FindPrevious
	ZoomIn
	ZoomOut
	ResetZoom
)

var kindNames = map[Kind]string{
	Terminate:      "terminate",
	Navigate:       "navigate",
	RunAction:      "run-action",
	ActivateTarget: "activate-target",
	SelectSession:  "select-session",
	SelectEngine:   "select-engine",
	OpenSettings:   "open-settings",
	Hide:           "hide",
	Reload:         "reload",
	Find:           "find",
	FindNext:       "find-next",
	FindPrevious:   "find-previous",
	ZoomIn:         "zoom-in",
	ZoomOut:        "zoom-out",
	ResetZoom:      "reset-zoom",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is the outcome of routing a keystroke. Only the fields relevant to
// Kind are set.
type Command struct {
	Kind      Kind
	Direction catalog.Direction // Navigate
	ActionID  string            // RunAction
	TargetID  string            // ActivateTarget
	Index     int               // SelectSession, SelectEngine
}

func (c Command) String() string {
	switch c.Kind {
	case Navigate:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Direction.Label())
	case RunAction:
		return fmt.Sprintf("%s(%s)", c.Kind, c.ActionID)
	case ActivateTarget:
		return fmt.Sprintf("%s(%s)", c.Kind, c.TargetID)
	case SelectSession, SelectEngine:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Index)
	}
	return c.Kind.String()
}
