package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// ErrCanceled is returned when the user dismisses a dialog.
var ErrCanceled = zenity.ErrCanceled

// ErrInvalidShortcut is returned by PromptShortcut when the typed text does
// not parse. The dialog can be shown again.
var ErrInvalidShortcut = errors.New("not a valid shortcut")

// ErrCleared is returned by PromptShortcut when the user asks to remove the
// binding (empty input or "none").
var ErrCleared = errors.New("shortcut cleared")

// CaptureDialog asks for shortcuts and names with native dialogs. The tray has
// no focused surface of its own, so a typed combination such as
// "cmd+shift+k" stands in for the captured keystroke.
type CaptureDialog struct {
	AppName string
}

// PromptShortcut asks for a combination. feedback is shown above the prompt,
// e.g. the label of a conflicting binding from the previous attempt. Empty
// input or "none" returns ErrCleared; every other answer is parsed, so a bare
// "a" comes back as a key rather than as a request to clear.
func (d CaptureDialog) PromptShortcut(title string, current shortcut.Configuration, feedback string) (shortcut.Configuration, error) {
	var text strings.Builder
	if feedback != "" {
		text.WriteString(feedback)
		text.WriteString("\n\n")
	}
	fmt.Fprintf(&text, "Type the new shortcut for %s (e.g. cmd+shift+k, ctrl+alt+1, f5).\n", title)
	text.WriteString("Leave empty or type 'none' to clear it. Cancel keeps the current binding.")

	input, err := zenity.Entry(text.String(),
		zenity.Title(d.AppName+" - Record Shortcut"),
		zenity.EntryText(current.String()),
	)
	if err != nil {
		return shortcut.Disabled, err
	}
	if isClear(input) {
		return shortcut.Disabled, ErrCleared
	}
	c, err := shortcut.Parse(input)
	if err != nil {
		return shortcut.Disabled, fmt.Errorf("%w: '%s' (%v)", ErrInvalidShortcut, input, err)
	}
	return c, nil
}

// AskName asks for a free-text name, e.g. for a new user action.
func (d CaptureDialog) AskName(title, prompt string) (string, error) {
	name, err := zenity.Entry(prompt, zenity.Title(d.AppName+" - "+title))
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("name cannot be empty")
	}
	return name, nil
}

// Choose lets the user pick one of items.
func (d CaptureDialog) Choose(title, prompt string, items []string) (string, error) {
	if len(items) == 0 {
		return "", errors.New("nothing to choose from")
	}
	choice, err := zenity.List(prompt, items,
		zenity.Title(d.AppName+" - "+title),
		zenity.DisallowEmpty(),
	)
	if err != nil {
		return "", err
	}
	return choice, nil
}

// Info shows a modal message.
func (d CaptureDialog) Info(title, message string) {
	_ = zenity.Info(message, zenity.Title(d.AppName+" - "+title), zenity.InfoIcon)
}

func isClear(input string) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "" || input == "none"
}
