package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// SheetEntry is one row of the shortcut cheat sheet.
type SheetEntry struct {
	Section       string
	Label         string
	Configuration shortcut.Configuration
}

// RenderCheatSheet formats entries grouped by section, one binding per line.
// Disabled bindings are listed as "none" so the sheet shows every slot.
func RenderCheatSheet(entries []SheetEntry) string {
	var sections []string
	bySection := make(map[string][]SheetEntry)
	for _, e := range entries {
		if _, ok := bySection[e.Section]; !ok {
			sections = append(sections, e.Section)
		}
		bySection[e.Section] = append(bySection[e.Section], e)
	}

	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n", section)
		rows := bySection[section]
		width := 0
		for _, r := range rows {
			if len(r.Label) > width {
				width = len(r.Label)
			}
		}
		for _, r := range rows {
			keys := "none"
			if !r.Configuration.IsDisabled() {
				keys = fmt.Sprintf("%s  (%s)", r.Configuration.Glyphs(), r.Configuration)
			}
			fmt.Fprintf(&b, "%-*s  %s\n", width, r.Label, keys)
		}
	}
	return b.String()
}

// BindingLines renders entries as sorted "Label: combo" lines for change
// comparison across reloads.
func BindingLines(entries []SheetEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s / %s: %s", e.Section, e.Label, e.Configuration))
	}
	sort.Strings(lines)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// CopyCheatSheet writes the rendered sheet to the system clipboard.
func CopyCheatSheet(entries []SheetEntry) error {
	if err := clipboard.WriteAll(RenderCheatSheet(entries)); err != nil {
		return fmt.Errorf("failed to copy cheat sheet to clipboard: %w", err)
	}
	return nil
}
