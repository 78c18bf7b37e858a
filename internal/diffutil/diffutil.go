// Package diffutil reports how the binding set changed across a reload.
package diffutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine is one line of a binding sheet with its change status.
type DiffLine struct {
	Type        diffmatchpatch.Operation // DiffEqual, DiffInsert or DiffDelete
	OrigLineNum int                      // 0 if inserted
	ModLineNum  int                      // 0 if deleted
	Text        string
}

// Summary counts the changed lines of a comparison.
type Summary struct {
	Before, After  int
	Added, Removed int
	Unchanged      int
}

// Changed reports whether anything differs.
func (s Summary) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

func (s Summary) String() string {
	if !s.Changed() {
		return "No shortcut changes."
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Shortcut changes:\n")
	fmt.Fprintf(&buf, "- Bindings before : %d\n", s.Before)
	fmt.Fprintf(&buf, "- Bindings after  : %d\n", s.After)
	fmt.Fprintf(&buf, "- Lines added     : %d\n", s.Added)
	fmt.Fprintf(&buf, "- Lines removed   : %d\n", s.Removed)
	return buf.String()
}

// BindingChanges compares two binding sheets (one binding per line) and
// returns every line with its status plus a summary. Lines are compared
// whole, so a rebound shortcut shows as one removal and one insertion.
func BindingChanges(before, after string) ([]DiffLine, Summary) {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var (
		lines   []DiffLine
		summary = Summary{Before: lineCount(before), After: lineCount(after)}
		orig    = 1
		mod     = 1
	)
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			line := DiffLine{Type: d.Type, Text: text}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				line.OrigLineNum, line.ModLineNum = orig, mod
				orig++
				mod++
				summary.Unchanged++
			case diffmatchpatch.DiffDelete:
				line.OrigLineNum = orig
				orig++
				summary.Removed++
			case diffmatchpatch.DiffInsert:
				line.ModLineNum = mod
				mod++
				summary.Added++
			}
			lines = append(lines, line)
		}
	}
	return lines, summary
}

// Changes returns only the added and removed lines, prefixed with + or -.
func Changes(lines []DiffLine) []string {
	var out []string
	for _, l := range lines {
		switch l.Type {
		case diffmatchpatch.DiffInsert:
			out = append(out, "+ "+l.Text)
		case diffmatchpatch.DiffDelete:
			out = append(out, "- "+l.Text)
		}
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// lineCount returns the number of physical lines in s.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
