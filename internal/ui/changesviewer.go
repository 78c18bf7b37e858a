package ui

import (
	"fmt"
	"html"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TanaroSch/overlay-keys/internal/diffutil"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// renderChangesHTML renders binding-sheet lines as a unified diff. Runs of
// unchanged lines longer than 2*contextLines+1 are folded.
func renderChangesHTML(lines []diffutil.DiffLine, contextLines int) string {
	var b strings.Builder
	b.WriteString(`<pre class="diff-output">`)

	foldThreshold := contextLines*2 + 1
	for i := 0; i < len(lines); {
		if lines[i].Type != diffmatchpatch.DiffEqual {
			writeChangeLine(&b, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && lines[j].Type == diffmatchpatch.DiffEqual {
			j++
		}
		run := lines[i:j]
		if len(run) < foldThreshold {
			for _, l := range run {
				writeChangeLine(&b, l)
			}
		} else {
			for _, l := range run[:contextLines] {
				writeChangeLine(&b, l)
			}
			fmt.Fprintf(&b, `<div class="line foldable"><span class="line-content">%d unchanged bindings hidden</span></div>`,
				len(run)-contextLines*2)
			for _, l := range run[len(run)-contextLines:] {
				writeChangeLine(&b, l)
			}
		}
		i = j
	}

	b.WriteString(`</pre>`)
	return b.String()
}

func writeChangeLine(b *strings.Builder, l diffutil.DiffLine) {
	class, op := "diff-equal", " "
	switch l.Type {
	case diffmatchpatch.DiffDelete:
		class, op = "diff-delete", "-"
	case diffmatchpatch.DiffInsert:
		class, op = "diff-insert", "+"
	}
	num := func(n int) string {
		if n == 0 {
			return ""
		}
		return fmt.Sprint(n)
	}
	fmt.Fprintf(b,
		`<div class="line %s"><span class="line-num">%s</span><span class="line-num">%s</span><span class="line-op">%s</span><span class="line-content">%s</span></div>`,
		class, num(l.OrigLineNum), num(l.ModLineNum), op, html.EscapeString(l.Text))
}

const changesPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Shortcut Changes</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; margin: 15px; background: #f8f9fa; color: #212529; }
h1, h2 { border-bottom: 1px solid #dee2e6; padding-bottom: 8px; color: #0d6efd; }
pre { font-family: SFMono-Regular, Menlo, Consolas, monospace; font-size: 0.9em; border: 1px solid #dee2e6; background: #fff; padding: 10px; border-radius: 4px; }
.line { display: flex; min-height: 1.4em; }
.line-num { width: 35px; padding-right: 10px; text-align: right; color: #6c757d; user-select: none; flex-shrink: 0; }
.line-op { width: 15px; margin-right: 10px; text-align: center; font-weight: bold; flex-shrink: 0; }
.line-content { white-space: pre-wrap; flex-grow: 1; }
.diff-insert { background: #e6ffed; color: #198754; }
.diff-delete { background: #ffeef0; color: #dc3545; text-decoration: line-through; }
.foldable { background: #e9ecef; color: #6c757d; font-style: italic; justify-content: center; }
</style>
</head>
<body>
<h1>Shortcut Changes</h1>
<h2>Summary</h2>
<pre>%s</pre>
<h2>Bindings</h2>
%s
</body>
</html>
`

// ShowChangesViewer renders the difference between two binding sheets as an
// HTML page and opens it in the default browser. The file is removed after a
// minute.
func ShowChangesViewer(before, after string, contextLines int) {
	if contextLines <= 0 {
		contextLines = 3
	}
	lines, summary := diffutil.BindingChanges(before, after)
	page := fmt.Sprintf(changesPage, html.EscapeString(summary.String()), renderChangesHTML(lines, contextLines))

	tmpFile, err := os.CreateTemp("", "overlaykeys-changes-*.html")
	if err != nil {
		ShowAdminNotification(LevelWarn, "Changes View Error", fmt.Sprintf("Could not create temporary file. Error: %v", err))
		return
	}
	if _, err := tmpFile.WriteString(page); err != nil {
		tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		ShowAdminNotification(LevelWarn, "Changes View Error", fmt.Sprintf("Could not write temporary file. Error: %v", err))
		return
	}
	if err := tmpFile.Close(); err != nil {
		log.Printf("Error closing temp file after write: %v", err)
	}

	path, err := filepath.Abs(tmpFile.Name())
	if err != nil {
		path = tmpFile.Name()
	}
	log.Printf("Changes view saved to: %s", path)
	if err := OpenFileInDefaultApp(path); err != nil {
		ShowAdminNotification(LevelWarn, "Changes View Error",
			fmt.Sprintf("Could not open changes in browser. File saved at: %s. Error: %v", path, err))
		return
	}
	time.AfterFunc(time.Minute, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Error deleting temporary changes file %s: %v", path, err)
		}
	})
}
