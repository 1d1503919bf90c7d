package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"logicdraw/editor"
)

// exec runs fn on the editor goroutine, bounded by execTimeout.
func (m *tui) exec(fn func(*editor.Editor) error) error {
	ctx, cancel := context.WithTimeout(m.ctx, execTimeout)
	defer cancel()
	return m.svc.Exec(ctx, fn)
}

// canvasSize is the number of cells available for the diagram; the last
// row holds the status line.
func (m *tui) canvasSize() (cols, rows int) {
	return max(m.width, 1), max(m.height-1, 1)
}

func (m *tui) resize(width, height int) {
	m.width, m.height = width, height
	cols, rows := m.canvasSize()
	m.frames.resize(cols, rows)
	err := m.exec(func(ed *editor.Editor) error {
		ed.SetViewport(float64(cols)*cellWidth, float64(rows)*cellHeight)
		return nil
	})
	if err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *tui) copyDiagram() {
	var text string
	err := m.exec(func(ed *editor.Editor) error {
		text = ed.Text()
		return nil
	})
	if err == nil {
		err = clipboard.WriteAll(text)
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("copy: %v", err)
		return
	}
	m.successMessage = "Diagram copied to clipboard"
}

func (m *tui) pasteDiagram() {
	text, err := clipboard.ReadAll()
	if err != nil {
		m.errorMessage = fmt.Sprintf("paste: %v", err)
		return
	}
	text = cleanClipboardText(text)
	if strings.TrimSpace(text) == "" {
		m.errorMessage = "Clipboard is empty"
		return
	}
	if err := m.exec(func(ed *editor.Editor) error { return ed.Import(text) }); err != nil {
		m.errorMessage = fmt.Sprintf("paste: %v", err)
		return
	}
	m.successMessage = "Diagram pasted"
}

// cleanClipboardText normalises line endings and drops a leading byte
// order mark that some clipboards add.
func cleanClipboardText(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

// scanDiagramFiles lists the diagrams in the save directory, or the
// working directory when none is configured.
func (m *tui) scanDiagramFiles() {
	m.fileList = m.fileList[:0]
	m.selectedFile = -1

	dir := m.config.SaveDirectory
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), diagramExt) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)
	if len(m.fileList) > 0 {
		m.selectedFile = 0
		m.filename = strings.TrimSuffix(m.fileList[0], diagramExt)
	}
}

// withExt appends ext unless name already ends with it.
func withExt(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}
