package main

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"logicdraw/config"
	"logicdraw/editor"
)

func newTestUI(t *testing.T) tui {
	t.Helper()
	cfg := config.Default()
	cfg.SaveDirectory = t.TempDir()

	ed := editor.New(editorOptions(cfg))
	frames := newFrameSource(40, 20)
	svc := editor.NewService(ed, frames.Paint)
	ctx, cancel := context.WithCancel(context.Background())
	if err := svc.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		cancel()
		svc.Stop()
	})

	m := initialModel(ctx, svc, frames, cfg, "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 21})
	return next.(tui)
}

func press(t *testing.T, m tui, keys ...string) tui {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(tui)
	}
	return m
}

func diagramText(t *testing.T, m tui) string {
	t.Helper()
	var text string
	if err := m.exec(func(ed *editor.Editor) error {
		text = ed.Text()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	return text
}

func TestKeysInsertAndUndo(t *testing.T) {
	m := newTestUI(t)

	m = press(t, m, "a")
	if got := diagramText(t, m); !strings.HasPrefix(got, "AND;0;85;85;1;2;3;4\n") {
		t.Fatalf("after a: %q", got)
	}
	m = press(t, m, "p")
	if got := diagramText(t, m); !strings.Contains(got, "PIN;5;100;100\n") {
		t.Errorf("after p: %q", got)
	}

	m = press(t, m, "u", "u")
	if got := diagramText(t, m); got != "" {
		t.Errorf("after undo: %q", got)
	}
	m = press(t, m, "u")
	if m.errorMessage != "Nothing to undo" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
	m = press(t, m, "U")
	if got := diagramText(t, m); !strings.HasPrefix(got, "AND;0;") {
		t.Errorf("after redo: %q", got)
	}
}

func TestDeleteWithoutSelection(t *testing.T) {
	m := newTestUI(t)
	m = press(t, m, "d")
	if m.errorMessage != "Nothing selected" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
	m = press(t, m, "+")
	if m.errorMessage != "Select an OR gate first" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestSaveAndOpen(t *testing.T) {
	m := newTestUI(t)
	m = press(t, m, "r", "s", "latch", "enter")
	if m.mode != ModeNormal || m.errorMessage != "" {
		t.Fatalf("save left mode %v, error %q", m.mode, m.errorMessage)
	}
	path := filepath.Join(m.config.SaveDirectory, "latch.ldr")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "OR;0;85;85;1;") {
		t.Errorf("saved %q", data)
	}
	if m.path != path {
		t.Errorf("path = %q, want %q", m.path, path)
	}

	m = press(t, m, "n", "y")
	if got := diagramText(t, m); got != "" {
		t.Fatalf("after clear: %q", got)
	}

	m = press(t, m, "o")
	if len(m.fileList) != 1 || m.filename != "latch" {
		t.Fatalf("file list %v, filename %q", m.fileList, m.filename)
	}
	m = press(t, m, "enter")
	if got := diagramText(t, m); got != string(data) {
		t.Errorf("opened %q, want %q", got, data)
	}
}

func TestSaveAsAsksBeforeOverwrite(t *testing.T) {
	m := newTestUI(t)
	existing := filepath.Join(m.config.SaveDirectory, "taken.ldr")
	if err := os.WriteFile(existing, []byte("PIN;0;0;0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m = press(t, m, "a", "s", "taken", "enter")
	if m.mode != ModeConfirm || m.confirmAction != ConfirmOverwriteFile {
		t.Fatalf("mode %v, confirm %v", m.mode, m.confirmAction)
	}
	m = press(t, m, "n")
	if data, _ := os.ReadFile(existing); string(data) != "PIN;0;0;0\n" {
		t.Errorf("declined overwrite changed the file: %q", data)
	}

	m = press(t, m, "esc", "s", "taken", "enter", "y")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v after confirming", m.mode)
	}
	if data, _ := os.ReadFile(existing); !strings.HasPrefix(string(data), "AND;") {
		t.Errorf("overwrite wrote %q", data)
	}
}

func TestWheelZoomsAtPointer(t *testing.T) {
	m := newTestUI(t)
	next, _ := m.Update(tea.MouseMsg{X: 0, Y: 0, Type: tea.MouseWheelUp})
	m = next.(tui)

	var view editor.Transform
	if err := m.exec(func(ed *editor.Editor) error {
		view = ed.View()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if view.Scale != zoomFactor {
		t.Errorf("scale = %v, want %v", view.Scale, zoomFactor)
	}
	// the cell centre under the pointer stays fixed
	if x, y := view.ToModel(screenAt(0, 0)); math.Abs(x-2.5) > 1e-9 || math.Abs(y-5) > 1e-9 {
		t.Errorf("pointer moved to model (%v,%v)", x, y)
	}
}

func TestFramesReachTheView(t *testing.T) {
	m := newTestUI(t)
	m = press(t, m, "a")

	ctx, cancel := context.WithTimeout(m.ctx, 5*time.Second)
	defer cancel()
	// an earlier paint may still be pending, so wait for the one with the gate
	var fm frameMsg
	for fm.status.gates == 0 {
		msg, ok := m.frames.wait(ctx)().(frameMsg)
		if !ok {
			t.Fatal("no frame with the gate arrived")
		}
		fm = msg
	}
	next, _ := m.Update(fm)
	m = next.(tui)

	view := m.View()
	if !strings.Contains(view, "&") || !strings.Contains(view, "1 gates 4 pins 0 wires") {
		t.Errorf("view missing gate or counts:\n%s", view)
	}
}

func TestHelpToggles(t *testing.T) {
	m := newTestUI(t)
	m = press(t, m, "?")
	if !m.help || !strings.Contains(m.View(), "logicdraw help") {
		t.Fatal("help not shown")
	}
	m = press(t, m, "j", "k", "esc")
	if m.help {
		t.Error("esc should close help")
	}
}
