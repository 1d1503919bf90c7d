package main

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"logicdraw/editor"
	"logicdraw/model"
)

// frameSource is the editor's painter. Frames are built on the editor
// goroutine and handed to the UI through a one-slot notification, so the
// editor never blocks on the UI.
type frameSource struct {
	mu         sync.Mutex
	latest     frame
	cols, rows int
	ready      chan struct{}
}

func newFrameSource(cols, rows int) *frameSource {
	return &frameSource{cols: cols, rows: rows, ready: make(chan struct{}, 1)}
}

func (f *frameSource) resize(cols, rows int) {
	f.mu.Lock()
	f.cols, f.rows = cols, rows
	f.mu.Unlock()
}

// Paint is an editor.Painter.
func (f *frameSource) Paint(ed *editor.Editor) {
	f.mu.Lock()
	cols, rows := f.cols, f.rows
	f.mu.Unlock()

	c := NewCanvas(cols, rows)
	c.Draw(ed.Graph(), ed.View())
	next := frame{canvas: c, status: describe(ed)}

	f.mu.Lock()
	f.latest = next
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

func (f *frameSource) current() frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest
}

// wait returns a command that delivers the next frame.
func (f *frameSource) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ready:
			return frameMsg(f.current())
		case <-ctx.Done():
			return nil
		}
	}
}

func describe(ed *editor.Editor) status {
	var st status
	g := ed.Graph()
	for _, el := range g.Elements() {
		switch el.Kind() {
		case model.KindPin:
			st.pins++
		case model.KindWire:
			st.wires++
		default:
			st.gates++
		}
	}
	st.zoom = ed.View().Scale
	st.snap = ed.Snap()
	st.undo, st.redo = ed.History().Stats()

	if w, err := g.Wire(ed.CurrentWire()); err == nil && w.Selected {
		st.selected = fmt.Sprintf("wire %d", w.ID)
	} else if el, err := g.Get(ed.Current()); err == nil {
		st.selected = fmt.Sprintf("%s %d", el.Kind(), el.Common().ID)
		if gate, ok := el.(*model.Gate); ok && gate.Type == model.KindOrGate {
			st.selected += fmt.Sprintf(" threshold %d", gate.Threshold)
		}
	}
	if p := ed.StartPin(); p != model.NoID {
		st.selected += fmt.Sprintf(" connecting from pin %d", p)
	}
	return st
}
