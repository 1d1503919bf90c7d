package main

import (
	"errors"

	"logicdraw/editor"
)

var errNothingTo = errors.New("nothing to")

func (m *tui) undo() {
	m.historyStep("undo", func(ed *editor.Editor) error {
		if !ed.History().CanUndo() {
			return errNothingTo
		}
		return ed.Undo()
	})
}

func (m *tui) redo() {
	m.historyStep("redo", func(ed *editor.Editor) error {
		if !ed.History().CanRedo() {
			return errNothingTo
		}
		return ed.Redo()
	})
}

func (m *tui) historyStep(name string, fn func(*editor.Editor) error) {
	err := m.exec(fn)
	switch {
	case errors.Is(err, errNothingTo):
		m.errorMessage = "Nothing to " + name
	case err != nil:
		m.errorMessage = name + ": " + err.Error()
	}
}
