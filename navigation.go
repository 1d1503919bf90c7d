package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"logicdraw/editor"
)

func (m *tui) handlePan(key string, speed int) {
	step := float64(panStep * speed)
	var dx, dy float64
	switch key {
	case "h", "left", "H", "shift+left":
		dx = step * cellWidth
	case "l", "right", "L", "shift+right":
		dx = -step * cellWidth
	case "k", "up", "K", "shift+up":
		dy = step * cellHeight
	case "j", "down", "J", "shift+down":
		dy = -step * cellHeight
	}
	if err := m.exec(func(ed *editor.Editor) error {
		ed.Pan(dx, dy)
		return nil
	}); err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *tui) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *tui) zoomBy(factor float64) {
	if err := m.exec(func(ed *editor.Editor) error {
		w, h := ed.Viewport()
		ed.ZoomAt(w/2, h/2, factor)
		return nil
	}); err != nil {
		m.errorMessage = err.Error()
	}
}

// handleMouse turns terminal mouse reports into pointer inputs. A left
// press starts a gesture, motion or repeated presses while held continue
// it, and the release ends it.
func (m *tui) handleMouse(msg tea.MouseMsg) {
	_, rows := m.canvasSize()
	if msg.Y >= rows && !m.pressed {
		return
	}
	sx, sy := screenAt(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		action := editor.ActionDown
		if m.pressed {
			action = editor.ActionMove
		}
		m.pressed = true
		m.svc.Send(editor.Input{Action: action, X: sx, Y: sy})
	case tea.MouseMotion:
		if m.pressed {
			m.svc.Send(editor.Input{Action: editor.ActionMove, X: sx, Y: sy})
		}
	case tea.MouseRelease:
		if m.pressed {
			m.pressed = false
			m.svc.Send(editor.Input{Action: editor.ActionUp, X: sx, Y: sy})
		}
	case tea.MouseWheelUp:
		m.wheel(sx, sy, zoomFactor)
	case tea.MouseWheelDown:
		m.wheel(sx, sy, 1/zoomFactor)
	}
}

func (m *tui) wheel(sx, sy, factor float64) {
	if err := m.exec(func(ed *editor.Editor) error {
		ed.ZoomAt(sx, sy, factor)
		return nil
	}); err != nil {
		m.errorMessage = err.Error()
	}
}
