// Package editor drives an element graph from pointer gestures: hit tests,
// connect, split, detach, merge, move, pan and zoom, with snapshot based
// undo. An Editor is not safe for concurrent use; Service runs one on a
// dedicated goroutine.
package editor

import (
	"fmt"

	"logicdraw/codec"
	"logicdraw/geometry"
	"logicdraw/history"
	"logicdraw/model"
)

// Options configures a new Editor.
type Options struct {
	Graph      model.Options
	SnapToLine bool
	MinZoom    float64
	MaxZoom    float64
	// Viewport size in screen units, used to find the centre point.
	Width  float64
	Height float64
}

func DefaultOptions() Options {
	return Options{
		Graph:   model.DefaultOptions(),
		MinZoom: 0.1,
		MaxZoom: 10,
		Width:   800,
		Height:  600,
	}
}

// Editor holds the graph, its history and the state carried between
// pointer events.
type Editor struct {
	graph   *model.Graph
	history *history.Manager
	opts    Options
	view    Transform

	current     int
	currentWire int
	startPin    int
	endPin      int
	moveStarted bool

	prevX, prevY   float64
	pressX, pressY float64

	// pan and pinch anchors
	saved      Transform
	anchorX    float64
	anchorY    float64
	pinchDist  float64
	pinchMidX  float64
	pinchMidY  float64
	pinchValid bool
}

func New(opts Options) *Editor {
	e := &Editor{
		graph:   model.New(opts.Graph),
		history: history.New(),
		opts:    opts,
		view:    Identity(),
	}
	e.resetState()
	return e
}

func (e *Editor) Graph() *model.Graph       { return e.graph }
func (e *Editor) History() *history.Manager { return e.history }

// Current returns the id of the element selected by the last element hit
// test, or model.NoID.
func (e *Editor) Current() int     { return e.current }
func (e *Editor) CurrentWire() int { return e.currentWire }
func (e *Editor) StartPin() int    { return e.startPin }
func (e *Editor) EndPin() int      { return e.endPin }
func (e *Editor) Snap() bool       { return e.opts.SnapToLine }

// ToggleSnap flips whether split pins land on the wire's line.
func (e *Editor) ToggleSnap() bool {
	e.opts.SnapToLine = !e.opts.SnapToLine
	return e.opts.SnapToLine
}

func (e *Editor) resetState() {
	e.current = model.NoID
	e.currentWire = model.NoID
	e.startPin = model.NoID
	e.endPin = model.NoID
	e.moveStarted = false
}

// resetPins clears a pending connection and deselects its pins.
func (e *Editor) resetPins() {
	for _, id := range []int{e.startPin, e.endPin} {
		if id == model.NoID {
			continue
		}
		if p, err := e.graph.Pin(id); err == nil {
			p.Selected = false
		}
	}
	e.startPin = model.NoID
	e.endPin = model.NoID
}

// Snapshot pushes the current graph text onto the undo stack.
func (e *Editor) Snapshot() {
	e.history.Push(codec.Encode(e.graph))
}

// Text returns the serialised graph.
func (e *Editor) Text() string {
	return codec.Encode(e.graph)
}

// Load replaces the graph with the decoded text and forgets all history.
// On a decode error the current graph is kept.
func (e *Editor) Load(text string) error {
	if err := e.replace(text); err != nil {
		return err
	}
	e.history.Clear()
	return nil
}

// Import replaces the graph with the decoded text as an undoable step.
func (e *Editor) Import(text string) error {
	before := e.Text()
	if err := e.replace(text); err != nil {
		return err
	}
	e.history.Push(before)
	return nil
}

func (e *Editor) replace(text string) error {
	g, err := codec.Decode(text, e.opts.Graph)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	e.graph.Replace(g)
	e.resetState()
	return nil
}

// Undo restores the previous snapshot. It does nothing when there is none.
func (e *Editor) Undo() error {
	return e.history.Undo(e.Text(), e.replace)
}

// Redo reapplies the last undone snapshot.
func (e *Editor) Redo() error {
	return e.history.Redo(e.Text(), e.replace)
}

// Clear empties the graph. It can be undone.
func (e *Editor) Clear() {
	e.Snapshot()
	e.graph.Clear()
	e.resetState()
}

// InsertPin adds a standalone pin at the centre of the viewport.
func (e *Editor) InsertPin() *model.Pin {
	e.Snapshot()
	x, y := e.CenterPoint()
	return e.graph.InsertPin(x, y)
}

// InsertGate adds a gate centred in the viewport.
func (e *Editor) InsertGate(kind model.Kind) (*model.Gate, error) {
	if !kind.IsGate() {
		return nil, fmt.Errorf("insert: %s is not a gate", kind)
	}
	e.Snapshot()
	x, y := e.CenterPoint()
	return e.graph.InsertGate(kind, x-model.GateSize/2, y-model.GateSize/2), nil
}

// DeleteSelected removes the selected wire, or failing that the current
// element, along with everything attached to it. It reports whether
// anything was deleted.
func (e *Editor) DeleteSelected() (bool, error) {
	target := model.NoID
	if w, err := e.graph.Wire(e.currentWire); err == nil && w.Selected {
		target = w.ID
	} else if e.current != model.NoID {
		target = e.current
	}
	if target == model.NoID {
		return false, nil
	}
	if _, err := e.graph.Get(target); err != nil {
		e.resetState()
		return false, fmt.Errorf("delete: %w", err)
	}

	e.Snapshot()
	if err := e.graph.Delete(target); err != nil {
		return false, err
	}
	e.resetState()
	return true, nil
}

// AdjustThreshold changes the threshold of the current OR gate by delta,
// never going below zero.
func (e *Editor) AdjustThreshold(delta int) (int, error) {
	g, err := e.graph.Gate(e.current)
	if err != nil {
		return 0, fmt.Errorf("threshold: %w", err)
	}
	return e.SetThreshold(g.ID, g.Threshold+delta)
}

// SetThreshold sets the threshold of an OR gate.
func (e *Editor) SetThreshold(id, value int) (int, error) {
	g, err := e.graph.Gate(id)
	if err != nil {
		return 0, fmt.Errorf("threshold: %w", err)
	}
	if g.Type != model.KindOrGate {
		return 0, fmt.Errorf("threshold: gate %d is an %s", g.ID, g.Type)
	}
	value = max(value, 0)
	if value != g.Threshold {
		e.Snapshot()
		g.Threshold = value
	}
	return value, nil
}

// View returns the current pan/zoom transform.
func (e *Editor) View() Transform { return e.view }

// ResetZoom restores the identity transform.
func (e *Editor) ResetZoom() {
	e.view = Identity()
}

// SetZoom sets the scale about the viewport centre.
func (e *Editor) SetZoom(scale float64) {
	if e.view.Scale == 0 {
		e.view = Identity()
	}
	cx, cy := e.opts.Width/2, e.opts.Height/2
	e.view = e.view.ScaledAbout(cx, cy, scale/e.view.Scale, e.opts.MinZoom, e.opts.MaxZoom)
}

// ZoomAt scales the view by factor about a screen point, as a mouse wheel
// does.
func (e *Editor) ZoomAt(x, y, factor float64) {
	e.view = e.view.ScaledAbout(x, y, factor, e.opts.MinZoom, e.opts.MaxZoom)
}

// Pan moves the view by a screen delta.
func (e *Editor) Pan(dx, dy float64) {
	e.view = e.view.Translated(dx, dy)
}

// SetViewport records the screen size used by CenterPoint and SetZoom.
func (e *Editor) SetViewport(width, height float64) {
	e.opts.Width = width
	e.opts.Height = height
}

func (e *Editor) Viewport() (width, height float64) {
	return e.opts.Width, e.opts.Height
}

// CenterPoint returns the model point at the centre of the viewport.
func (e *Editor) CenterPoint() (float64, float64) {
	cx, cy := geometry.Midpoint(0, 0, e.opts.Width, e.opts.Height)
	return e.view.ToModel(cx, cy)
}
