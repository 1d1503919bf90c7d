package editor

import (
	"fmt"

	"logicdraw/geometry"
	"logicdraw/model"
)

// Action classifies a pointer event.
type Action int

const (
	ActionDown Action = iota // press: hit testing
	ActionMove
	ActionUp // release: merge
	ActionStartZoom
	ActionZoom
	ActionStartPan
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionStartZoom:
		return "start-zoom"
	case ActionZoom:
		return "zoom"
	case ActionStartPan:
		return "start-pan"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Input is one pointer event in screen coordinates. X2 and Y2 carry the
// second finger of a pinch.
type Input struct {
	Action  Action
	X, Y    float64
	X2, Y2  float64
	Pointer int
}

// minPinchDistance is the finger spread below which a pinch is ignored.
const minPinchDistance = 10

// Handle applies one pointer event. An error means a lookup failed before
// the graph was changed; the gesture should be abandoned.
func (e *Editor) Handle(in Input) error {
	var err error
	switch in.Action {
	case ActionDown:
		err = e.down(in.X, in.Y)
	case ActionMove:
		err = e.move(in.X, in.Y)
	case ActionUp:
		err = e.up(in.X, in.Y)
	case ActionStartZoom:
		e.startZoom(in)
	case ActionZoom:
		e.zoom(in)
	case ActionStartPan:
		e.startPan(in.X, in.Y)
	default:
		err = fmt.Errorf("unknown action %d", int(in.Action))
	}
	e.prevX, e.prevY = in.X, in.Y
	return err
}

func (e *Editor) down(sx, sy float64) error {
	e.pressX, e.pressY = sx, sy
	e.startPan(sx, sy)
	x, y := e.view.ToModel(sx, sy)

	var wireHit, toggled bool
	switch {
	case e.current == model.NoID:
		wireHit, toggled = e.hitTestWire(x, y, true)
	case e.startPin != model.NoID && e.endPin == model.NoID:
		wireHit, toggled = e.hitTestWire(x, y, false)
	}
	if toggled {
		return nil
	}

	pinHit := false
	if !wireHit && e.pinsOpen() {
		pinHit = e.HitTestPin(x, y)
	}

	switch {
	case pinHit && e.startPin != model.NoID && e.endPin != model.NoID:
		return e.connect()
	case pinHit:
		return nil
	case wireHit && e.startPin != model.NoID && e.endPin == model.NoID:
		return e.split(x, y)
	case wireHit:
		return nil
	}

	if e.HitTestElement(x, y) {
		if e.startPin != model.NoID && e.endPin != model.NoID {
			e.resetPins()
		}
		return nil
	}
	if e.startPin != model.NoID && e.endPin == model.NoID {
		return e.extend(x, y)
	}
	e.resetPins()
	e.current = model.NoID
	return nil
}

// pinsOpen reports whether the pin hit test applies: the current element
// shows its pins, is not itself a pin and a connection slot is free.
func (e *Editor) pinsOpen() bool {
	cur, err := e.graph.Get(e.current)
	if err != nil || cur.Kind() == model.KindPin || !cur.Common().ShowPins {
		return false
	}
	return e.startPin == model.NoID || e.endPin == model.NoID
}

func (e *Editor) connect() error {
	start, err := e.graph.Pin(e.startPin)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	end, err := e.graph.Pin(e.endPin)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	e.Snapshot()
	w := e.graph.InsertWire(start, end)
	Logger().Debug("connected", "wire", w.ID, "start", start.ID, "end", end.ID)
	return nil
}

func (e *Editor) split(x, y float64) error {
	w, err := e.graph.Wire(e.currentWire)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	if _, err := e.graph.Pin(e.startPin); err != nil {
		return fmt.Errorf("split: %w", err)
	}

	e.Snapshot()
	e.selectWire(w, false)
	pin, err := e.graph.SplitWire(w.ID, e.startPin, x, y, e.opts.SnapToLine)
	if err != nil {
		return err
	}
	Logger().Debug("split wire", "wire", w.ID, "pin", pin.ID)

	e.startPin = model.NoID
	e.endPin = model.NoID
	e.currentWire = model.NoID
	e.current = pin.ID
	pin.ShowPins = true
	return nil
}

// extend runs the pending connection out to a new pin at (x, y), which
// becomes the start of the next segment.
func (e *Editor) extend(x, y float64) error {
	start, err := e.graph.Pin(e.startPin)
	if err != nil {
		return fmt.Errorf("extend: %w", err)
	}
	e.Snapshot()
	pin := e.graph.InsertPin(x, y)
	e.graph.InsertWire(start, pin)
	start.Selected = false
	pin.Selected = true
	e.startPin = pin.ID
	return nil
}

func (e *Editor) move(sx, sy float64) error {
	if e.current == model.NoID {
		e.view = e.saved.Translated(sx-e.anchorX, sy-e.anchorY)
		return nil
	}

	cur, err := e.graph.Get(e.current)
	if err != nil {
		e.current = model.NoID
		return fmt.Errorf("move: %w", err)
	}

	if !e.moveStarted {
		e.Snapshot()
		e.moveStarted = true
		if cur.Kind() != model.KindPin {
			e.detach()
		}
		return nil
	}

	dx := (sx - e.prevX) / e.view.Scale
	dy := (sy - e.prevY) / e.view.Scale
	return e.graph.Translate(e.current, dx, dy)
}

// detach pulls a wire end off an element pin under the press point.
func (e *Editor) detach() {
	x, y := e.view.ToModel(e.pressX, e.pressY)
	pin, w, ok := e.graph.DetachAt(x, y)
	if !ok {
		return
	}
	Logger().Debug("detached wire", "wire", w.ID, "pin", pin.ID)
	e.current = pin.ID
	pin.ShowPins = true
	e.resetPins()
}

func (e *Editor) up(sx, sy float64) error {
	defer func() { e.moveStarted = false }()

	p, err := e.graph.Pin(e.current)
	if err != nil || !p.Standalone() {
		return nil
	}
	x, y := e.view.ToModel(sx, sy)
	if _, _, ok := e.graph.MergeTarget(p.ID, x, y); !ok {
		return nil
	}
	if !e.moveStarted {
		e.Snapshot()
	}

	res, err := e.graph.MergePin(p.ID, x, y)
	if err != nil {
		return err
	}
	Logger().Debug("merged pin", "pin", p.ID, "target", res.Target,
		"removedWires", res.RemovedWires, "removedPins", res.RemovedPins)
	for _, id := range res.RemovedPins {
		if id == e.current {
			e.current = model.NoID
		}
		if id == e.startPin || id == e.endPin {
			e.resetPins()
		}
	}
	for _, id := range res.RemovedWires {
		if id == e.currentWire {
			e.currentWire = model.NoID
		}
	}
	return nil
}

func (e *Editor) startPan(sx, sy float64) {
	e.saved = e.view
	e.anchorX, e.anchorY = sx, sy
}

func (e *Editor) startZoom(in Input) {
	e.saved = e.view
	e.pinchDist = geometry.Distance(in.X, in.Y, in.X2, in.Y2)
	e.pinchMidX, e.pinchMidY = geometry.Midpoint(in.X, in.Y, in.X2, in.Y2)
	e.pinchValid = e.pinchDist >= minPinchDistance
}

func (e *Editor) zoom(in Input) {
	if !e.pinchValid {
		return
	}
	d := geometry.Distance(in.X, in.Y, in.X2, in.Y2)
	if d < minPinchDistance {
		return
	}
	e.view = e.saved.ScaledAbout(e.pinchMidX, e.pinchMidY, d/e.pinchDist, e.opts.MinZoom, e.opts.MaxZoom)
}
