package editor

import (
	"logicdraw/geometry"
	"logicdraw/model"
)

// HitTestWire looks for a wire body under the model point (x, y). Endpoint
// handles do not count as body hits. An unselected wire is selected along
// with its endpoint pins; hitting an already selected wire deselects it and
// reports no hit. With deselect set every other selected wire is cleared.
func (e *Editor) HitTestWire(x, y float64, deselect bool) bool {
	found, _ := e.hitTestWire(x, y, deselect)
	return found
}

// hitTestWire also reports whether the click toggled a selected wire off.
func (e *Editor) hitTestWire(x, y float64, deselect bool) (found, toggled bool) {
	var hit *model.Wire
	for _, w := range e.graph.Wires() {
		if w.StartBounds.Contains(x, y) || w.EndBounds.Contains(x, y) {
			continue
		}
		if !w.WireBounds.Contains(x, y) {
			continue
		}
		if w.Selected {
			e.selectWire(w, false)
			if e.currentWire == w.ID {
				e.currentWire = model.NoID
			}
			toggled = true
		} else {
			hit = w
		}
		break
	}

	if deselect {
		e.deselectWiresExcept(hit)
	}
	if hit == nil {
		if deselect {
			e.currentWire = model.NoID
		}
		return false, toggled
	}
	e.selectWire(hit, true)
	e.currentWire = hit.ID
	return true, false
}

// selectWire sets the selection of w, its endpoint pins and the pin
// visibility of their parents.
func (e *Editor) selectWire(w *model.Wire, on bool) {
	w.Selected = on
	for _, id := range []int{w.Start, w.End} {
		p, err := e.graph.Pin(id)
		if err != nil {
			continue
		}
		p.Selected = on
		if on {
			e.showPins(p.Parent)
		} else {
			e.hidePins(p.Parent)
		}
	}
}

func (e *Editor) showPins(gateID int) {
	if gate, err := e.graph.Gate(gateID); err == nil {
		gate.ShowPins = true
	}
}

// hidePins hides the pins of a gate unless it is the current element or
// owns the pending start pin.
func (e *Editor) hidePins(gateID int) {
	if gateID == e.current || gateID == e.parentOf(e.startPin) {
		return
	}
	if gate, err := e.graph.Gate(gateID); err == nil {
		gate.ShowPins = false
	}
}

// deselectWiresExcept clears every selected wire other than keep. Pins whose
// parent is also a parent of one of keep's endpoints stay as they are.
func (e *Editor) deselectWiresExcept(keep *model.Wire) {
	shared := map[int]bool{}
	if keep != nil {
		for _, id := range []int{keep.Start, keep.End} {
			if p, err := e.graph.Pin(id); err == nil && !p.Standalone() {
				shared[p.Parent] = true
			}
		}
	}

	for _, w := range e.graph.Wires() {
		if w == keep || !w.Selected {
			continue
		}
		w.Selected = false
		for _, id := range []int{w.Start, w.End} {
			p, err := e.graph.Pin(id)
			if err != nil || shared[p.Parent] || p.ID == e.startPin {
				continue
			}
			p.Selected = false
			e.hidePins(p.Parent)
		}
	}
}

// HitTestPin runs the connect ritual against the pins of the current
// element. The first hit sets the start pin, a hit on a pin of a different
// parent sets the end pin, hitting the start pin again cancels it and a hit
// while both are set clears both.
func (e *Editor) HitTestPin(x, y float64) bool {
	cur, err := e.graph.Get(e.current)
	if err != nil {
		return false
	}
	for _, p := range e.graph.PinsOf(cur) {
		if geometry.Distance(p.X, p.Y, x, y) > p.Reach() {
			continue
		}
		switch {
		case e.startPin != model.NoID && e.endPin != model.NoID:
			e.resetPins()
			return true
		case e.startPin == model.NoID:
			e.startPin = p.ID
			p.Selected = true
			return true
		case p.ID == e.startPin:
			p.Selected = false
			e.startPin = model.NoID
			return true
		case e.parentOf(p.ID) != e.parentOf(e.startPin):
			e.endPin = p.ID
			p.Selected = true
			return true
		}
		return false
	}
	return false
}

func (e *Editor) parentOf(pinID int) int {
	p, err := e.graph.Pin(pinID)
	if err != nil {
		return model.NoID
	}
	return p.Parent
}

// HitTestElement finds the first gate or standalone pin whose bounds
// contain (x, y) and makes it the current element with its pins shown.
// Every other element has its pins hidden unless it owns the pending start
// pin.
func (e *Editor) HitTestElement(x, y float64) bool {
	keep := e.parentOf(e.startPin)
	var found model.Element
	for _, el := range e.graph.Elements() {
		if !topLevel(el) {
			continue
		}
		b := el.Common()
		if found == nil && el.Bounds().Contains(x, y) {
			found = el
			continue
		}
		if b.ID != keep {
			b.ShowPins = false
		}
	}
	if found == nil {
		return false
	}
	found.Common().ShowPins = true
	e.current = found.Common().ID
	return true
}

// topLevel reports whether el can be picked by the element hit test.
func topLevel(el model.Element) bool {
	switch v := el.(type) {
	case *model.Gate:
		return true
	case *model.Pin:
		return v.Standalone()
	}
	return false
}
