package model

import (
	"fmt"

	"logicdraw/geometry"
)

// Translate moves the element by (dx, dy). Gates carry their pins along;
// every wire touching a moved pin has its geometry refreshed.
func (g *Graph) Translate(id int, dx, dy float64) error {
	e, err := g.Get(id)
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	switch v := e.(type) {
	case *Pin:
		v.X += dx
		v.Y += dy
		g.refreshPinWires(v)
	case *Gate:
		v.X += dx
		v.Y += dy
		for _, p := range g.PinsOf(v) {
			p.X += dx
			p.Y += dy
			g.refreshPinWires(p)
		}
	case *Wire:
		// wires follow their pins
	}
	return nil
}

// Rewire moves terminal t of a wire onto another pin.
func (g *Graph) Rewire(wireID int, t Terminal, pinID int) error {
	w, err := g.Wire(wireID)
	if err != nil {
		return fmt.Errorf("rewire: %w", err)
	}
	to, err := g.Pin(pinID)
	if err != nil {
		return fmt.Errorf("rewire: %w", err)
	}
	if _, err := g.Pin(w.PinAt(t)); err != nil {
		return fmt.Errorf("rewire %s of wire %d: %w", t, wireID, err)
	}
	g.rewire(w, t, to)
	return nil
}

// rewire moves terminal t of w onto to. When that leaves both ends on the
// same pin the wire is removed and true is returned.
func (g *Graph) rewire(w *Wire, t Terminal, to *Pin) bool {
	if old := g.pin(w.PinAt(t)); old != nil {
		old.Wires = removeID(old.Wires, w.ID)
	}
	w.setPin(t, to.ID)
	to.Wires = append(to.Wires, w.ID)

	if w.Start == w.End {
		to.Wires = removeID(to.Wires, w.ID)
		g.Remove(w.ID)
		return true
	}
	g.RefreshWire(w)
	return false
}

// SplitWire cuts a wire at (x, y) with a new standalone pin. The wire keeps
// its id and ends on the new pin; a second wire runs from the new pin to the
// old end. When startID names a pin a third wire joins it to the new pin.
// With snap set the new pin lands on the wire's line instead of (x, y).
func (g *Graph) SplitWire(wireID, startID int, x, y float64, snap bool) (*Pin, error) {
	w, err := g.Wire(wireID)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	from, err := g.Pin(w.Start)
	if err != nil {
		return nil, fmt.Errorf("split wire %d: %w", wireID, err)
	}
	oldEnd, err := g.Pin(w.End)
	if err != nil {
		return nil, fmt.Errorf("split wire %d: %w", wireID, err)
	}
	var start *Pin
	if startID != NoID {
		if start, err = g.Pin(startID); err != nil {
			return nil, fmt.Errorf("split wire %d: %w", wireID, err)
		}
	}

	if snap {
		p := geometry.NearestPointOnLine(
			geometry.Vec{X: from.X, Y: from.Y},
			geometry.Vec{X: oldEnd.X, Y: oldEnd.Y},
			geometry.Vec{X: x, Y: y},
		)
		x, y = p.X, p.Y
	}

	pin := g.InsertPin(x, y)
	g.rewire(w, TerminalEnd, pin)
	if start != nil {
		g.InsertWire(start, pin)
		start.Selected = false
	}
	g.InsertWire(pin, oldEnd)
	return pin, nil
}

// DetachAt looks for a wire whose start or end handle contains (x, y) and
// whose pin there belongs to an element. The first such wire is pulled off
// onto a new standalone pin at (x, y), which is returned.
func (g *Graph) DetachAt(x, y float64) (*Pin, *Wire, bool) {
	for _, w := range g.Wires() {
		var t Terminal
		switch {
		case w.StartBounds.Contains(x, y) && g.owned(w.Start):
			t = TerminalStart
		case w.EndBounds.Contains(x, y) && g.owned(w.End):
			t = TerminalEnd
		default:
			continue
		}

		old := g.pin(w.PinAt(t))
		pin := g.InsertPin(x, y)
		g.rewire(w, t, pin)
		old.Selected = false
		return pin, w, true
	}
	return nil, nil, false
}

func (g *Graph) owned(pinID int) bool {
	p := g.pin(pinID)
	return p != nil && !p.Standalone()
}

// MergeTarget finds the first wire whose start or end handle contains
// (x, y) and whose pin there is standalone and different from pinID.
func (g *Graph) MergeTarget(pinID int, x, y float64) (*Wire, Terminal, bool) {
	for _, w := range g.Wires() {
		if w.StartBounds.Contains(x, y) && w.Start != pinID && g.standalone(w.Start) {
			return w, TerminalStart, true
		}
		if w.EndBounds.Contains(x, y) && w.End != pinID && g.standalone(w.End) {
			return w, TerminalEnd, true
		}
	}
	return nil, TerminalStart, false
}

func (g *Graph) standalone(pinID int) bool {
	p := g.pin(pinID)
	return p != nil && p.Standalone()
}

// MergeResult describes what a merge changed.
type MergeResult struct {
	Merged       bool
	Target       int   // pin that was merged away
	RemovedWires []int // wires deleted because they collapsed onto one pin
	RemovedPins  []int
}

// MergePin splices the pin pinID onto the standalone wire end under (x, y).
// Every wire on the target pin moves to pinID, wires that collapse onto a
// single pin are deleted, and pins left without wires are removed.
func (g *Graph) MergePin(pinID int, x, y float64) (MergeResult, error) {
	var res MergeResult
	dragged, err := g.Pin(pinID)
	if err != nil {
		return res, fmt.Errorf("merge: %w", err)
	}
	w, t, ok := g.MergeTarget(pinID, x, y)
	if !ok {
		return res, nil
	}
	old := g.pin(w.PinAt(t))
	res.Merged = true
	res.Target = old.ID

	if g.rewire(w, t, dragged) {
		res.RemovedWires = append(res.RemovedWires, w.ID)
	}

	for _, id := range append([]int(nil), old.Wires...) {
		ow := g.wire(id)
		if ow == nil {
			continue
		}
		if ow.Start == old.ID && g.rewire(ow, TerminalStart, dragged) {
			res.RemovedWires = append(res.RemovedWires, ow.ID)
			continue
		}
		if ow.End == old.ID && g.rewire(ow, TerminalEnd, dragged) {
			res.RemovedWires = append(res.RemovedWires, ow.ID)
		}
	}

	if len(old.Wires) == 0 {
		g.Remove(old.ID)
		res.RemovedPins = append(res.RemovedPins, old.ID)
	}
	if len(dragged.Wires) == 0 {
		g.Remove(dragged.ID)
		res.RemovedPins = append(res.RemovedPins, dragged.ID)
	} else {
		g.refreshPinWires(dragged)
	}
	return res, nil
}

// Delete removes an element and everything that would dangle without it:
// a wire is unlinked from its pins, a standalone pin takes its wires with
// it and a gate takes its pins and their wires.
func (g *Graph) Delete(id int) error {
	e, err := g.Get(id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	switch v := e.(type) {
	case *Wire:
		g.deleteWire(v)
	case *Pin:
		if !v.Standalone() {
			return fmt.Errorf("delete pin %d of element %d: %w", v.ID, v.Parent, ErrOwnedPin)
		}
		g.deletePin(v)
	case *Gate:
		for _, p := range g.PinsOf(v) {
			g.deletePin(p)
		}
		g.Remove(v.ID)
	}
	return nil
}

func (g *Graph) deleteWire(w *Wire) {
	if p := g.pin(w.Start); p != nil {
		p.Wires = removeID(p.Wires, w.ID)
	}
	if p := g.pin(w.End); p != nil {
		p.Wires = removeID(p.Wires, w.ID)
	}
	g.Remove(w.ID)
}

func (g *Graph) deletePin(p *Pin) {
	for _, id := range append([]int(nil), p.Wires...) {
		if w := g.wire(id); w != nil {
			g.deleteWire(w)
		}
	}
	g.Remove(p.ID)
}

// removeID drops every occurrence of id from ids.
func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
