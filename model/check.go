package model

import (
	"errors"
	"fmt"
	"slices"
)

// Check verifies the cross-reference invariants of the graph: every wire
// end resolves to a pin listing that wire, every pin lists only wires that
// end on it, and every owned pin resolves. All violations are joined.
func (g *Graph) Check() error {
	var errs []error
	for _, e := range g.Elements() {
		switch v := e.(type) {
		case *Wire:
			errs = append(errs, g.checkWire(v)...)
		case *Pin:
			errs = append(errs, g.checkPin(v)...)
		case *Gate:
			if len(v.Pins) != GatePinCount {
				errs = append(errs, fmt.Errorf("gate %d has %d pins, want %d", v.ID, len(v.Pins), GatePinCount))
			}
			for _, id := range v.Pins {
				p, err := g.Pin(id)
				if err != nil {
					errs = append(errs, fmt.Errorf("gate %d: %w", v.ID, err))
					continue
				}
				if p.Parent != v.ID {
					errs = append(errs, fmt.Errorf("gate %d lists pin %d owned by %d", v.ID, id, p.Parent))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func (g *Graph) checkWire(w *Wire) []error {
	var errs []error
	if w.Start == w.End {
		errs = append(errs, fmt.Errorf("wire %d starts and ends on pin %d", w.ID, w.Start))
	}
	for _, t := range []Terminal{TerminalStart, TerminalEnd} {
		p, err := g.Pin(w.PinAt(t))
		if err != nil {
			errs = append(errs, fmt.Errorf("wire %d %s: %w", w.ID, t, err))
			continue
		}
		if !slices.Contains(p.Wires, w.ID) {
			errs = append(errs, fmt.Errorf("wire %d %s pin %d does not list it", w.ID, t, p.ID))
		}
	}
	return errs
}

func (g *Graph) checkPin(p *Pin) []error {
	var errs []error
	for _, id := range p.Wires {
		w, err := g.Wire(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("pin %d: %w", p.ID, err))
			continue
		}
		if w.Start != p.ID && w.End != p.ID {
			errs = append(errs, fmt.Errorf("pin %d lists wire %d which does not touch it", p.ID, id))
		}
	}
	if p.Parent != NoID {
		gate, err := g.Gate(p.Parent)
		if err != nil {
			errs = append(errs, fmt.Errorf("pin %d parent: %w", p.ID, err))
		} else if !slices.Contains(gate.Pins, p.ID) {
			errs = append(errs, fmt.Errorf("pin %d not listed by its parent %d", p.ID, gate.ID))
		}
	}
	return errs
}
