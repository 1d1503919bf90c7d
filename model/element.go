// Package model is the in-memory element graph: pins, wires and gates kept
// in an arena keyed by integer id. Every cross reference between elements
// is stored as an id and resolved through the graph.
package model

import (
	"logicdraw/geometry"
)

// NoID marks an absent reference, e.g. the parent of a standalone pin.
const NoID = -1

type Kind int

const (
	KindPin Kind = iota
	KindWire
	KindAndGate
	KindOrGate
)

func (k Kind) String() string {
	switch k {
	case KindPin:
		return "pin"
	case KindWire:
		return "wire"
	case KindAndGate:
		return "and gate"
	case KindOrGate:
		return "or gate"
	default:
		return "unknown"
	}
}

// IsGate reports whether k is one of the fixed-shape gate kinds.
func (k Kind) IsGate() bool {
	return k == KindAndGate || k == KindOrGate
}

// Base carries the fields every element has.
type Base struct {
	ID       int
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Selected bool
	ShowPins bool
	Parent   int   // owning element, NoID when top-level
	Pins     []int // owned pins, in layout order
}

// Element is implemented by *Pin, *Wire and *Gate only.
type Element interface {
	Common() *Base
	Kind() Kind
	Bounds() geometry.Rect
	sealed()
}

// Pin is a connection point. Its position is the pin centre.
type Pin struct {
	Base
	Radius    float64
	HitOffset float64
	Wires     []int // incident wires, not owned
}

func (p *Pin) Common() *Base { return &p.Base }
func (p *Pin) Kind() Kind    { return KindPin }
func (p *Pin) sealed()       {}

// Bounds is the square hit area around the pin centre.
func (p *Pin) Bounds() geometry.Rect {
	return geometry.RectAround(p.X, p.Y, p.Reach())
}

// Reach is the distance from the centre within which the pin is hit.
func (p *Pin) Reach() float64 {
	return p.Radius + p.HitOffset
}

// Standalone reports whether p is free-floating rather than owned by a gate.
func (p *Pin) Standalone() bool {
	return p.Parent == NoID
}

// Terminal selects one end of a wire.
type Terminal int

const (
	TerminalStart Terminal = iota
	TerminalEnd
)

func (t Terminal) String() string {
	if t == TerminalStart {
		return "start"
	}
	return "end"
}

// Wire connects exactly two pins. The geometry fields are derived from the
// endpoint positions and refreshed by the graph whenever an endpoint moves.
type Wire struct {
	Base
	Start       int
	End         int
	StartBounds geometry.Rect
	EndBounds   geometry.Rect
	WireBounds  geometry.Polygon
}

func (w *Wire) Common() *Base { return &w.Base }
func (w *Wire) Kind() Kind    { return KindWire }
func (w *Wire) sealed()       {}

func (w *Wire) Bounds() geometry.Rect {
	return w.WireBounds.Extent()
}

// PinAt returns the pin id at terminal t.
func (w *Wire) PinAt(t Terminal) int {
	if t == TerminalStart {
		return w.Start
	}
	return w.End
}

func (w *Wire) setPin(t Terminal, id int) {
	if t == TerminalStart {
		w.Start = id
	} else {
		w.End = id
	}
}

// Gate is a fixed-shape logic element owning a fixed set of pins.
type Gate struct {
	Base
	Type      Kind
	Threshold int // display counter, or gates only
}

func (g *Gate) Common() *Base { return &g.Base }
func (g *Gate) Kind() Kind    { return g.Type }
func (g *Gate) sealed()       {}

func (g *Gate) Bounds() geometry.Rect {
	return geometry.RectFrom(g.X, g.Y, g.Width, g.Height)
}

const (
	GateSize         = 30.0
	DefaultThreshold = 1
	// GatePinCount is the fixed number of pins every gate owns.
	GatePinCount = 4
)

// gatePinOffsets places the pins left, right, top and bottom, relative to
// the gate's top-left corner.
var gatePinOffsets = [GatePinCount][2]float64{
	{0, GateSize / 2},
	{GateSize, GateSize / 2},
	{GateSize / 2, 0},
	{GateSize / 2, GateSize},
}

// GatePinOffset returns the offset of pin i relative to a gate's top-left
// corner.
func GatePinOffset(i int) (float64, float64) {
	o := gatePinOffsets[i]
	return o[0], o[1]
}
