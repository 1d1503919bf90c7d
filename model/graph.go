package model

import (
	"fmt"
	"sort"
	"sync"

	"logicdraw/geometry"
)

// Options holds the defaults applied to newly inserted pins.
type Options struct {
	PinRadius float64
	HitOffset float64
}

func DefaultOptions() Options {
	return Options{PinRadius: 4, HitOffset: 2}
}

// Graph maps ids to elements. The map is guarded so that enumeration from a
// renderer never observes a half-applied insert or remove; the elements
// themselves are mutated only by the goroutine that owns the editor.
type Graph struct {
	mu       sync.RWMutex
	elements map[int]Element
	nextID   int
	opts     Options
}

func New(opts Options) *Graph {
	return &Graph{
		elements: make(map[int]Element),
		opts:     opts,
	}
}

func (g *Graph) Options() Options {
	return g.opts
}

func (g *Graph) NextID() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nextID
}

func (g *Graph) SetNextID(id int) {
	g.mu.Lock()
	g.nextID = id
	g.mu.Unlock()
}

// RecomputeNextID sets the id counter to one past the largest id in use, or
// zero when the graph is empty.
func (g *Graph) RecomputeNextID() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recomputeNextID()
}

func (g *Graph) recomputeNextID() {
	next := 0
	for id := range g.elements {
		if id >= next {
			next = id + 1
		}
	}
	g.nextID = next
}

func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.elements)
}

// Add stores an element that already carries its id.
func (g *Graph) Add(e Element) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := e.Common().ID
	if _, ok := g.elements[id]; ok {
		return fmt.Errorf("add %s %d: %w", e.Kind(), id, ErrDuplicateID)
	}
	g.elements[id] = e
	return nil
}

// insert allocates the next id for e and stores it. A collision means the
// id counter is out of step with the map, which is a programming error.
func (g *Graph) insert(e Element) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	if _, ok := g.elements[id]; ok {
		panic(fmt.Sprintf("model: id %d allocated twice", id))
	}
	g.nextID++
	e.Common().ID = id
	g.elements[id] = e
}

// Remove deletes id from the map without touching any references to it.
func (g *Graph) Remove(id int) {
	g.mu.Lock()
	delete(g.elements, id)
	g.mu.Unlock()
}

// Clear empties the graph and resets the id counter.
func (g *Graph) Clear() {
	g.mu.Lock()
	g.elements = make(map[int]Element)
	g.nextID = 0
	g.mu.Unlock()
}

// Replace swaps in the elements of o, leaving o empty.
func (g *Graph) Replace(o *Graph) {
	o.mu.Lock()
	elements := o.elements
	o.elements = make(map[int]Element)
	o.nextID = 0
	o.mu.Unlock()

	g.mu.Lock()
	g.elements = elements
	g.recomputeNextID()
	g.mu.Unlock()
}

func (g *Graph) lookup(id int) Element {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.elements[id]
}

func (g *Graph) Get(id int) (Element, error) {
	if e := g.lookup(id); e != nil {
		return e, nil
	}
	return nil, &LookupError{ID: id, Want: "element", Missing: true}
}

func (g *Graph) Pin(id int) (*Pin, error) {
	e := g.lookup(id)
	if e == nil {
		return nil, &LookupError{ID: id, Want: "pin", Missing: true}
	}
	p, ok := e.(*Pin)
	if !ok {
		return nil, &LookupError{ID: id, Want: "pin", Got: e.Kind()}
	}
	return p, nil
}

func (g *Graph) Wire(id int) (*Wire, error) {
	e := g.lookup(id)
	if e == nil {
		return nil, &LookupError{ID: id, Want: "wire", Missing: true}
	}
	w, ok := e.(*Wire)
	if !ok {
		return nil, &LookupError{ID: id, Want: "wire", Got: e.Kind()}
	}
	return w, nil
}

func (g *Graph) Gate(id int) (*Gate, error) {
	e := g.lookup(id)
	if e == nil {
		return nil, &LookupError{ID: id, Want: "gate", Missing: true}
	}
	gt, ok := e.(*Gate)
	if !ok {
		return nil, &LookupError{ID: id, Want: "gate", Got: e.Kind()}
	}
	return gt, nil
}

// pin and wire are the nil-on-miss forms used inside graph operations.
func (g *Graph) pin(id int) *Pin {
	p, _ := g.lookup(id).(*Pin)
	return p
}

func (g *Graph) wire(id int) *Wire {
	w, _ := g.lookup(id).(*Wire)
	return w
}

// Elements returns every element ordered by ascending id.
func (g *Graph) Elements() []Element {
	g.mu.RLock()
	out := make([]Element, 0, len(g.elements))
	for _, e := range g.elements {
		out = append(out, e)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Common().ID < out[j].Common().ID
	})
	return out
}

// Wires returns every wire ordered by ascending id.
func (g *Graph) Wires() []*Wire {
	var wires []*Wire
	for _, e := range g.Elements() {
		if w, ok := e.(*Wire); ok {
			wires = append(wires, w)
		}
	}
	return wires
}

// Pins returns every pin, owned or standalone, ordered by ascending id.
func (g *Graph) Pins() []*Pin {
	var pins []*Pin
	for _, e := range g.Elements() {
		if p, ok := e.(*Pin); ok {
			pins = append(pins, p)
		}
	}
	return pins
}

// PinsOf resolves the owned pins of e. Missing ids are skipped.
func (g *Graph) PinsOf(e Element) []*Pin {
	ids := e.Common().Pins
	pins := make([]*Pin, 0, len(ids))
	for _, id := range ids {
		if p := g.pin(id); p != nil {
			pins = append(pins, p)
		}
	}
	return pins
}

// Bounds returns the union of all element bounds, false when empty.
func (g *Graph) Bounds() (geometry.Rect, bool) {
	var r geometry.Rect
	found := false
	for _, e := range g.Elements() {
		b := e.Bounds()
		if !found {
			r = b
			found = true
			continue
		}
		r = r.Union(b)
	}
	return r, found
}

func (g *Graph) newPin(x, y float64) *Pin {
	return &Pin{
		Base: Base{
			X:      x,
			Y:      y,
			Width:  2 * g.opts.PinRadius,
			Height: 2 * g.opts.PinRadius,
			Parent: NoID,
		},
		Radius:    g.opts.PinRadius,
		HitOffset: g.opts.HitOffset,
	}
}

// InsertPin creates a standalone pin centred on (x, y).
func (g *Graph) InsertPin(x, y float64) *Pin {
	p := g.newPin(x, y)
	g.insert(p)
	return p
}

// InsertWire connects start to end. Passing the same pin twice is not
// rejected; Check reports such a wire.
func (g *Graph) InsertWire(start, end *Pin) *Wire {
	w := &Wire{
		Base:  Base{Parent: NoID},
		Start: start.ID,
		End:   end.ID,
	}
	g.insert(w)
	start.Wires = append(start.Wires, w.ID)
	end.Wires = append(end.Wires, w.ID)
	g.refreshWire(w, start, end)
	return w
}

// InsertGate creates a gate of the given kind with its top-left corner at
// (x, y), followed by its pins.
func (g *Graph) InsertGate(kind Kind, x, y float64) *Gate {
	if !kind.IsGate() {
		panic(fmt.Sprintf("model: %s is not a gate kind", kind))
	}
	gate := &Gate{
		Base: Base{
			X:      x,
			Y:      y,
			Width:  GateSize,
			Height: GateSize,
			Parent: NoID,
		},
		Type: kind,
	}
	if kind == KindOrGate {
		gate.Threshold = DefaultThreshold
	}
	g.insert(gate)

	for i := 0; i < GatePinCount; i++ {
		dx, dy := GatePinOffset(i)
		p := g.newPin(x+dx, y+dy)
		p.Parent = gate.ID
		g.insert(p)
		gate.Pins = append(gate.Pins, p.ID)
	}
	return gate
}

// NewGate builds a gate and its pins with caller-chosen ids without adding
// them to any graph. Used when loading.
func (g *Graph) NewGate(kind Kind, id int, x, y float64, pinIDs [GatePinCount]int) (*Gate, []*Pin) {
	gate := &Gate{
		Base: Base{
			ID:     id,
			X:      x,
			Y:      y,
			Width:  GateSize,
			Height: GateSize,
			Parent: NoID,
			Pins:   pinIDs[:],
		},
		Type: kind,
	}
	if kind == KindOrGate {
		gate.Threshold = DefaultThreshold
	}
	pins := make([]*Pin, GatePinCount)
	for i, pid := range pinIDs {
		dx, dy := GatePinOffset(i)
		p := g.newPin(x+dx, y+dy)
		p.ID = pid
		p.Parent = id
		pins[i] = p
	}
	return gate, pins
}

// NewPin builds a standalone pin with a caller-chosen id without adding it.
func (g *Graph) NewPin(id int, x, y float64) *Pin {
	p := g.newPin(x, y)
	p.ID = id
	return p
}

// Connect adds a wire with a caller-chosen id between two pins already in
// the graph. Used when loading.
func (g *Graph) Connect(id, startID, endID int) (*Wire, error) {
	start, err := g.Pin(startID)
	if err != nil {
		return nil, fmt.Errorf("wire %d start: %w", id, err)
	}
	end, err := g.Pin(endID)
	if err != nil {
		return nil, fmt.Errorf("wire %d end: %w", id, err)
	}
	w := &Wire{
		Base:  Base{ID: id, Parent: NoID},
		Start: startID,
		End:   endID,
	}
	if err := g.Add(w); err != nil {
		return nil, err
	}
	start.Wires = append(start.Wires, id)
	end.Wires = append(end.Wires, id)
	g.refreshWire(w, start, end)
	return w, nil
}

// RefreshWire recomputes the hit geometry of w from its endpoint pins.
func (g *Graph) RefreshWire(w *Wire) {
	start, end := g.pin(w.Start), g.pin(w.End)
	if start == nil || end == nil {
		return
	}
	g.refreshWire(w, start, end)
}

func (g *Graph) refreshWire(w *Wire, start, end *Pin) {
	s := geometry.Vec{X: start.X, Y: start.Y}
	e := geometry.Vec{X: end.X, Y: end.Y}
	w.StartBounds = start.Bounds()
	w.EndBounds = end.Bounds()
	w.WireBounds = geometry.StrokePolygon(s, e, start.Reach())

	ext := w.WireBounds.Extent()
	w.X, w.Y = start.X, start.Y
	w.Width, w.Height = ext.Width(), ext.Height()
}

// refreshPinWires recomputes every wire incident to p.
func (g *Graph) refreshPinWires(p *Pin) {
	for _, id := range p.Wires {
		if w := g.wire(id); w != nil {
			g.RefreshWire(w)
		}
	}
}
