package model

import (
	"errors"
	"slices"
	"testing"
)

func mustCheck(t *testing.T, g *Graph) {
	t.Helper()
	if err := g.Check(); err != nil {
		t.Fatalf("graph invariants broken:\n%v", err)
	}
}

func countKinds(g *Graph) (pins, wires, gates int) {
	for _, e := range g.Elements() {
		switch e.(type) {
		case *Pin:
			pins++
		case *Wire:
			wires++
		case *Gate:
			gates++
		}
	}
	return
}

func TestInsertWire(t *testing.T) {
	g := New(DefaultOptions())
	p1 := g.InsertPin(0, 0)
	p2 := g.InsertPin(50, 50)
	w := g.InsertWire(p1, p2)

	if !slices.Equal(p1.Wires, []int{w.ID}) || !slices.Equal(p2.Wires, []int{w.ID}) {
		t.Fatalf("incident lists = %v / %v, want [%d]", p1.Wires, p2.Wires, w.ID)
	}
	if w.Start != p1.ID || w.End != p2.ID {
		t.Errorf("wire ends = %d,%d want %d,%d", w.Start, w.End, p1.ID, p2.ID)
	}
	if len(w.WireBounds) != 4 {
		t.Fatalf("wire polygon has %d points, want 4", len(w.WireBounds))
	}

	reach := p1.Radius + p1.HitOffset
	ext := w.WireBounds.Extent()
	if ext.MinX != -reach || ext.MinY != -reach || ext.MaxX != 50+reach || ext.MaxY != 50+reach {
		t.Errorf("wire extent = %+v, want +/-%v around (0,0)-(50,50)", ext, reach)
	}
	if !w.StartBounds.Contains(0, 0) || !w.EndBounds.Contains(50, 50) {
		t.Error("endpoint handles should cover their pins")
	}
	mustCheck(t, g)
}

func TestInsertGate(t *testing.T) {
	g := New(DefaultOptions())
	and := g.InsertGate(KindAndGate, 100, 100)
	or := g.InsertGate(KindOrGate, 200, 100)

	if and.ID != 0 || !slices.Equal(and.Pins, []int{1, 2, 3, 4}) {
		t.Errorf("and gate id=%d pins=%v, want 0 and [1 2 3 4]", and.ID, and.Pins)
	}
	if or.Threshold != DefaultThreshold {
		t.Errorf("or threshold = %d, want %d", or.Threshold, DefaultThreshold)
	}
	if and.Threshold != 0 {
		t.Errorf("and gate should not carry a threshold, got %d", and.Threshold)
	}

	left, err := g.Pin(and.Pins[0])
	if err != nil {
		t.Fatal(err)
	}
	if left.X != 100 || left.Y != 115 || left.Parent != and.ID {
		t.Errorf("left pin at (%v,%v) parent %d", left.X, left.Y, left.Parent)
	}
	if g.NextID() != 10 {
		t.Errorf("next id = %d, want 10", g.NextID())
	}
	mustCheck(t, g)
}

func TestLookupErrors(t *testing.T) {
	g := New(DefaultOptions())
	p := g.InsertPin(0, 0)

	_, err := g.Wire(p.ID)
	var lookup *LookupError
	if !errors.As(err, &lookup) {
		t.Fatalf("expected LookupError, got %v", err)
	}
	if lookup.Missing || lookup.Got != KindPin {
		t.Errorf("unexpected lookup error %+v", lookup)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("lookup errors should match ErrNotFound")
	}

	if _, err := g.Pin(42); err == nil || err.Error() != "pin 42 not found" {
		t.Errorf("missing pin error = %v", err)
	}
}

func TestAddDuplicate(t *testing.T) {
	g := New(DefaultOptions())
	if err := g.Add(g.NewPin(7, 0, 0)); err != nil {
		t.Fatal(err)
	}
	err := g.Add(g.NewPin(7, 1, 1))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestInsertPanicsOnStaleCounter(t *testing.T) {
	g := New(DefaultOptions())
	g.InsertPin(0, 0)
	g.SetNextID(0)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when an allocated id collides")
		}
	}()
	g.InsertPin(1, 1)
}

func TestRecomputeNextID(t *testing.T) {
	g := New(DefaultOptions())
	g.Add(g.NewPin(3, 0, 0))
	g.Add(g.NewPin(11, 0, 0))
	g.RecomputeNextID()
	if g.NextID() != 12 {
		t.Errorf("next id = %d, want 12", g.NextID())
	}

	g.Clear()
	if g.NextID() != 0 || g.Len() != 0 {
		t.Errorf("clear left next=%d len=%d", g.NextID(), g.Len())
	}
	g.RecomputeNextID()
	if g.NextID() != 0 {
		t.Errorf("empty graph next id = %d, want 0", g.NextID())
	}
}

func TestReplace(t *testing.T) {
	g := New(DefaultOptions())
	g.InsertPin(0, 0)

	other := New(DefaultOptions())
	other.Add(other.NewPin(20, 5, 5))

	g.Replace(other)
	if g.Len() != 1 || g.NextID() != 21 {
		t.Errorf("after replace len=%d next=%d, want 1 and 21", g.Len(), g.NextID())
	}
	if other.Len() != 0 {
		t.Error("replace should drain the source graph")
	}
}

func TestElementsOrdered(t *testing.T) {
	g := New(DefaultOptions())
	for _, id := range []int{9, 2, 5, 0} {
		g.Add(g.NewPin(id, 0, 0))
	}
	var ids []int
	for _, e := range g.Elements() {
		ids = append(ids, e.Common().ID)
	}
	if !slices.Equal(ids, []int{0, 2, 5, 9}) {
		t.Errorf("Elements order = %v", ids)
	}
}

func TestCheckReportsBrokenReferences(t *testing.T) {
	g := New(DefaultOptions())
	p1 := g.InsertPin(0, 0)
	p2 := g.InsertPin(10, 10)
	w := g.InsertWire(p1, p2)

	// Removing a pin without fixing up the wire leaves a dangling end.
	g.Remove(p2.ID)
	err := g.Check()
	if err == nil {
		t.Fatal("expected dangling reference error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound in %v", err)
	}

	g.Add(p2)
	p1.Wires = nil
	if err := g.Check(); err == nil {
		t.Errorf("expected missing incident entry for wire %d", w.ID)
	}
}
