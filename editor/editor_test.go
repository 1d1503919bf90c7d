package editor

import (
	"errors"
	"testing"

	"logicdraw/model"
)

func TestInsertAtCenter(t *testing.T) {
	e := newTestEditor()
	e.SetViewport(200, 100)

	g, err := e.InsertGate(model.KindOrGate)
	if err != nil {
		t.Fatal(err)
	}
	if g.X != 85 || g.Y != 35 {
		t.Errorf("gate at (%v,%v), want centred on (100,50)", g.X, g.Y)
	}

	e.Pan(-100, 0)
	p := e.InsertPin()
	if p.X != 200 || p.Y != 50 {
		t.Errorf("pin at (%v,%v), want (200,50) after panning", p.X, p.Y)
	}

	if _, err := e.InsertGate(model.KindPin); err == nil {
		t.Error("inserting a pin as a gate should fail")
	}
	if u, _ := e.History().Stats(); u != 2 {
		t.Errorf("%d snapshots, want 2", u)
	}
}

func TestUndoRedoAreInverses(t *testing.T) {
	e := newTestEditor()
	g := e.Graph()
	a := g.InsertGate(model.KindAndGate, 0, 0)
	right, _ := g.Pin(a.Pins[1])
	g.InsertWire(right, g.InsertPin(100, 15))

	ops := []struct {
		name string
		op   func(t *testing.T) error
	}{
		{"insert gate", func(*testing.T) error { _, err := e.InsertGate(model.KindOrGate); return err }},
		{"insert pin", func(*testing.T) error { e.InsertPin(); return nil }},
		{"clear", func(*testing.T) error { e.Clear(); return nil }},
		{"delete gate", func(t *testing.T) error {
			send(t, e, ActionDown, 15, 15)
			_, err := e.DeleteSelected()
			return err
		}},
	}

	for _, tt := range ops {
		t.Run(tt.name, func(t *testing.T) {
			before := e.Text()
			if err := tt.op(t); err != nil {
				t.Fatal(err)
			}
			after := e.Text()
			if after == before {
				t.Fatal("operation changed nothing")
			}

			if err := e.Undo(); err != nil {
				t.Fatal(err)
			}
			if got := e.Text(); got != before {
				t.Errorf("undo gave\n%s\nwant\n%s", got, before)
			}
			if err := e.Redo(); err != nil {
				t.Fatal(err)
			}
			if got := e.Text(); got != after {
				t.Errorf("redo gave\n%s\nwant\n%s", got, after)
			}
			if err := e.Undo(); err != nil {
				t.Fatal(err)
			}
			mustCheck(t, e)
		})
	}
}

func TestUndoRecomputesNextID(t *testing.T) {
	e := newTestEditor()
	e.InsertPin()
	e.InsertPin()
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Graph().NextID() != 1 {
		t.Errorf("next id = %d, want 1", e.Graph().NextID())
	}
	p := e.InsertPin()
	if p.ID != 1 {
		t.Errorf("new pin id = %d, want 1", p.ID)
	}
	mustCheck(t, e)
}

func TestUndoEmptyIsNoop(t *testing.T) {
	e := newTestEditor()
	e.Graph().InsertPin(1, 2)
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Graph().Len() != 1 {
		t.Error("undo on an empty stack changed the graph")
	}
}

func TestDeleteSelectedWire(t *testing.T) {
	e := newTestEditor()
	g := e.Graph()
	p1 := g.InsertPin(0, 0)
	p2 := g.InsertPin(100, 0)
	g.InsertWire(p1, p2)

	if ok, _ := e.DeleteSelected(); ok {
		t.Fatal("nothing is selected yet")
	}

	send(t, e, ActionDown, 50, 1)
	ok, err := e.DeleteSelected()
	if err != nil || !ok {
		t.Fatalf("DeleteSelected = %v, %v", ok, err)
	}
	if _, wires := count(g); wires != 0 {
		t.Errorf("%d wires left", wires)
	}
	if len(p1.Wires) != 0 || len(p2.Wires) != 0 {
		t.Error("pins still reference the deleted wire")
	}
	mustCheck(t, e)
}

func TestThreshold(t *testing.T) {
	e := newTestEditor()
	or := e.Graph().InsertGate(model.KindOrGate, 0, 0)
	and := e.Graph().InsertGate(model.KindAndGate, 100, 0)

	if _, err := e.AdjustThreshold(1); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("no current gate: %v", err)
	}

	send(t, e, ActionDown, 15, 15)
	v, err := e.AdjustThreshold(2)
	if err != nil || v != 3 || or.Threshold != 3 {
		t.Errorf("threshold = %d (%v), want 3", or.Threshold, err)
	}
	if v, _ := e.AdjustThreshold(-10); v != 0 {
		t.Errorf("threshold went to %d, want 0", v)
	}

	if _, err := e.SetThreshold(and.ID, 2); err == nil {
		t.Error("and gates have no threshold")
	}
}

func TestLoadKeepsGraphOnError(t *testing.T) {
	e := newTestEditor()
	e.InsertPin()
	before := e.Text()

	if err := e.Load("PIN;0;0;0\nWIRE;1;-1;0;-1;9\n"); err == nil {
		t.Fatal("expected load error")
	}
	if e.Text() != before {
		t.Error("failed load replaced the graph")
	}
	if !e.History().CanUndo() {
		t.Error("failed load should keep history")
	}

	if err := e.Load("PIN;7;1;1\n"); err != nil {
		t.Fatal(err)
	}
	if e.History().CanUndo() {
		t.Error("load should clear history")
	}
	if e.Graph().NextID() != 8 {
		t.Errorf("next id = %d, want 8", e.Graph().NextID())
	}
}

func TestLoadRejectsNoIDPin(t *testing.T) {
	e := newTestEditor()
	err := e.Load("PIN;-1;0;0\nPIN;0;50;50\nPIN;1;200;200\nWIRE;2;-1;0;-1;1\n")
	if err == nil {
		t.Fatal("a pin with id -1 should not load")
	}
	if e.Graph().Len() != 0 || e.Current() != model.NoID {
		t.Errorf("len=%d current=%d after rejected load", e.Graph().Len(), e.Current())
	}
}

func TestImportIsUndoable(t *testing.T) {
	e := newTestEditor()
	e.InsertPin()
	before := e.Text()

	if err := e.Import("AND;0;0;0;1;2;3;4\n"); err != nil {
		t.Fatal(err)
	}
	if e.Graph().Len() != 5 {
		t.Errorf("imported graph has %d elements, want 5", e.Graph().Len())
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != before {
		t.Errorf("undo after import gave %q, want %q", e.Text(), before)
	}

	if err := e.Import("WIRE;"); err == nil {
		t.Error("expected import error")
	}
	if e.Text() != before {
		t.Error("failed import changed the graph")
	}
}

func TestZoomClamp(t *testing.T) {
	opts := DefaultOptions()
	opts.MinZoom, opts.MaxZoom = 0.5, 4
	e := New(opts)

	e.ZoomAt(10, 10, 100)
	if s := e.View().Scale; s != 4 {
		t.Errorf("scale = %v, want clamp at 4", s)
	}
	e.SetZoom(0.01)
	if s := e.View().Scale; s != 0.5 {
		t.Errorf("scale = %v, want clamp at 0.5", s)
	}

	e.ResetZoom()
	if e.View() != Identity() {
		t.Errorf("reset gave %+v", e.View())
	}
}

func TestSetZoomKeepsCenter(t *testing.T) {
	e := newTestEditor()
	e.SetViewport(200, 100)
	cx, cy := e.CenterPoint()
	e.SetZoom(2)
	nx, ny := e.CenterPoint()
	if cx != nx || cy != ny {
		t.Errorf("centre moved from (%v,%v) to (%v,%v)", cx, cy, nx, ny)
	}
}
