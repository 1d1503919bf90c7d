package history

import (
	"errors"
	"testing"
)

// doc is a stand-in for a live graph: apply replaces its contents.
type doc struct{ text string }

func (d *doc) apply(s string) error {
	d.text = s
	return nil
}

func (d *doc) edit(m *Manager, next string) {
	m.Push(d.text)
	d.text = next
}

func TestUndoRedo(t *testing.T) {
	m := New()
	d := &doc{text: "a"}
	d.edit(m, "b")
	d.edit(m, "c")

	if u, r := m.Stats(); u != 2 || r != 0 {
		t.Fatalf("stats = %d/%d, want 2/0", u, r)
	}

	steps := []struct {
		undo bool
		want string
	}{
		{true, "b"},
		{true, "a"},
		{true, "a"}, // empty stack
		{false, "b"},
		{false, "c"},
		{false, "c"}, // empty stack
		{true, "b"},
	}
	for i, s := range steps {
		var err error
		if s.undo {
			err = m.Undo(d.text, d.apply)
		} else {
			err = m.Redo(d.text, d.apply)
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if d.text != s.want {
			t.Fatalf("step %d: text = %q, want %q", i, d.text, s.want)
		}
	}
}

func TestPushClearsRedo(t *testing.T) {
	m := New()
	d := &doc{text: "a"}
	d.edit(m, "b")
	if err := m.Undo(d.text, d.apply); err != nil {
		t.Fatal(err)
	}
	if !m.CanRedo() {
		t.Fatal("expected a redo entry after undo")
	}

	d.edit(m, "x")
	if m.CanRedo() {
		t.Error("a new edit must clear the redo stack")
	}
	if err := m.Redo(d.text, d.apply); err != nil || d.text != "x" {
		t.Errorf("redo after clear changed text to %q (%v)", d.text, err)
	}
}

func TestFailedApplyKeepsStacks(t *testing.T) {
	m := New()
	m.Push("broken")
	boom := errors.New("boom")

	err := m.Undo("current", func(string) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if u, r := m.Stats(); u != 1 || r != 0 {
		t.Errorf("stats = %d/%d after failed undo, want 1/0", u, r)
	}
}

func TestClear(t *testing.T) {
	m := New()
	m.Push("a")
	m.Push("b")
	m.Clear()
	if m.CanUndo() || m.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
}
