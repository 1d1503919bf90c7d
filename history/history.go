// Package history keeps undo and redo stacks of full-graph text snapshots.
package history

// Manager holds two unbounded LIFO stacks of snapshots. It never inspects
// the snapshot text; restoring a snapshot is left to the apply callback.
type Manager struct {
	undo []string
	redo []string
}

func New() *Manager {
	return &Manager{}
}

// Push records the state before an edit and discards everything redoable.
func (m *Manager) Push(snapshot string) {
	m.undo = append(m.undo, snapshot)
	m.redo = m.redo[:0]
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Undo pops the latest snapshot and hands it to apply. On success current
// moves onto the redo stack. If apply fails both stacks are left as they
// were and the error is returned. An empty stack is a no-op.
func (m *Manager) Undo(current string, apply func(string) error) error {
	return step(&m.undo, &m.redo, current, apply)
}

// Redo is the mirror image of Undo.
func (m *Manager) Redo(current string, apply func(string) error) error {
	return step(&m.redo, &m.undo, current, apply)
}

func step(from, to *[]string, current string, apply func(string) error) error {
	n := len(*from)
	if n == 0 {
		return nil
	}
	snapshot := (*from)[n-1]
	if err := apply(snapshot); err != nil {
		return err
	}
	*from = (*from)[:n-1]
	*to = append(*to, current)
	return nil
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

// Stats returns the depth of the undo and redo stacks.
func (m *Manager) Stats() (undo, redo int) {
	return len(m.undo), len(m.redo)
}
