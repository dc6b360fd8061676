// Package editor holds the value types describing a snapshot of the
// edited process: modal state, cursor, buffer contents, and registers.
// Snapshots are produced fresh on every sample and never mutated.
package editor

// State is one immutable sample of the editor at a point in time.
// Cursor coordinates are 0-based.
type State struct {
	Mode            Mode
	CursorLine      int
	CursorCol       int
	PendingOperator string
	BufferLines     []string
	Registers       map[string]string
}

// DefaultState is the snapshot substituted when no sample is available:
// cursor at origin, normal mode, a single empty buffer line.
func DefaultState() State {
	return State{
		Mode:        Normal,
		BufferLines: []string{""},
	}
}

// Line returns the buffer line at index i and whether it exists.
func (s State) Line(i int) (string, bool) {
	if i < 0 || i >= len(s.BufferLines) {
		return "", false
	}
	return s.BufferLines[i], true
}

// Register returns the named register's content and whether it is set.
func (s State) Register(name string) (string, bool) {
	v, ok := s.Registers[name]
	return v, ok
}
