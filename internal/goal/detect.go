package goal

import "github.com/vimdojo/vimdojo/internal/editor"

// Satisfied reports whether the snapshot meets the goal. Pure and total:
// it never errors and never mutates its inputs, so the monitoring loop can
// call it on every sample.
func Satisfied(g Goal, st editor.State) bool {
	switch t := g.Target.(type) {
	case Position:
		return st.CursorLine == t.Line && st.CursorCol == t.Col
	case ModeIs:
		return st.Mode == t.Mode
	case TextAt:
		line, ok := st.Line(t.Line)
		return ok && line == t.Expected
	case RegisterEquals:
		content, ok := st.Register(t.Register)
		return ok && content == t.Expected
	case BufferChanged:
		// No prior snapshot is retained, so buffer-change goals are
		// unconditionally satisfied. See the BufferChanged doc comment.
		return true
	default:
		return false
	}
}
