package goal

import (
	"testing"

	"github.com/vimdojo/vimdojo/internal/editor"
)

func testState() editor.State {
	return editor.State{
		Mode:        editor.Normal,
		CursorLine:  1,
		CursorCol:   1,
		BufferLines: []string{"hello world", "second line"},
		Registers:   map[string]string{},
	}
}

func TestPositionGoal(t *testing.T) {
	g := Goal{Target: Position{Line: 1, Col: 1}}
	st := testState()

	if !Satisfied(g, st) {
		t.Error("exact position should satisfy")
	}

	// Off-by-one in either coordinate must be false.
	offBy := []editor.State{
		{CursorLine: 0, CursorCol: 1},
		{CursorLine: 2, CursorCol: 1},
		{CursorLine: 1, CursorCol: 0},
		{CursorLine: 1, CursorCol: 2},
	}
	for _, s := range offBy {
		if Satisfied(g, s) {
			t.Errorf("cursor (%d,%d) should not satisfy position (1,1)", s.CursorLine, s.CursorCol)
		}
	}
}

func TestModeGoal(t *testing.T) {
	g := Goal{Target: ModeIs{Mode: editor.Insert}}
	st := testState()

	if Satisfied(g, st) {
		t.Error("normal mode should not satisfy insert goal")
	}

	st.Mode = editor.Insert
	if !Satisfied(g, st) {
		t.Error("insert mode should satisfy insert goal")
	}
}

func TestOperatorPendingGoalIsPayloadSensitive(t *testing.T) {
	g := Goal{Target: ModeIs{Mode: editor.OperatorPending("d")}}

	st := testState()
	st.Mode = editor.OperatorPending("y")
	if Satisfied(g, st) {
		t.Error("operator y should not satisfy operator d goal")
	}

	st.Mode = editor.OperatorPending("d")
	if !Satisfied(g, st) {
		t.Error("operator d should satisfy operator d goal")
	}
}

func TestTextGoal(t *testing.T) {
	st := testState()

	if !Satisfied(Goal{Target: TextAt{Line: 0, Expected: "hello world"}}, st) {
		t.Error("matching text should satisfy")
	}
	if Satisfied(Goal{Target: TextAt{Line: 0, Expected: "different"}}, st) {
		t.Error("non-matching text should not satisfy")
	}
	// Out-of-range line is false, not an error.
	if Satisfied(Goal{Target: TextAt{Line: 9, Expected: "hello world"}}, st) {
		t.Error("out-of-range line should not satisfy")
	}
}

func TestRegisterGoal(t *testing.T) {
	st := testState()
	st.Registers["0"] = "yanked_text"

	if !Satisfied(Goal{Target: RegisterEquals{Register: "0", Expected: "yanked_text"}}, st) {
		t.Error("matching register should satisfy")
	}
	if Satisfied(Goal{Target: RegisterEquals{Register: "0", Expected: "other"}}, st) {
		t.Error("mismatched content should not satisfy")
	}
	if Satisfied(Goal{Target: RegisterEquals{Register: "1", Expected: "yanked_text"}}, st) {
		t.Error("absent register should not satisfy")
	}
}

func TestBufferChangedGoalAlwaysTrue(t *testing.T) {
	g := Goal{Target: BufferChanged{}}
	if !Satisfied(g, testState()) {
		t.Error("buffer-change goal is unconditionally satisfied")
	}
	if !Satisfied(g, editor.DefaultState()) {
		t.Error("buffer-change goal is unconditionally satisfied on the default state")
	}
}

// TestCompileThenDetect round-trips representative definitions through the
// compiler and checks detection against matching and non-matching states.
func TestCompileThenDetect(t *testing.T) {
	tests := []struct {
		name     string
		def      Definition
		match    editor.State
		mismatch editor.State
	}{
		{
			name:     "position",
			def:      Definition{Kind: "position", Target: []any{0, 5}},
			match:    editor.State{CursorLine: 0, CursorCol: 5},
			mismatch: editor.State{CursorLine: 0, CursorCol: 4},
		},
		{
			name:     "mode operator pending",
			def:      Definition{Kind: "mode", Target: "operator_d"},
			match:    editor.State{Mode: editor.OperatorPending("d")},
			mismatch: editor.State{Mode: editor.OperatorPending("c")},
		},
		{
			name:     "text",
			def:      Definition{Kind: "text", Target: map[string]any{"line": 1, "expected": "done"}},
			match:    editor.State{BufferLines: []string{"x", "done"}},
			mismatch: editor.State{BufferLines: []string{"x", "not done"}},
		},
		{
			name:     "register",
			def:      Definition{Kind: "register", Target: map[string]any{"register": "a", "expected": "word"}},
			match:    editor.State{Registers: map[string]string{"a": "word"}},
			mismatch: editor.State{Registers: map[string]string{"b": "word"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Compile(tt.def)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if !Satisfied(g, tt.match) {
				t.Error("matching state should satisfy")
			}
			if Satisfied(g, tt.mismatch) {
				t.Error("mismatching state should not satisfy")
			}
		})
	}
}
