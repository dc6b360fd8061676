// Package goal compiles declarative goal definitions into typed goals and
// decides whether an editor snapshot satisfies them. Compilation validates
// shape once at load time so the polling path only ever sees typed values.
package goal

import "github.com/vimdojo/vimdojo/internal/editor"

// Definition is the declarative, loosely-typed form received from the
// content loader. Target's shape depends on Kind and is validated by Compile.
type Definition struct {
	Kind        string `yaml:"kind" json:"kind"`
	Target      any    `yaml:"target" json:"target"`
	Description string `yaml:"description" json:"description"`
	Hint        string `yaml:"hint,omitempty" json:"hint,omitempty"`
}

// Target is a compiled, fully-typed goal target.
type Target interface {
	isTarget()
}

// Position is satisfied when the cursor sits exactly at (Line, Col), 0-based.
type Position struct {
	Line int
	Col  int
}

// ModeIs is satisfied when the editor is in exactly the given mode,
// including the operator payload for operator-pending modes.
type ModeIs struct {
	Mode editor.Mode
}

// TextAt is satisfied when buffer line Line exists and equals Expected
// exactly.
type TextAt struct {
	Line     int
	Expected string
}

// RegisterEquals is satisfied when the named register is set and equals
// Expected exactly.
type RegisterEquals struct {
	Register string
	Expected string
}

// BufferChanged is unconditionally satisfied. No prior snapshot is retained
// for diffing, so the reference contract is "always true"; callers must not
// reinterpret it without changing that contract deliberately.
type BufferChanged struct{}

func (Position) isTarget()       {}
func (ModeIs) isTarget()         {}
func (TextAt) isTarget()         {}
func (RegisterEquals) isTarget() {}
func (BufferChanged) isTarget()  {}

// Goal is a compiled goal. Description and Hint are carried for display
// only and never participate in satisfaction checks.
type Goal struct {
	Target      Target
	Description string
	Hint        string
}
