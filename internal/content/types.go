// Package content loads chapter files: YAML documents describing chapters
// of exercises, each exercise carrying sample text and a list of goal
// definitions. Definitions are compiled at load time so a malformed file
// is rejected before any session starts.
package content

import (
	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

// ChapterFile is the on-disk shape of one chapter_NN.yaml document.
type ChapterFile struct {
	Chapter   ChapterInfo   `yaml:"chapter" json:"chapter"`
	Exercises []ExerciseDef `yaml:"exercises" json:"exercises"`
}

// ChapterInfo identifies and describes a chapter.
type ChapterInfo struct {
	Number      int    `yaml:"number" json:"number"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// ExerciseDef is the on-disk shape of one exercise.
type ExerciseDef struct {
	Title       string            `yaml:"title" json:"title"`
	Description string            `yaml:"description" json:"description"`
	SampleCode  []string          `yaml:"sample_code" json:"sample_code"`
	Flow        string            `yaml:"flow,omitempty" json:"flow,omitempty"`
	CursorStart []int             `yaml:"cursor_start,omitempty" json:"cursor_start,omitempty"`
	Goals       []goal.Definition `yaml:"goals" json:"goals"`
}

// Chapter is a loaded chapter with its exercises compiled.
type Chapter struct {
	Number      int
	Title       string
	Description string
	Exercises   []Exercise
}

// Exercise is a compiled exercise plus presentation data the engine does
// not need but the session does.
type Exercise struct {
	exercise.Exercise

	// CursorStartLine and CursorStartCol are 1-based coordinates the
	// editor opens at. Both default to 1.
	CursorStartLine int
	CursorStartCol  int
}
