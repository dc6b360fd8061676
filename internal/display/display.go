// Package display renders training progress to the user: a tmux pane with
// the current goal, a flag file other tooling can watch, or both fanned
// out. Every sink implements monitor.Sink.
package display

import (
	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

// Sink mirrors monitor.Sink so sinks can be composed without importing
// the monitor package.
type Sink interface {
	GoalAdvanced(next int, g goal.Goal, completed, total int)
	Completed(ex *exercise.Exercise)
	Hint(text string)
}

// Multi fans every notification out to all its sinks in order.
type Multi []Sink

func (m Multi) GoalAdvanced(next int, g goal.Goal, completed, total int) {
	for _, s := range m {
		s.GoalAdvanced(next, g, completed, total)
	}
}

// GoalSatisfied forwards per-goal events to the sinks that record them.
func (m Multi) GoalSatisfied(index int, g goal.Goal) {
	for _, s := range m {
		if r, ok := s.(interface{ GoalSatisfied(int, goal.Goal) }); ok {
			r.GoalSatisfied(index, g)
		}
	}
}

func (m Multi) Completed(ex *exercise.Exercise) {
	for _, s := range m {
		s.Completed(ex)
	}
}

func (m Multi) Hint(text string) {
	for _, s := range m {
		s.Hint(text)
	}
}

// Discard drops every notification. Useful in tests and headless runs.
type Discard struct{}

func (Discard) GoalAdvanced(int, goal.Goal, int, int) {}
func (Discard) Completed(*exercise.Exercise)          {}
func (Discard) Hint(string)                           {}
