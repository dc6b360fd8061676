package exercise

import (
	"github.com/vimdojo/vimdojo/internal/editor"
	"github.com/vimdojo/vimdojo/internal/goal"
)

// Transition is the result of observing one snapshot.
type Transition struct {
	// Satisfied lists the goal indices newly completed by this sample,
	// in discovery order.
	Satisfied []int
	// Completed is true when this sample finished the exercise.
	Completed bool
	// Active is the index of the goal to display next. Equal to the goal
	// count once the exercise is complete. For AnyOrder it is the first
	// still-pending goal; Parallel keeps it at 0 until completion.
	Active int
}

// Tracker owns an exercise's progression state. It has exactly one
// mutator: the monitoring loop feeding it snapshots through Observe.
// No internal locking, by the single-writer contract.
type Tracker struct {
	ex        *Exercise
	active    int
	completed []bool
	done      bool
}

// NewTracker starts progression at the first goal with nothing completed.
func NewTracker(ex *Exercise) *Tracker {
	return &Tracker{
		ex:        ex,
		completed: make([]bool, len(ex.Goals)),
	}
}

// Observe applies at most one policy-dependent transition for the sample.
func (t *Tracker) Observe(st editor.State) Transition {
	if t.done || len(t.ex.Goals) == 0 {
		return Transition{Active: t.active, Completed: t.done}
	}

	switch t.ex.Flow {
	case AnyOrder:
		return t.observeAnyOrder(st)
	case Parallel:
		return t.observeParallel(st)
	default:
		return t.observeSequential(st)
	}
}

// observeSequential evaluates only the active goal. The active index moves
// by exactly one per satisfied goal; goals are never skipped.
func (t *Tracker) observeSequential(st editor.State) Transition {
	if !goal.Satisfied(t.ex.Goals[t.active], st) {
		return Transition{Active: t.active}
	}

	satisfied := t.active
	t.completed[satisfied] = true
	t.active++
	if t.active == len(t.ex.Goals) {
		t.done = true
	}
	return Transition{
		Satisfied: []int{satisfied},
		Completed: t.done,
		Active:    t.active,
	}
}

// observeAnyOrder evaluates every still-pending goal against the sample.
func (t *Tracker) observeAnyOrder(st editor.State) Transition {
	var newly []int
	for i, g := range t.ex.Goals {
		if t.completed[i] {
			continue
		}
		if goal.Satisfied(g, st) {
			t.completed[i] = true
			newly = append(newly, i)
		}
	}

	t.done = t.allCompleted()
	t.active = t.firstPending()
	return Transition{Satisfied: newly, Completed: t.done, Active: t.active}
}

// observeParallel completes only when every goal holds in this one sample.
// Goals satisfied on earlier samples do not carry over.
func (t *Tracker) observeParallel(st editor.State) Transition {
	for _, g := range t.ex.Goals {
		if !goal.Satisfied(g, st) {
			return Transition{Active: t.active}
		}
	}

	newly := make([]int, len(t.ex.Goals))
	for i := range t.completed {
		t.completed[i] = true
		newly[i] = i
	}
	t.done = true
	t.active = len(t.ex.Goals)
	return Transition{Satisfied: newly, Completed: true, Active: t.active}
}

// ActiveIndex returns the index of the goal currently awaited. Equals the
// goal count once the exercise is complete.
func (t *Tracker) ActiveIndex() int {
	return t.active
}

// ActiveGoal returns the awaited goal, or false when the exercise is done.
func (t *Tracker) ActiveGoal() (goal.Goal, bool) {
	if t.done || t.active >= len(t.ex.Goals) {
		return goal.Goal{}, false
	}
	return t.ex.Goals[t.active], true
}

// Done reports whether every goal has been satisfied per the flow policy.
func (t *Tracker) Done() bool {
	return t.done
}

// Completed returns a copy of the per-goal completion flags.
func (t *Tracker) Completed() []bool {
	out := make([]bool, len(t.completed))
	copy(out, t.completed)
	return out
}

// CompletedCount returns how many goals have been satisfied so far.
func (t *Tracker) CompletedCount() int {
	n := 0
	for _, c := range t.completed {
		if c {
			n++
		}
	}
	return n
}

func (t *Tracker) allCompleted() bool {
	for _, c := range t.completed {
		if !c {
			return false
		}
	}
	return true
}

func (t *Tracker) firstPending() int {
	for i, c := range t.completed {
		if !c {
			return i
		}
	}
	return len(t.completed)
}
