package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/vimdojo/vimdojo/internal/editor"
	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedSampler replays a fixed sequence of samples, then repeats the
// final entry forever.
type scriptedSampler struct {
	mu      sync.Mutex
	samples []sampleStep
	pos     int
}

type sampleStep struct {
	st  editor.State
	err error
}

func (s *scriptedSampler) Sample(context.Context) (editor.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step := s.samples[s.pos]
	if s.pos < len(s.samples)-1 {
		s.pos++
	}
	return step.st, step.err
}

// recordingSink captures published events.
type recordingSink struct {
	mu        sync.Mutex
	advances  []int
	satisfied []int
	completed bool
	hints     []string
}

func (r *recordingSink) GoalSatisfied(index int, _ goal.Goal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.satisfied = append(r.satisfied, index)
}

func (r *recordingSink) GoalAdvanced(next int, _ goal.Goal, _, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advances = append(r.advances, next)
}

func (r *recordingSink) Completed(*exercise.Exercise) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = true
}

func (r *recordingSink) Hint(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hints = append(r.hints, text)
}

func twoGoalExercise() *exercise.Exercise {
	return &exercise.Exercise{
		Title: "drill",
		Goals: []goal.Goal{
			{Target: goal.Position{Line: 0, Col: 1}, Description: "step right"},
			{Target: goal.ModeIs{Mode: editor.Insert}, Description: "enter insert"},
		},
		Flow: exercise.Sequential,
	}
}

func fastConfig() Config {
	return Config{Interval: time.Millisecond}
}

func TestRunCompletes(t *testing.T) {
	sampler := &scriptedSampler{samples: []sampleStep{
		{st: editor.State{CursorCol: 0}},
		{st: editor.State{CursorCol: 1}},
		{st: editor.State{CursorCol: 1, Mode: editor.Insert}},
	}}
	sink := &recordingSink{}
	loop := New(twoGoalExercise(), sampler, sink, fastConfig(), zap.NewNop())

	res := loop.Run(context.Background())

	if res.Outcome != OutcomeCompleted {
		t.Fatalf("outcome = %v, want completed", res.Outcome)
	}
	if !sink.completed {
		t.Error("completion event not published")
	}
	// One advance event for the first goal; completion replaces the second.
	if len(sink.advances) != 1 || sink.advances[0] != 2 {
		t.Errorf("advances = %v, want [2]", sink.advances)
	}
}

func TestRunRecordsEverySatisfiedGoal(t *testing.T) {
	sampler := &scriptedSampler{samples: []sampleStep{
		{st: editor.State{CursorCol: 1}},
		{st: editor.State{CursorCol: 1, Mode: editor.Insert}},
	}}
	sink := &recordingSink{}
	loop := New(twoGoalExercise(), sampler, sink, fastConfig(), zap.NewNop())

	if res := loop.Run(context.Background()); res.Outcome != OutcomeCompleted {
		t.Fatalf("outcome = %v, want completed", res.Outcome)
	}

	// The completing goal gets a satisfied event even though it never
	// produces an advance event.
	if len(sink.satisfied) != 2 || sink.satisfied[0] != 0 || sink.satisfied[1] != 1 {
		t.Errorf("satisfied = %v, want [0 1]", sink.satisfied)
	}
}

func TestRunCancellationReturnsIncomplete(t *testing.T) {
	sampler := &scriptedSampler{samples: []sampleStep{
		{st: editor.State{CursorCol: 0}},
	}}
	loop := New(twoGoalExercise(), sampler, &recordingSink{}, fastConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() { done <- loop.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		if res.Outcome != OutcomeIncomplete {
			t.Errorf("outcome = %v, want incomplete", res.Outcome)
		}
	case <-time.After(time.Second):
		t.Fatal("loop did not observe cancellation within a sampling interval")
	}
}

func TestRunSamplerErrorUsesLastKnownSnapshot(t *testing.T) {
	// The good sample satisfies goal 0; the error sample must reuse it
	// rather than propagate, and the final sample finishes the exercise.
	sampler := &scriptedSampler{samples: []sampleStep{
		{st: editor.State{CursorCol: 1}},
		{err: errors.New("status file missing")},
		{st: editor.State{CursorCol: 1, Mode: editor.Insert}},
	}}
	loop := New(twoGoalExercise(), sampler, &recordingSink{}, fastConfig(), zap.NewNop())

	res := loop.Run(context.Background())
	if res.Outcome != OutcomeCompleted {
		t.Fatalf("outcome = %v, want completed despite sampler error", res.Outcome)
	}
}

func TestRunSamplerErrorBeforeFirstSampleUsesDefault(t *testing.T) {
	// All samples fail: the default snapshot (origin, normal mode) must be
	// substituted, which satisfies an origin-position goal.
	ex := &exercise.Exercise{
		Goals: []goal.Goal{{Target: goal.Position{Line: 0, Col: 0}}},
		Flow:  exercise.Sequential,
	}
	sampler := &scriptedSampler{samples: []sampleStep{
		{err: errors.New("no sample yet")},
	}}
	loop := New(ex, sampler, &recordingSink{}, fastConfig(), zap.NewNop())

	res := loop.Run(context.Background())
	if res.Outcome != OutcomeCompleted {
		t.Fatalf("outcome = %v, want completed on default snapshot", res.Outcome)
	}
}

// stubAdvisor hands out one canned hint.
type stubAdvisor struct {
	mu        sync.Mutex
	requested int
	hint      string
	ready     bool
}

func (a *stubAdvisor) Request(_ context.Context, _ *exercise.Exercise, _ int, _ editor.State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requested++
	a.ready = true
}

func (a *stubAdvisor) Consume() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ready {
		return "", false
	}
	a.ready = false
	return a.hint, true
}

func TestRunRequestsHintWhenStuck(t *testing.T) {
	ex := &exercise.Exercise{
		Goals: []goal.Goal{{Target: goal.Position{Line: 0, Col: 9}, Description: "far away"}},
		Flow:  exercise.Sequential,
	}
	sampler := &scriptedSampler{samples: []sampleStep{
		{st: editor.State{CursorCol: 0}},
	}}
	sink := &recordingSink{}
	advisor := &stubAdvisor{hint: "try $ to jump to end of line"}

	loop := New(ex, sampler, sink, Config{Interval: time.Millisecond, StuckAfter: 5 * time.Millisecond}, zap.NewNop())
	loop.Coach = advisor

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	res := loop.Run(ctx)

	if res.Outcome != OutcomeIncomplete {
		t.Fatalf("outcome = %v, want incomplete", res.Outcome)
	}
	if advisor.requested != 1 {
		t.Errorf("hint requested %d times, want exactly once per goal", advisor.requested)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.hints) != 1 || sink.hints[0] != "try $ to jump to end of line" {
		t.Errorf("hints = %v", sink.hints)
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeCompleted.String() != "completed" ||
		OutcomeIncomplete.String() != "incomplete" ||
		OutcomeFailed.String() != "failed" {
		t.Error("unexpected outcome strings")
	}
}
