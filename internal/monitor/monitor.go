// Package monitor drives an exercise to completion by polling editor
// snapshots on a fixed cadence and feeding them to the progression tracker.
package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vimdojo/vimdojo/internal/editor"
	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

// Sampler produces the latest editor snapshot. A returned error means no
// fresh sample is available; the loop recovers by reusing the last known
// snapshot, never by stopping.
type Sampler interface {
	Sample(ctx context.Context) (editor.State, error)
}

// Sink receives progress events. Implementations are fire-and-forget:
// they must not block the loop and have no way to fail it.
type Sink interface {
	// GoalAdvanced fires when the exercise moves to a new goal. next is
	// the 1-based index of the goal now awaited.
	GoalAdvanced(next int, g goal.Goal, completed, total int)
	// Completed fires once, when the exercise finishes.
	Completed(ex *exercise.Exercise)
	// Hint publishes a coaching hint for the current goal.
	Hint(text string)
}

// GoalRecorder is an optional Sink extension. GoalSatisfied fires once per
// satisfied goal with its 0-based index, including the goal that completes
// the exercise, which never produces a GoalAdvanced call.
type GoalRecorder interface {
	GoalSatisfied(index int, g goal.Goal)
}

// Advisor asynchronously produces a coaching hint for a goal the learner
// is stuck on. Request must not block; Consume returns a hint at most once.
type Advisor interface {
	Request(ctx context.Context, ex *exercise.Exercise, goalIndex int, st editor.State)
	Consume() (string, bool)
}

// Outcome classifies how monitoring ended.
type Outcome int

const (
	// OutcomeCompleted means every goal was satisfied.
	OutcomeCompleted Outcome = iota
	// OutcomeIncomplete means monitoring was cancelled before completion.
	OutcomeIncomplete
	// OutcomeFailed means the session could not run at all.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeIncomplete:
		return "incomplete"
	default:
		return "failed"
	}
}

// Result is the terminal outcome of one monitored exercise.
type Result struct {
	Outcome Outcome
	Reason  string
}

// Failed builds a failure result with the given reason.
func Failed(reason string) Result {
	return Result{Outcome: OutcomeFailed, Reason: reason}
}

// Config holds monitoring loop settings.
type Config struct {
	// Interval is the sampling cadence.
	Interval time.Duration
	// StuckAfter is how long the learner may linger on one goal before
	// a coaching hint is requested. Zero disables coaching.
	StuckAfter time.Duration
}

// DefaultConfig returns the tutorial-scale defaults.
func DefaultConfig() Config {
	return Config{
		Interval:   100 * time.Millisecond,
		StuckAfter: 45 * time.Second,
	}
}

// Loop polls the sampler and applies tracker transitions until the
// exercise completes or the context is cancelled. It is the sole mutator
// of the tracker's progression state.
type Loop struct {
	ex      *exercise.Exercise
	tracker *exercise.Tracker
	sampler Sampler
	sink    Sink
	cfg     Config
	log     *zap.Logger

	// Coach optionally provides stuck-goal hints. Set before Run.
	Coach Advisor
}

// New builds a monitoring loop for one exercise.
func New(ex *exercise.Exercise, sampler Sampler, sink Sink, cfg Config, log *zap.Logger) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		ex:      ex,
		tracker: exercise.NewTracker(ex),
		sampler: sampler,
		sink:    sink,
		cfg:     cfg,
		log:     log,
	}
}

// Completed reports the per-goal completion bitmap after (or during) Run.
func (l *Loop) Completed() []bool {
	return l.tracker.Completed()
}

// Run blocks until the exercise completes or ctx is cancelled. Sampler
// failures substitute the last known snapshot (or the default snapshot if
// none exists yet) and are never surfaced to the caller.
func (l *Loop) Run(ctx context.Context) Result {
	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	last := editor.DefaultState()
	goalSince := time.Now()
	hintRequested := false

	for {
		select {
		case <-ctx.Done():
			l.log.Debug("monitoring cancelled",
				zap.Int("completed", l.tracker.CompletedCount()),
				zap.Int("total", len(l.ex.Goals)))
			return Result{Outcome: OutcomeIncomplete}
		case <-ticker.C:
		}

		st, err := l.sampler.Sample(ctx)
		if err != nil {
			l.log.Debug("sample unavailable, reusing last snapshot", zap.Error(err))
			st = last
		} else {
			last = st
		}

		tran := l.tracker.Observe(st)

		if rec, ok := l.sink.(GoalRecorder); ok {
			for _, i := range tran.Satisfied {
				rec.GoalSatisfied(i, l.ex.Goals[i])
			}
		}

		if tran.Completed {
			l.sink.Completed(l.ex)
			l.log.Debug("exercise completed", zap.String("title", l.ex.Title))
			return Result{Outcome: OutcomeCompleted}
		}

		if len(tran.Satisfied) > 0 {
			next, _ := l.tracker.ActiveGoal()
			l.sink.GoalAdvanced(tran.Active+1, next, l.tracker.CompletedCount(), len(l.ex.Goals))
			l.log.Debug("goal advanced",
				zap.Ints("satisfied", tran.Satisfied),
				zap.Int("active", tran.Active))
			goalSince = time.Now()
			hintRequested = false
		}

		l.coach(ctx, st, goalSince, &hintRequested)
	}
}

// coach consumes any ready hint and requests a new one when the learner
// has lingered on the active goal past the stuck threshold.
func (l *Loop) coach(ctx context.Context, st editor.State, goalSince time.Time, requested *bool) {
	if l.Coach == nil || l.cfg.StuckAfter <= 0 {
		return
	}

	if hint, ok := l.Coach.Consume(); ok {
		l.sink.Hint(hint)
	}

	if *requested || time.Since(goalSince) < l.cfg.StuckAfter {
		return
	}
	if _, ok := l.tracker.ActiveGoal(); !ok {
		return
	}

	l.Coach.Request(ctx, l.ex, l.tracker.ActiveIndex(), st)
	*requested = true
}
