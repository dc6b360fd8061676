package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
	"github.com/vimdojo/vimdojo/internal/store"
)

// eventWriter is the slice of the store the sink needs.
type eventWriter interface {
	AppendGoalEvent(ctx context.Context, ev store.GoalEvent) error
	AppendHintEvent(ctx context.Context, ev store.HintEvent) error
}

// storeSink mirrors progress events into the history database. Writes are
// best effort: history must never interfere with a running exercise.
type storeSink struct {
	store     eventWriter
	sessionID string
	began     time.Time
	log       *zap.Logger

	lastGoal int
}

func newStoreSink(st eventWriter, sessionID string, began time.Time, log *zap.Logger) *storeSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &storeSink{store: st, sessionID: sessionID, began: began, log: log}
}

// GoalSatisfied records the timing of each goal as it is met, final goal
// included.
func (s *storeSink) GoalSatisfied(index int, g goal.Goal) {
	ev := store.GoalEvent{
		SessionID:   s.sessionID,
		GoalIndex:   index,
		Description: g.Description,
		Elapsed:     time.Since(s.began),
	}
	if err := s.store.AppendGoalEvent(context.Background(), ev); err != nil {
		s.log.Warn("record goal event", zap.Error(err))
	}
}

// GoalAdvanced only tracks which goal is awaited so hints can be attributed.
func (s *storeSink) GoalAdvanced(next int, g goal.Goal, completed, total int) {
	s.lastGoal = next
}

func (s *storeSink) Completed(*exercise.Exercise) {}

func (s *storeSink) Hint(text string) {
	ev := store.HintEvent{
		SessionID: s.sessionID,
		GoalIndex: s.lastGoal,
		Provider:  "coach",
		Hint:      text,
	}
	if err := s.store.AppendHintEvent(context.Background(), ev); err != nil {
		s.log.Warn("record hint event", zap.Error(err))
	}
}
