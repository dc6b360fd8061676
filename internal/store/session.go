package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is one training run of one exercise.
type Session struct {
	ID             string
	Chapter        int
	Exercise       string
	Flow           string
	Outcome        string
	GoalsTotal     int
	GoalsCompleted int
	Duration       time.Duration
	StartedAt      time.Time
}

// GoalEvent records one goal being satisfied during a session.
type GoalEvent struct {
	SessionID   string
	GoalIndex   int
	Description string
	Elapsed     time.Duration
}

// HintEvent records one coaching hint shown during a session.
type HintEvent struct {
	SessionID string
	GoalIndex int
	Provider  string
	Hint      string
}

// BeginSession inserts a new session row and returns its id.
func (s *Store) BeginSession(ctx context.Context, chapter int, exercise, flow string, goalsTotal int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, chapter, exercise, flow, goals_total, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, chapter, exercise, flow, goalsTotal, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// FinishSession records the outcome of a session.
func (s *Store) FinishSession(ctx context.Context, id, outcome string, goalsCompleted int, duration time.Duration) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions
		 SET outcome = ?, goals_completed = ?, duration_ms = ?, finished_at = ?
		 WHERE id = ?`,
		outcome, goalsCompleted, duration.Milliseconds(), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}

// AppendGoalEvent records one satisfied goal.
func (s *Store) AppendGoalEvent(ctx context.Context, ev GoalEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO goal_events (session_id, goal_index, description, elapsed_ms)
		 VALUES (?, ?, ?, ?)`,
		ev.SessionID, ev.GoalIndex, ev.Description, ev.Elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert goal event: %w", err)
	}
	return nil
}

// AppendHintEvent records one coaching hint.
func (s *Store) AppendHintEvent(ctx context.Context, ev HintEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO hint_events (session_id, goal_index, provider, hint)
		 VALUES (?, ?, ?, ?)`,
		ev.SessionID, ev.GoalIndex, ev.Provider, ev.Hint)
	if err != nil {
		return fmt.Errorf("insert hint event: %w", err)
	}
	return nil
}

// RecentSessions returns the newest sessions, most recent first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chapter, exercise, flow, outcome, goals_total, goals_completed, duration_ms, started_at
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var durationMs int64
		if err := rows.Scan(&sess.ID, &sess.Chapter, &sess.Exercise, &sess.Flow, &sess.Outcome,
			&sess.GoalsTotal, &sess.GoalsCompleted, &durationMs, &sess.StartedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, sess)
	}
	return out, rows.Err()
}

// CompletedSet returns the exercise titles completed at least once per
// chapter, for marking progress in listings.
func (s *Store) CompletedSet(ctx context.Context) (map[int]map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT chapter, exercise FROM sessions WHERE outcome = 'completed'`)
	if err != nil {
		return nil, fmt.Errorf("query completed: %w", err)
	}
	defer rows.Close()

	out := make(map[int]map[string]bool)
	for rows.Next() {
		var chapter int
		var exercise string
		if err := rows.Scan(&chapter, &exercise); err != nil {
			return nil, fmt.Errorf("scan completed: %w", err)
		}
		if out[chapter] == nil {
			out[chapter] = make(map[string]bool)
		}
		out[chapter][exercise] = true
	}
	return out, rows.Err()
}

// ExerciseStats summarizes all attempts of one exercise.
type ExerciseStats struct {
	Chapter     int
	Exercise    string
	Attempts    int
	Completions int
	BestTime    time.Duration
}

// Stats aggregates attempts per exercise, ordered by chapter.
func (s *Store) Stats(ctx context.Context) ([]ExerciseStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chapter, exercise,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = 'completed' THEN duration_ms END), 0)
		 FROM sessions
		 GROUP BY chapter, exercise
		 ORDER BY chapter, exercise`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var out []ExerciseStats
	for rows.Next() {
		var st ExerciseStats
		var bestMs int64
		if err := rows.Scan(&st.Chapter, &st.Exercise, &st.Attempts, &st.Completions, &bestMs); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		st.BestTime = time.Duration(bestMs) * time.Millisecond
		out = append(out, st)
	}
	return out, rows.Err()
}

// Reset deletes all history.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"goal_events", "hint_events", "sessions"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// GoalEventCount returns how many goal events a session recorded.
func (s *Store) GoalEventCount(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM goal_events WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("count goal events: %w", err)
	}
	return n, nil
}
