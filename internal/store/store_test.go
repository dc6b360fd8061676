package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"sessions", "goal_events", "hint_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.BeginSession(ctx, 1, "Reach the corner", "sequential", 3)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	for i := 0; i < 3; i++ {
		err := s.AppendGoalEvent(ctx, GoalEvent{
			SessionID:   id,
			GoalIndex:   i,
			Description: "goal",
			Elapsed:     time.Duration(i+1) * time.Second,
		})
		if err != nil {
			t.Fatalf("goal event %d: %v", i, err)
		}
	}

	if err := s.FinishSession(ctx, id, "completed", 3, 9*time.Second); err != nil {
		t.Fatalf("finish: %v", err)
	}

	sessions, err := s.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	got := sessions[0]
	if got.Outcome != "completed" || got.GoalsCompleted != 3 || got.Duration != 9*time.Second {
		t.Errorf("session = %+v", got)
	}

	n, err := s.GoalEventCount(ctx, id)
	if err != nil {
		t.Fatalf("goal event count: %v", err)
	}
	if n != 3 {
		t.Errorf("goal events = %d, want 3", n)
	}
}

func TestCompletedSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	finish := func(chapter int, exercise, outcome string) {
		t.Helper()
		id, err := s.BeginSession(ctx, chapter, exercise, "sequential", 1)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.FinishSession(ctx, id, outcome, 1, time.Second); err != nil {
			t.Fatal(err)
		}
	}

	finish(1, "a", "completed")
	finish(1, "a", "incomplete")
	finish(1, "b", "incomplete")
	finish(2, "c", "completed")

	done, err := s.CompletedSet(ctx)
	if err != nil {
		t.Fatalf("completed set: %v", err)
	}
	if !done[1]["a"] || !done[2]["c"] {
		t.Errorf("missing completions: %v", done)
	}
	if done[1]["b"] {
		t.Error("exercise b should not be completed")
	}
}

func TestStatsAggregation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := func(outcome string, dur time.Duration) {
		t.Helper()
		id, err := s.BeginSession(ctx, 1, "a", "sequential", 2)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.FinishSession(ctx, id, outcome, 2, dur); err != nil {
			t.Fatal(err)
		}
	}

	run("incomplete", 30*time.Second)
	run("completed", 20*time.Second)
	run("completed", 10*time.Second)

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d rows, want 1", len(stats))
	}
	st := stats[0]
	if st.Attempts != 3 || st.Completions != 2 {
		t.Errorf("attempts/completions = %d/%d", st.Attempts, st.Completions)
	}
	if st.BestTime != 10*time.Second {
		t.Errorf("best time = %v, want 10s", st.BestTime)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.BeginSession(ctx, 1, "a", "sequential", 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AppendHintEvent(ctx, HintEvent{SessionID: id, Provider: "mock", Hint: "press j"}); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	sessions, err := s.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions after reset = %d", len(sessions))
	}
}
