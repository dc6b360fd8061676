package review

import (
	"testing"
	"time"

	"github.com/vimdojo/vimdojo/internal/store"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC)
}

func TestIntervalExpandsWithCompletions(t *testing.T) {
	cases := []struct {
		completions int
		wantDays    int
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 7},
		{6, 60},
		{10, 60}, // capped at the last interval
	}

	for _, tc := range cases {
		s := &State{Completions: tc.completions}
		if got := s.IntervalDays(); got != tc.wantDays {
			t.Errorf("IntervalDays() with %d completions = %d, want %d",
				tc.completions, got, tc.wantDays)
		}
	}
}

func TestIsDue(t *testing.T) {
	s := &State{LastTrained: date(2026, 3, 1), Completions: 2} // 3 day interval

	if s.IsDue(date(2026, 3, 2)) {
		t.Error("IsDue one day after training = true, want false")
	}
	if !s.IsDue(date(2026, 3, 4)) {
		t.Error("IsDue at the interval boundary = false, want true")
	}

	never := &State{LastTrained: date(2026, 3, 1)}
	if !never.IsDue(date(2026, 3, 1)) {
		t.Error("exercise never completed should be due immediately")
	}
}

func TestDaysUntil(t *testing.T) {
	s := &State{LastTrained: date(2026, 3, 1), Completions: 3} // 7 day interval

	if got := s.DaysUntil(date(2026, 3, 5)); got != 4 {
		t.Errorf("DaysUntil() = %d, want 4", got)
	}
	if got := s.DaysUntil(date(2026, 3, 20)); got != 0 {
		t.Errorf("DaysUntil() past due = %d, want 0", got)
	}
}

func TestFromSessions(t *testing.T) {
	sessions := []store.Session{
		{Chapter: 1, Exercise: "Delete a word", Outcome: "completed", StartedAt: date(2026, 3, 10)},
		{Chapter: 1, Exercise: "Delete a word", Outcome: "incomplete", StartedAt: date(2026, 3, 8)},
		{Chapter: 1, Exercise: "Delete a word", Outcome: "completed", StartedAt: date(2026, 3, 5)},
		{Chapter: 2, Exercise: "Yank a line", Outcome: "incomplete", StartedAt: date(2026, 3, 9)},
	}

	states := FromSessions(sessions)

	del := states[1]["Delete a word"]
	if del == nil {
		t.Fatal("missing state for chapter 1 exercise")
	}
	if del.Completions != 2 {
		t.Errorf("Completions = %d, want 2", del.Completions)
	}
	if !del.LastTrained.Equal(date(2026, 3, 10)) {
		t.Errorf("LastTrained = %v, want most recent session", del.LastTrained)
	}

	yank := states[2]["Yank a line"]
	if yank == nil {
		t.Fatal("missing state for chapter 2 exercise")
	}
	if yank.Completions != 0 {
		t.Errorf("Completions = %d, want 0", yank.Completions)
	}
}

func TestStreak(t *testing.T) {
	now := date(2026, 3, 10)

	cases := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{"no sessions", nil, 0},
		{"trained today only", []time.Time{now}, 1},
		{
			"three consecutive days ending today",
			[]time.Time{date(2026, 3, 8), date(2026, 3, 9), now},
			3,
		},
		{
			"streak ended yesterday still counts",
			[]time.Time{date(2026, 3, 8), date(2026, 3, 9)},
			2,
		},
		{
			"gap breaks the streak",
			[]time.Time{date(2026, 3, 6), date(2026, 3, 7), date(2026, 3, 9), now},
			2,
		},
		{
			"multiple sessions per day count once",
			[]time.Time{now, now.Add(2 * time.Hour), date(2026, 3, 9)},
			2,
		},
		{"last trained two days ago", []time.Time{date(2026, 3, 8)}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Streak(tc.times, now); got != tc.want {
				t.Errorf("Streak() = %d, want %d", got, tc.want)
			}
		})
	}
}
