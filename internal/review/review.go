// Package review schedules exercise revisits on an expanding interval:
// each completion pushes the next review further out, so fresh material
// comes back quickly and mastered material rarely.
package review

import (
	"time"

	"github.com/vimdojo/vimdojo/internal/store"
)

// BaseIntervals defines the expanding review schedule in days.
// Stage 0 = first review after the first completion.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// State holds the review state for a single exercise.
type State struct {
	Chapter     int
	Exercise    string
	LastTrained time.Time
	// Completions indexes into BaseIntervals, capped at the last entry.
	Completions int
}

// IntervalDays returns the current review interval in days.
func (s *State) IntervalDays() int {
	if s.Completions <= 0 {
		return 0
	}
	idx := s.Completions - 1
	if idx >= len(BaseIntervals) {
		idx = len(BaseIntervals) - 1
	}
	return BaseIntervals[idx]
}

// NextReview returns when the exercise comes due again. Exercises never
// completed are due immediately.
func (s *State) NextReview() time.Time {
	if s.Completions <= 0 {
		return s.LastTrained
	}
	return s.LastTrained.AddDate(0, 0, s.IntervalDays())
}

// IsDue returns true if the exercise is at or past its review date.
func (s *State) IsDue(now time.Time) bool {
	return !now.Before(s.NextReview())
}

// DaysUntil returns the number of days until the next review.
// Returns 0 if already due.
func (s *State) DaysUntil(now time.Time) int {
	if s.IsDue(now) {
		return 0
	}
	return int(s.NextReview().Sub(now).Hours()/24.0) + 1
}

// FromSessions folds recorded sessions into per-exercise review state.
// Sessions must be in reverse chronological order, the way the store
// returns them.
func FromSessions(sessions []store.Session) map[int]map[string]*State {
	out := make(map[int]map[string]*State)
	for _, sess := range sessions {
		byTitle := out[sess.Chapter]
		if byTitle == nil {
			byTitle = make(map[string]*State)
			out[sess.Chapter] = byTitle
		}
		st := byTitle[sess.Exercise]
		if st == nil {
			st = &State{Chapter: sess.Chapter, Exercise: sess.Exercise}
			byTitle[sess.Exercise] = st
		}
		if sess.StartedAt.After(st.LastTrained) {
			st.LastTrained = sess.StartedAt
		}
		if sess.Outcome == "completed" {
			st.Completions++
		}
	}
	return out
}

// Streak counts consecutive days trained, ending today or yesterday.
// times may be in any order; only the date part matters.
func Streak(times []time.Time, now time.Time) int {
	days := make(map[string]bool, len(times))
	for _, t := range times {
		days[t.Format("2006-01-02")] = true
	}

	day := now
	// A streak survives until a full day is missed, so a gap of one day
	// at the head means the streak ended yesterday.
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
