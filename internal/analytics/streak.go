// Package analytics computes derived study metrics from persisted history.
// Every calculator is a pure function over the records it is handed; the
// caller loads history from storage and supplies it whole.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/recapdev/recap/internal/domain"
)

// StreakData summarizes consecutive-day study activity.
type StreakData struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastStudyDate string `json:"last_study_date"` // empty when no history
}

// Streaks computes the current and longest study streaks from daily stats.
// The current streak is only live when the latest record is today or
// yesterday relative to now; it then extends backwards while consecutive
// records are at most one day apart and have cards reviewed.
//
// LastStudyDate is the date of the latest record even when that record has
// zero cards reviewed; see the longest-streak note in streak_test.go for the
// other deliberate asymmetry around zero-review days.
func Streaks(stats []domain.DailyStat, now time.Time) StreakData {
	if len(stats) == 0 {
		return StreakData{}
	}

	sorted := make([]domain.DailyStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	last := sorted[len(sorted)-1]
	out := StreakData{LastStudyDate: last.Date}

	lastDay, err := time.ParseInLocation(domain.DateLayout, last.Date, now.Location())
	if err != nil {
		return out
	}

	today := midnight(now)
	if gap := daysBetween(lastDay, today); gap <= 1 {
		prev := lastDay
		for i := len(sorted) - 1; i >= 0; i-- {
			day, err := time.ParseInLocation(domain.DateLayout, sorted[i].Date, now.Location())
			if err != nil {
				break
			}
			if daysBetween(day, prev) > 1 || sorted[i].CardsReviewed == 0 {
				break
			}
			out.CurrentStreak++
			prev = day
		}
	}

	// Longest streak walks earliest to latest. Zero-review days are skipped
	// outright: they neither extend nor reset the running streak.
	var run int
	var prevCounted time.Time
	for _, st := range sorted {
		if st.CardsReviewed == 0 {
			continue
		}
		day, err := time.ParseInLocation(domain.DateLayout, st.Date, now.Location())
		if err != nil {
			continue
		}
		if !prevCounted.IsZero() && daysBetween(prevCounted, day) == 1 {
			run++
		} else {
			run = 1
		}
		prevCounted = day
		if run > out.LongestStreak {
			out.LongestStreak = run
		}
	}

	return out
}

// midnight truncates t to the start of its local calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the calendar days from a to b (a not after b).
// Rounding absorbs DST days that are not exactly 24 hours long.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
