package analytics

import (
	"sort"

	"github.com/recapdev/recap/internal/domain"
)

// StudyEfficiency summarizes throughput across all recorded history.
type StudyEfficiency struct {
	TotalStudyTime     int     `json:"total_study_time"`     // minutes
	TotalCardsReviewed int     `json:"total_cards_reviewed"`
	CardsPerMinute     float64 `json:"cards_per_minute"`
	AverageTimePerCard float64 `json:"average_time_per_card"` // seconds
	PeakHour           *int    `json:"peak_hour"`             // local hour 0-23, nil with no sessions
}

// Efficiency computes overall study throughput. Degenerate inputs yield
// zeroes rather than division errors: no study time means zero cards per
// minute, no reviewed cards means zero seconds per card.
func Efficiency(sessions []domain.StudySession, stats []domain.DailyStat) StudyEfficiency {
	var out StudyEfficiency

	for _, st := range stats {
		out.TotalStudyTime += st.TimeSpent
	}
	for _, s := range sessions {
		out.TotalCardsReviewed += s.CardsReviewed
	}

	if out.TotalStudyTime > 0 {
		out.CardsPerMinute = float64(out.TotalCardsReviewed) / float64(out.TotalStudyTime)
	}
	if out.TotalCardsReviewed > 0 {
		out.AverageTimePerCard = float64(out.TotalStudyTime) * 60 / float64(out.TotalCardsReviewed)
	}

	out.PeakHour = peakHour(sessions)
	return out
}

// peakHour returns the local start-time hour with the largest summed
// cards-reviewed count. Ties keep whichever hour was first encountered
// processing sessions in chronological order.
func peakHour(sessions []domain.StudySession) *int {
	if len(sessions) == 0 {
		return nil
	}

	ordered := make([]domain.StudySession, len(sessions))
	copy(ordered, sessions)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	totals := make(map[int]int, 24)
	var hourOrder []int
	for _, s := range ordered {
		h := s.StartTime.Hour()
		if _, seen := totals[h]; !seen {
			hourOrder = append(hourOrder, h)
		}
		totals[h] += s.CardsReviewed
	}

	best := hourOrder[0]
	for _, h := range hourOrder[1:] {
		if totals[h] > totals[best] {
			best = h
		}
	}
	return &best
}
