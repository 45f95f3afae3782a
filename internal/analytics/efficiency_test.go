package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/recapdev/recap/internal/domain"
)

func TestEfficiencyEmptyHistory(t *testing.T) {
	got := Efficiency(nil, nil)
	if got.CardsPerMinute != 0 || got.AverageTimePerCard != 0 {
		t.Errorf("empty history should yield zero rates, got %+v", got)
	}
	if got.PeakHour != nil {
		t.Errorf("PeakHour = %v, want nil with no sessions", *got.PeakHour)
	}
}

func TestEfficiencyZeroStudyTime(t *testing.T) {
	sessions := []domain.StudySession{
		session(now.AddDate(0, 0, -1), domain.Tally{Good: 5}),
	}
	stats := []domain.DailyStat{
		{Date: day(-1), CardsReviewed: 5, TimeSpent: 0},
	}

	got := Efficiency(sessions, stats)
	if got.CardsPerMinute != 0 {
		t.Errorf("CardsPerMinute = %f, want 0 with no study time", got.CardsPerMinute)
	}
	if got.AverageTimePerCard != 0 {
		t.Errorf("AverageTimePerCard = %f, want 0 with no study time", got.AverageTimePerCard)
	}
}

func TestEfficiencyRates(t *testing.T) {
	sessions := []domain.StudySession{
		session(now.AddDate(0, 0, -2), domain.Tally{Good: 12}),
		session(now.AddDate(0, 0, -1), domain.Tally{Easy: 18}),
	}
	stats := []domain.DailyStat{
		{Date: day(-2), CardsReviewed: 12, TimeSpent: 10},
		{Date: day(-1), CardsReviewed: 18, TimeSpent: 5},
	}

	got := Efficiency(sessions, stats)
	if got.TotalStudyTime != 15 || got.TotalCardsReviewed != 30 {
		t.Fatalf("totals = %d min, %d cards, want 15 and 30", got.TotalStudyTime, got.TotalCardsReviewed)
	}
	if math.Abs(got.CardsPerMinute-2.0) > 1e-9 {
		t.Errorf("CardsPerMinute = %f, want 2.0", got.CardsPerMinute)
	}
	if math.Abs(got.AverageTimePerCard-30.0) > 1e-9 {
		t.Errorf("AverageTimePerCard = %f, want 30s", got.AverageTimePerCard)
	}
}

func TestPeakHour(t *testing.T) {
	at := func(daysAgo, hour, reviewed int) domain.StudySession {
		start := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location()).AddDate(0, 0, -daysAgo)
		return domain.StudySession{StartTime: start, EndTime: start.Add(time.Minute), CardsReviewed: reviewed}
	}

	t.Run("strict maximum wins", func(t *testing.T) {
		got := Efficiency([]domain.StudySession{
			at(3, 9, 10),
			at(2, 21, 25),
			at(1, 9, 10),
		}, nil)
		if got.PeakHour == nil || *got.PeakHour != 21 {
			t.Errorf("PeakHour = %v, want 21", got.PeakHour)
		}
	})

	t.Run("tie keeps the hour seen first", func(t *testing.T) {
		got := Efficiency([]domain.StudySession{
			at(1, 8, 10), // later session, but processed in chronological order
			at(3, 20, 10),
		}, nil)
		if got.PeakHour == nil || *got.PeakHour != 20 {
			t.Errorf("PeakHour = %v, want 20 (first hour in chronological order)", got.PeakHour)
		}
	})
}
