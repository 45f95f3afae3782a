package analytics

import (
	"sort"
	"time"

	"github.com/recapdev/recap/internal/domain"
)

// maxRetentionDays caps how far back the retention curve reaches. Buckets
// older than this carry too few samples to plot meaningfully.
const maxRetentionDays = 90

// RetentionPoint is one bucket of the retention curve: of all ratings given
// in sessions started daysSinceReview days ago, the fraction that were
// Good or Easy.
type RetentionPoint struct {
	DaysSinceReview int     `json:"days_since_review"`
	RetentionRate   float64 `json:"retention_rate"`
	SampleSize      int     `json:"sample_size"`
}

// RetentionCurve buckets completed sessions by whole days since their start
// time and computes per-bucket retention. Sessions without an end time
// (never completed) or without any ratings are skipped. Points are sorted
// ascending by age and capped at maxRetentionDays.
func RetentionCurve(sessions []domain.StudySession, now time.Time) []RetentionPoint {
	type bucket struct {
		total int
		good  int
	}
	buckets := make(map[int]*bucket)

	for _, s := range sessions {
		if s.EndTime.IsZero() {
			continue
		}
		total := s.Ratings.Total()
		if total == 0 {
			continue
		}
		days := int(now.Sub(s.StartTime).Hours() / 24)
		b := buckets[days]
		if b == nil {
			b = &bucket{}
			buckets[days] = b
		}
		b.total += total
		b.good += s.Ratings.GoodTotal()
	}

	points := make([]RetentionPoint, 0, len(buckets))
	for days, b := range buckets {
		if days > maxRetentionDays {
			continue
		}
		points = append(points, RetentionPoint{
			DaysSinceReview: days,
			RetentionRate:   float64(b.good) / float64(b.total),
			SampleSize:      b.total,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].DaysSinceReview < points[j].DaysSinceReview
	})
	return points
}
