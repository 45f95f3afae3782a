package domain

import "time"

// DateLayout is the calendar-date key format used by DailyStat.
const DateLayout = "2006-01-02"

// StudySession is the immutable record of one completed review session.
// It is only ever written once, when the session completes.
type StudySession struct {
	ID            string    `json:"id"`
	DeckID        string    `json:"deck_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	CardsReviewed int       `json:"cards_reviewed"`
	CardsMastered int       `json:"cards_mastered"`
	Ratings       Tally     `json:"ratings"`
}

// DailyStat aggregates study activity for one local calendar day.
// Records are merged by date: completing a session sums its totals into
// the existing record for that day.
type DailyStat struct {
	Date          string `json:"date"` // DateLayout
	CardsReviewed int    `json:"cards_reviewed"`
	CardsMastered int    `json:"cards_mastered"`
	TimeSpent     int    `json:"time_spent"` // minutes
}
