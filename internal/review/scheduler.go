package review

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/recapdev/recap/internal/domain"
)

// Recorder is the persistence boundary for finished sessions. The scheduler
// calls both methods exactly once, at the moment a session completes. Write
// failures are the store's concern: the scheduler logs them and moves on,
// it never retries and never rolls back its in-memory state.
type Recorder interface {
	AppendSession(s domain.StudySession) error
	MergeDailyStat(d domain.DailyStat) error
}

// State is the lifecycle state of a scheduler.
type State int

const (
	Active    State = iota // Queue non-empty, accepting ratings.
	Completed              // Every card mastered; terminal.
	Empty                  // Materialized from zero questions; terminal.
)

var stateNames = [...]string{Active: "Active", Completed: "Completed", Empty: "Empty"}

func (s State) String() string {
	if s >= Active && s <= Empty {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config configures a Scheduler. Zero values produce sensible defaults:
// wall-clock time, a time-seeded random source, and a no-op recorder.
type Config struct {
	Recorder Recorder
	Now      func() time.Time
	Rand     *rand.Rand
}

// Scheduler runs one study session over a deck. It owns the review queue,
// consumes rating events one at a time, and hands the finalized session
// record to its Recorder on completion.
//
// The scheduler is not safe for concurrent use; the surrounding input loop
// delivers one event at a time.
type Scheduler struct {
	deckID    string
	questions []domain.Question // original set, kept for Reset

	sessionID string
	startTime time.Time

	queue         []*Card
	cardsReviewed int
	cardsMastered int
	ratings       domain.Tally
	completed     bool

	recorder Recorder
	now      func() time.Time
	rng      *rand.Rand
}

type nopRecorder struct{}

func (nopRecorder) AppendSession(domain.StudySession) error { return nil }
func (nopRecorder) MergeDailyStat(domain.DailyStat) error   { return nil }

// New creates a scheduler for one session over the given questions and
// materializes its review queue.
func New(deckID string, questions []domain.Question, cfg Config) *Scheduler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}

	s := &Scheduler{
		deckID:    deckID,
		questions: questions,
		recorder:  cfg.Recorder,
		now:       cfg.Now,
		rng:       cfg.Rand,
	}
	s.begin()
	return s
}

// begin starts a fresh session: new ID, new start time, reshuffled queue,
// zeroed counters.
func (s *Scheduler) begin() {
	s.sessionID = uuid.NewString()
	s.startTime = s.now()
	s.queue = s.materialize(s.questions)
	s.cardsReviewed = 0
	s.cardsMastered = 0
	s.ratings = domain.Tally{}
	s.completed = false
}

// State returns the scheduler's lifecycle state. An empty deck is a distinct
// terminal state, not a completed session.
func (s *Scheduler) State() State {
	switch {
	case s.completed:
		return Completed
	case len(s.queue) == 0:
		return Empty
	default:
		return Active
	}
}

// Head returns the next card to present, or nil in a terminal state.
func (s *Scheduler) Head() *Card {
	if s.State() != Active {
		return nil
	}
	return s.queue[0]
}

// CardsReviewed returns the number of ratings submitted this session.
func (s *Scheduler) CardsReviewed() int { return s.cardsReviewed }

// CardsMastered returns the number of cards mastered for the first time
// this session.
func (s *Scheduler) CardsMastered() int { return s.cardsMastered }

// Ratings returns the rating tally accumulated this session.
func (s *Scheduler) Ratings() domain.Tally { return s.ratings }

// Remaining returns the current queue length.
func (s *Scheduler) Remaining() int { return len(s.queue) }

// SubmitRating records the user's rating of the head card and reorders the
// queue. It returns the next card to present and whether the session is now
// complete. Calls in a terminal state, or with an invalid rating, are no-ops.
func (s *Scheduler) SubmitRating(rating domain.Rating) (*Card, bool) {
	if s.State() != Active || !rating.IsValid() {
		return s.Head(), s.completed
	}

	c := s.queue[0]
	s.queue = s.queue[1:]

	wasMastered := c.Status == Mastered
	if rating == domain.Easy {
		c.Status = Mastered
	} else {
		c.Status = Learning
	}
	c.LastRating = rating
	c.ReviewCount++
	c.LastReviewedAt = s.now()

	s.cardsReviewed++
	s.ratings.Add(rating)
	if c.Status == Mastered && !wasMastered {
		s.cardsMastered++
	}

	// The session is complete only when this rating was Easy and every card
	// still in the queue is already mastered. A queue of mastered leftovers
	// does not complete on a lower rating: the user must finish on an Easy.
	if rating == domain.Easy && s.allMastered() {
		s.completed = true
		s.finalize()
		return nil, true
	}

	s.requeue(c, rating)
	return s.queue[0], false
}

// allMastered reports whether every card remaining in the queue is mastered.
// Vacuously true for an empty queue.
func (s *Scheduler) allMastered() bool {
	for _, c := range s.queue {
		if c.Status != Mastered {
			return false
		}
	}
	return true
}

// requeue reinserts a just-rated card according to the rating:
//
//   - Easy: append to the tail. The card must resurface so the completion
//     check can eventually pass once every other card is also mastered.
//   - While unseen cards remain: insert directly after the contiguous run of
//     unseen cards at the front, so new material is shown before repeats but
//     a missed card sits right at the new/review boundary.
//   - Otherwise the queue is pure recycling; place the card at a depth
//     proportional to confidence: Again at the front, Hard about a third in,
//     Good about two thirds in.
func (s *Scheduler) requeue(c *Card, rating domain.Rating) {
	n := len(s.queue)

	if rating == domain.Easy {
		s.queue = append(s.queue, c)
		return
	}

	if run, hasUnseen := s.unseenRun(); hasUnseen {
		s.insertAt(c, run)
		return
	}

	var idx int
	switch rating {
	case domain.Again:
		idx = 0
	case domain.Hard:
		idx = max(n/3, 1)
	default: // Good
		idx = max(2*n/3, 2)
	}
	s.insertAt(c, min(idx, n))
}

// unseenRun returns the length of the contiguous run of unseen cards at the
// front of the queue and whether any unseen card remains anywhere in it.
func (s *Scheduler) unseenRun() (int, bool) {
	run := 0
	for run < len(s.queue) && s.queue[run].Status == Unseen {
		run++
	}
	if run > 0 {
		return run, true
	}
	for _, c := range s.queue {
		if c.Status == Unseen {
			return 0, true
		}
	}
	return 0, false
}

func (s *Scheduler) insertAt(c *Card, idx int) {
	s.queue = append(s.queue, nil)
	copy(s.queue[idx+1:], s.queue[idx:])
	s.queue[idx] = c
}

// finalize materializes the immutable session record and the daily-stat
// delta for today, and hands both to the recorder.
func (s *Scheduler) finalize() {
	end := s.now()
	session := domain.StudySession{
		ID:            s.sessionID,
		DeckID:        s.deckID,
		StartTime:     s.startTime,
		EndTime:       end,
		CardsReviewed: s.cardsReviewed,
		CardsMastered: s.cardsMastered,
		Ratings:       s.ratings,
	}
	if err := s.recorder.AppendSession(session); err != nil {
		slog.Warn("failed to persist session", "session_id", s.sessionID, "error", err)
	}

	minutes := int(end.Sub(s.startTime).Minutes())
	delta := domain.DailyStat{
		Date:          end.Format(domain.DateLayout),
		CardsReviewed: s.cardsReviewed,
		CardsMastered: s.cardsMastered,
		TimeSpent:     minutes,
	}
	if err := s.recorder.MergeDailyStat(delta); err != nil {
		slog.Warn("failed to persist daily stat", "date", delta.Date, "error", err)
	}
}

// Reset abandons the current session and starts a new one over the same
// questions with a fresh shuffle. Nothing about the abandoned session is
// persisted; previously recorded history is untouched.
func (s *Scheduler) Reset() {
	s.begin()
}
