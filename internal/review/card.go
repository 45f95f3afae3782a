package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recapdev/recap/internal/domain"
)

// Status is the learning stage of a card within one session.
type Status int

const (
	Unseen   Status = iota // Not yet presented this session.
	Learning               // Presented at least once, not yet mastered.
	Mastered               // Last rated Easy.
)

var statusNames = [...]string{Unseen: "Unseen", Learning: "Learning", Mastered: "Mastered"}

// String returns the name of the status. For invalid values it returns "Status(n)".
func (s Status) String() string {
	if s >= Unseen && s <= Mastered {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Card is the ephemeral review state of one question for the duration of a
// single session. Cards are created fresh at session start and never persisted.
type Card struct {
	ID             string
	Question       domain.Question
	Status         Status
	LastRating     domain.Rating // zero until first rated
	ReviewCount    int
	CreatedAt      time.Time
	LastReviewedAt time.Time // zero until first rated
}

// materialize builds a fresh review queue from a deck's questions. Fields are
// defaulted (Unseen, no ratings) and the order is uniformly shuffled so each
// session presents the deck in a new order.
func (s *Scheduler) materialize(qs []domain.Question) []*Card {
	now := s.now()
	cards := make([]*Card, len(qs))
	for i, q := range qs {
		cards[i] = &Card{
			ID:        uuid.NewString(),
			Question:  q,
			Status:    Unseen,
			CreatedAt: now,
		}
	}
	s.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}
