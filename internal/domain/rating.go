package domain

import (
	"encoding"
	"fmt"
)

// Rating is the user's self-assessment of recall quality for one card.
type Rating int

const (
	Again Rating = iota + 1 // Complete failure to recall.
	Hard                    // Recalled with significant difficulty.
	Good                    // Recalled with some effort.
	Easy                    // Recalled effortlessly; the card is mastered.
)

var (
	ratingNames  = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}
	ratingByName = map[string]Rating{
		"Again": Again,
		"Hard":  Hard,
		"Good":  Good,
		"Easy":  Easy,
	}
)

var (
	_ fmt.Stringer             = Rating(0)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// IsValid reports whether r is a valid rating (Again through Easy).
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// String returns the name of the rating ("Again", "Hard", "Good", "Easy").
// For invalid values it returns "Rating(n)".
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("domain: invalid rating: %d", int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, ok := ratingByName[string(text)]
	if !ok {
		return fmt.Errorf("domain: invalid rating: %q", text)
	}
	*r = v
	return nil
}

// Tally counts how many times each rating was submitted during a session.
type Tally struct {
	Again int `json:"again"`
	Hard  int `json:"hard"`
	Good  int `json:"good"`
	Easy  int `json:"easy"`
}

// Add increments the counter for the given rating. Invalid ratings are ignored.
func (t *Tally) Add(r Rating) {
	switch r {
	case Again:
		t.Again++
	case Hard:
		t.Hard++
	case Good:
		t.Good++
	case Easy:
		t.Easy++
	}
}

// Total returns the sum of all four counters.
func (t Tally) Total() int {
	return t.Again + t.Hard + t.Good + t.Easy
}

// GoodTotal returns the count of ratings considered retained (Good and Easy).
func (t Tally) GoodTotal() int {
	return t.Good + t.Easy
}
