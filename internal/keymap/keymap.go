// Package keymap translates physical key presses into the three domain
// events the review scheduler consumes: flip, rate, and reset.
//
// Reset is guarded by a two-key sequence ("r" twice) so a stray key cannot
// throw away a session. The pending prefix is held in an explicit state
// machine with start/consume/expire transitions; a cancellable timer drives
// expiry in the CLI, tests drive Expire directly.
package keymap

import (
	"sync"
	"time"

	"github.com/recapdev/recap/internal/domain"
)

// EventKind identifies which domain event a key press produced.
type EventKind int

const (
	None  EventKind = iota // Key not bound, or a pending prefix was armed.
	Flip                   // Reveal the answer side of the card.
	Rate                   // Submit the rating carried in Event.Rating.
	Reset                  // Restart the session.
)

// Event is one translated input event.
type Event struct {
	Kind   EventKind
	Rating domain.Rating // set when Kind == Rate
}

const resetKey = 'r'

// Keymap is the input dispatcher for one review session.
type Keymap struct {
	timeout time.Duration

	mu      sync.Mutex
	pending bool
	timer   *time.Timer
}

// New creates a keymap whose reset prefix expires after timeout. A zero or
// negative timeout disables the timer; the prefix then only clears on the
// next key press or an explicit Expire.
func New(timeout time.Duration) *Keymap {
	return &Keymap{timeout: timeout}
}

// Press consumes one key and returns the event it maps to.
func (k *Keymap) Press(key rune) Event {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.pending {
		k.clearPending()
		if key == resetKey {
			return Event{Kind: Reset}
		}
		// Not the second half of the sequence; dispatch it normally.
		return dispatch(key)
	}

	if key == resetKey {
		k.pending = true
		if k.timeout > 0 {
			k.timer = time.AfterFunc(k.timeout, k.Expire)
		}
		return Event{Kind: None}
	}

	return dispatch(key)
}

// Expire discards a pending reset prefix. Safe to call at any time.
func (k *Keymap) Expire() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.clearPending()
}

// Pending reports whether a reset prefix is armed.
func (k *Keymap) Pending() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pending
}

func (k *Keymap) clearPending() {
	k.pending = false
	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}
}

func dispatch(key rune) Event {
	switch key {
	case ' ', '\n', 'f':
		return Event{Kind: Flip}
	case '1', '2', '3', '4':
		return Event{Kind: Rate, Rating: domain.Rating(key - '0')}
	default:
		return Event{Kind: None}
	}
}
