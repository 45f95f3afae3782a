package keymap

import (
	"testing"

	"github.com/recapdev/recap/internal/domain"
)

// Tests drive Expire directly instead of waiting on the timer, so the
// keymaps here are built without one.
func newTestKeymap() *Keymap {
	return New(0)
}

func TestSingleKeyDispatch(t *testing.T) {
	testCases := []struct {
		key  rune
		kind EventKind
		rate domain.Rating
	}{
		{' ', Flip, 0},
		{'\n', Flip, 0},
		{'f', Flip, 0},
		{'1', Rate, domain.Again},
		{'2', Rate, domain.Hard},
		{'3', Rate, domain.Good},
		{'4', Rate, domain.Easy},
		{'x', None, 0},
		{'5', None, 0},
	}

	for _, tc := range testCases {
		k := newTestKeymap()
		ev := k.Press(tc.key)
		if ev.Kind != tc.kind || ev.Rating != tc.rate {
			t.Errorf("Press(%q) = %+v, want kind %d rating %d", tc.key, ev, tc.kind, tc.rate)
		}
	}
}

func TestResetSequence(t *testing.T) {
	k := newTestKeymap()

	if ev := k.Press('r'); ev.Kind != None {
		t.Fatalf("first r should arm the prefix, got %+v", ev)
	}
	if !k.Pending() {
		t.Fatal("prefix should be pending after the first r")
	}
	if ev := k.Press('r'); ev.Kind != Reset {
		t.Errorf("second r should emit Reset, got %+v", ev)
	}
	if k.Pending() {
		t.Error("prefix should clear after the sequence completes")
	}
}

func TestPrefixRedispatchesOtherKeys(t *testing.T) {
	k := newTestKeymap()
	k.Press('r')

	ev := k.Press('3')
	if ev.Kind != Rate || ev.Rating != domain.Good {
		t.Errorf("key after an armed prefix should dispatch normally, got %+v", ev)
	}
	if k.Pending() {
		t.Error("any second key consumes the prefix")
	}
}

func TestExpireDiscardsPrefix(t *testing.T) {
	k := newTestKeymap()
	k.Press('r')
	k.Expire()

	if k.Pending() {
		t.Fatal("Expire should discard the pending prefix")
	}
	// After expiry the next r arms a fresh prefix instead of resetting.
	if ev := k.Press('r'); ev.Kind != None {
		t.Errorf("r after expiry should arm again, got %+v", ev)
	}
}

func TestExpireWithoutPrefixIsSafe(t *testing.T) {
	k := newTestKeymap()
	k.Expire()
	if ev := k.Press('2'); ev.Kind != Rate {
		t.Errorf("Press after idle Expire = %+v, want Rate", ev)
	}
}
