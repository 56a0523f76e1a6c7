package history

import (
	"fmt"
	"testing"
)

func TestEmptyNavigation(t *testing.T) {
	h := New(nil)

	// Any sequence of moves on an empty history yields nothing and
	// never corrupts the cursor.
	moves := []func() (string, bool){h.Previous, h.Next, h.Previous, h.Previous, h.Next}
	for i, move := range moves {
		if cmd, ok := move(); ok || cmd != "" {
			t.Errorf("move %d: expected none on empty history, got %q", i, cmd)
		}
	}
	if _, ok := h.Current(); ok {
		t.Error("expected no current entry on empty history")
	}
}

func TestAddDeduplicates(t *testing.T) {
	h := New(nil)
	h.Add("x")
	h.Add("y")
	h.Add("x")

	if h.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", h.Len())
	}
	all := h.All()
	if all[0] != "x" || all[1] != "y" {
		t.Errorf("re-adding must not reorder: got %v", all)
	}
}

func TestAddIgnoresEmpty(t *testing.T) {
	h := New(nil)
	h.Add("")
	if h.Len() != 0 {
		t.Errorf("expected empty command to be ignored, got %d entries", h.Len())
	}
}

func TestPreviousClampsAtOldest(t *testing.T) {
	h := New([]string{"a", "b"})

	for i, want := range []string{"b", "a", "a", "a"} {
		got, ok := h.Previous()
		if !ok || got != want {
			t.Errorf("Previous %d: expected %q, got %q (ok=%v)", i, want, got, ok)
		}
	}
}

func TestNextParksOnEmptySlot(t *testing.T) {
	h := New([]string{"a", "b", "c"})
	h.Previous() // c
	h.Previous() // b
	h.Previous() // a

	if got, ok := h.Next(); !ok || got != "b" {
		t.Errorf("expected b, got %q (ok=%v)", got, ok)
	}
	if got, ok := h.Next(); !ok || got != "c" {
		t.Errorf("expected c, got %q (ok=%v)", got, ok)
	}
	// Past the newest entry: the empty new-entry slot.
	if got, ok := h.Next(); ok {
		t.Errorf("expected none past newest entry, got %q", got)
	}
	if got, ok := h.Next(); ok {
		t.Errorf("expected repeated Next to stay on empty slot, got %q", got)
	}
}

func TestAddResetsCursor(t *testing.T) {
	h := New([]string{"a", "b"})
	h.Previous()
	h.Previous()

	h.Add("c")
	if got, ok := h.Previous(); !ok || got != "c" {
		t.Errorf("after Add the first Previous should be the newest: got %q (ok=%v)", got, ok)
	}
}

func TestRoundTrip(t *testing.T) {
	h := New(nil)
	h.Add("reboot now")
	if got, ok := h.Previous(); !ok || got != "reboot now" {
		t.Errorf("expected submitted command back, got %q (ok=%v)", got, ok)
	}
}

// A config reload seeds commands from its own goroutine while the
// editor is recalling; exercised under the race detector.
func TestConcurrentSeedAndRecall(t *testing.T) {
	h := New([]string{"alpha"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			h.Add(fmt.Sprintf("seeded-%d", i%8))
		}
	}()

	for i := 0; i < 1000; i++ {
		h.Previous()
		h.Next()
		h.Add("typed")
		h.Current()
		h.Len()
	}
	<-done

	all := h.All()
	if len(all) == 0 || all[0] != "alpha" {
		t.Errorf("expected seed to survive concurrent use, got %v", all)
	}
}
