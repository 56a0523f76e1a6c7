package scrollback

import (
	"fmt"
	"testing"
)

func fill(b *Buffer, n int) {
	for i := 1; i <= n; i++ {
		b.Append(fmt.Sprintf("line %d", i), NoStyle)
	}
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func assertVisible(t *testing.T, b *Buffer, want []string) {
	t.Helper()
	got := texts(b.Visible())
	if len(got) != len(want) {
		t.Fatalf("expected %d visible lines, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visible[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestScrollTopAndTail(t *testing.T) {
	b := New(10, 4)
	fill(b, 15)

	// 15 appends into a virtual height of 10 retain lines 6..15.
	b.ScrollTop()
	assertVisible(t, b, []string{"line 6", "line 7", "line 8", "line 9"})

	b.ScrollToTail()
	assertVisible(t, b, []string{"line 12", "line 13", "line 14", "line 15"})
}

func TestPageClampsBothDirections(t *testing.T) {
	b := New(10, 4)
	fill(b, 15)

	for i := 0; i < 20; i++ {
		b.ScrollPageUp()
	}
	if got := b.Offset(); got != 6 {
		t.Errorf("expected offset clamped at 6, got %d", got)
	}
	assertVisible(t, b, []string{"line 6", "line 7", "line 8", "line 9"})

	for i := 0; i < 20; i++ {
		b.ScrollPageDown()
	}
	if got := b.Offset(); got != 0 {
		t.Errorf("expected offset clamped at 0, got %d", got)
	}
}

func TestLineScroll(t *testing.T) {
	b := New(10, 4)
	fill(b, 10)

	b.ScrollLineUp()
	assertVisible(t, b, []string{"line 6", "line 7", "line 8", "line 9"})
	b.ScrollLineDown()
	assertVisible(t, b, []string{"line 7", "line 8", "line 9", "line 10"})

	// Down past the tail is a no-op.
	b.ScrollLineDown()
	if got := b.Offset(); got != 0 {
		t.Errorf("expected offset 0, got %d", got)
	}
}

func TestAutoFollowAtTail(t *testing.T) {
	b := New(10, 4)
	fill(b, 8)

	assertVisible(t, b, []string{"line 5", "line 6", "line 7", "line 8"})
	b.Append("line 9", NoStyle)
	assertVisible(t, b, []string{"line 6", "line 7", "line 8", "line 9"})
}

func TestScrollbackStableWhileReviewing(t *testing.T) {
	b := New(20, 4)
	fill(b, 10)

	b.ScrollPageUp()
	before := texts(b.Visible())

	// New output must not move the viewport while scrolled back.
	b.Append("line 11", NoStyle)
	b.Append("line 12", NoStyle)
	assertVisible(t, b, before)
}

func TestScrollbackStableAcrossEviction(t *testing.T) {
	b := New(5, 2)
	fill(b, 5)

	b.ScrollTop() // showing lines 1,2
	b.Append("line 6", NoStyle)

	// Line 1 was evicted; the clamped view shows the oldest retained.
	assertVisible(t, b, []string{"line 2", "line 3"})
}

func TestShortBufferShowsFewerLines(t *testing.T) {
	b := New(10, 4)
	fill(b, 2)
	assertVisible(t, b, []string{"line 1", "line 2"})
}

func TestStyleRetained(t *testing.T) {
	b := New(4, 2)
	b.Append("plain", NoStyle)
	b.Append("alert", 3)

	vis := b.Visible()
	if vis[0].Style != NoStyle || vis[1].Style != 3 {
		t.Errorf("expected styles [NoStyle 3], got [%d %d]", vis[0].Style, vis[1].Style)
	}
}

func TestWindowClampedToVirtual(t *testing.T) {
	b := New(3, 10)
	fill(b, 3)
	if got := len(b.Visible()); got != 3 {
		t.Errorf("expected window clamped to virtual height, got %d lines", got)
	}
}
