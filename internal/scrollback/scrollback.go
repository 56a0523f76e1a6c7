// Package scrollback implements the virtual line buffer behind the
// output window: a fixed-capacity ring holding more lines than the
// screen shows, with a clamped scroll offset anchored at the tail.
package scrollback

import "sync"

// NoStyle marks a line rendered in the default style.
const NoStyle = -1

// Line is a single buffered line with an optional style identifier.
// Style indexes the classifier's rule set; NoStyle means default.
type Line struct {
	Text  string
	Style int
}

// Buffer is a ring of Lines with a windowed view. Virtual height is the
// ring capacity; physical height is the window size. The offset counts
// lines scrolled back from the live tail; 0 means the view follows new
// output. All methods are safe for concurrent use: the reader path
// appends while the editor path scrolls.
type Buffer struct {
	mu sync.Mutex

	lines    []Line
	capacity int // virtual height V
	window   int // physical height P
	start    int // ring index of the oldest line
	count    int
	offset   int // lines scrolled back from the tail, [0, maxOffset]
}

// New creates a buffer holding up to virtual lines and showing window
// lines at a time. Both are clamped to a minimum of 1, and the window
// never exceeds the virtual height.
func New(virtual, window int) *Buffer {
	if virtual < 1 {
		virtual = 1
	}
	if window < 1 {
		window = 1
	}
	if window > virtual {
		window = virtual
	}
	return &Buffer{
		lines:    make([]Line, virtual),
		capacity: virtual,
		window:   window,
	}
}

// Append adds a line at the tail, evicting the oldest line once the
// ring is full. While the user is scrolled back the visible window
// stays on the same lines; at offset 0 the view stays pinned to the
// tail.
func (b *Buffer) Append(text string, style int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count < b.capacity {
		b.lines[(b.start+b.count)%b.capacity] = Line{Text: text, Style: style}
		b.count++
	} else {
		b.lines[b.start] = Line{Text: text, Style: style}
		b.start = (b.start + 1) % b.capacity
	}

	if b.offset > 0 {
		b.offset = clamp(b.offset+1, 0, b.maxOffset())
	}
}

// Visible returns the window contents, oldest first: exactly window
// lines once the buffer has that many, fewer at startup.
func (b *Buffer) Visible() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.window
	if n > b.count {
		n = b.count
	}
	// First visible line, as a logical index from the oldest retained.
	first := b.count - n - b.offset
	if first < 0 {
		first = 0
	}

	out := make([]Line, n)
	for i := 0; i < n; i++ {
		out[i] = b.lines[(b.start+first+i)%b.capacity]
	}
	return out
}

// Offset returns the current scroll distance from the tail.
func (b *Buffer) Offset() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.offset
}

// Len returns the number of retained lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Window returns the physical window height.
func (b *Buffer) Window() int {
	return b.window
}

// ScrollPageUp scrolls back one window height.
func (b *Buffer) ScrollPageUp() {
	b.scrollBy(b.window)
}

// ScrollPageDown scrolls forward one window height.
func (b *Buffer) ScrollPageDown() {
	b.scrollBy(-b.window)
}

// ScrollLineUp scrolls back one line.
func (b *Buffer) ScrollLineUp() {
	b.scrollBy(1)
}

// ScrollLineDown scrolls forward one line.
func (b *Buffer) ScrollLineDown() {
	b.scrollBy(-1)
}

// ScrollTop jumps to the oldest retained line.
func (b *Buffer) ScrollTop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offset = b.maxOffset()
}

// ScrollToTail returns to the live view.
func (b *Buffer) ScrollToTail() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offset = 0
}

// scrollBy adjusts the offset by delta lines (positive = back in time),
// clamping at both ends. Scrolling past either end is a no-op, not an
// error.
func (b *Buffer) scrollBy(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offset = clamp(b.offset+delta, 0, b.maxOffset())
}

// maxOffset is the farthest the view can scroll back: everything
// retained minus one window. Callers must hold mu.
func (b *Buffer) maxOffset() int {
	if m := b.count - b.window; m > 0 {
		return m
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
