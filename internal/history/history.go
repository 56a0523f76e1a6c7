// Package history tracks previously issued commands in insertion order
// with a navigation cursor for recall.
package history

import "sync"

// History is a deduplicated, insertion-ordered command list. The cursor
// points at the entry recalled by Current; position len(entries) is the
// empty "new entry" slot past the newest command.
//
// History is safe for concurrent use: the editor recalls entries while
// a config reload may seed new commands.
type History struct {
	mu      sync.Mutex
	entries []string
	present map[string]struct{}
	cursor  int
}

// New creates a history seeded with the given commands, in order.
func New(seed []string) *History {
	h := &History{present: make(map[string]struct{})}
	for _, cmd := range seed {
		h.add(cmd)
	}
	return h
}

// Add inserts a command if it is not already present. Re-adding an
// existing command does not move it. The cursor always resets to the
// empty slot past the newest entry. Empty commands are ignored.
func (h *History) Add(cmd string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.add(cmd)
}

// add is Add without the lock, for callers that already hold mu and
// for construction.
func (h *History) add(cmd string) {
	if cmd == "" {
		h.cursor = len(h.entries)
		return
	}
	if _, ok := h.present[cmd]; !ok {
		h.entries = append(h.entries, cmd)
		h.present[cmd] = struct{}{}
	}
	h.cursor = len(h.entries)
}

// Len returns the number of stored commands.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// All returns the stored commands, oldest first.
func (h *History) All() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Previous moves the cursor toward the oldest entry and returns the
// command there. It clamps at the oldest entry. On an empty history it
// returns false and the cursor stays put.
func (h *History) Previous() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next moves the cursor toward the newest entry. Past the newest entry
// the cursor parks on the empty new-entry slot and Next returns false.
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Current returns the entry at the cursor without moving it.
func (h *History) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}
