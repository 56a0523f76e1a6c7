// Package editor implements the single-line input editor: a small
// state machine over key events with history recall and emacs-style
// editing keys. It knows nothing about the terminal; key events arrive
// through a Source and the current line is pushed to a Display.
package editor

import (
	"strings"

	"github.com/dshills/splitterm/internal/history"
	"github.com/dshills/splitterm/internal/input/key"
)

// Result is the terminal state of an edit session.
type Result int

const (
	// ResultSubmitted means Enter was pressed; the trimmed text was
	// recorded in history and returned.
	ResultSubmitted Result = iota

	// ResultCancelled means Escape was pressed or the input source
	// closed; the session is being torn down.
	ResultCancelled
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultSubmitted:
		return "submitted"
	case ResultCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Source supplies key events. Next blocks until a key arrives and
// returns false when the input stream has closed.
type Source interface {
	Next() (key.Event, bool)
}

// Display shows the in-progress line. SetLine receives the full text
// and the cursor position as a rune index.
type Display interface {
	SetLine(text string, cursor int)
}

// Callback fires on every recognized key before the editor acts on it,
// letting the orchestrator route navigation keys to the scrollback.
type Callback func(ev key.Event)

// Editor is the line-input state machine. Not safe for concurrent use;
// it lives entirely on the editor goroutine.
type Editor struct {
	src  Source
	disp Display
	hist *history.History

	buf []rune
	cur int
}

// New creates an editor reading keys from src, drawing to disp, and
// recalling from hist.
func New(src Source, disp Display, hist *history.History) *Editor {
	return &Editor{src: src, disp: disp, hist: hist}
}

// Edit runs one edit session: it stays in the editing state across
// scroll and history keys and returns only on submission or
// cancellation. The submitted text is trimmed and added to history
// before it is returned.
func (e *Editor) Edit(cb Callback) (string, Result) {
	e.refresh()
	for {
		ev, ok := e.src.Next()
		if !ok {
			return "", ResultCancelled
		}
		if cb != nil {
			cb(ev)
		}

		switch ev.Key {
		case key.KeyEnter:
			text := strings.TrimSpace(string(e.buf))
			e.hist.Add(text)
			e.clear()
			return text, ResultSubmitted

		case key.KeyEscape:
			return "", ResultCancelled

		case key.KeyArrowUp:
			cmd, _ := e.hist.Previous()
			e.setText(cmd)

		case key.KeyArrowDown:
			cmd, _ := e.hist.Next()
			e.setText(cmd)

		default:
			if ev.Key.IsScroll() {
				// Routed by the callback; the line is untouched.
				continue
			}
			e.apply(ev)
		}
	}
}

// Text returns the current buffer contents.
func (e *Editor) Text() string {
	return string(e.buf)
}

// Cursor returns the cursor position as a rune index.
func (e *Editor) Cursor() int {
	return e.cur
}

// apply handles ordinary editing keys.
func (e *Editor) apply(ev key.Event) {
	switch ev.Key {
	case key.KeyRune:
		if ev.IsChar() {
			e.insert(ev.Rune)
		}
	case key.KeyArrowLeft, key.KeyCtrlB:
		if e.cur > 0 {
			e.cur--
		}
	case key.KeyArrowRight, key.KeyCtrlF:
		if e.cur < len(e.buf) {
			e.cur++
		}
	case key.KeyCtrlA:
		e.cur = 0
	case key.KeyCtrlE:
		e.cur = len(e.buf)
	case key.KeyBackspace:
		if e.cur > 0 {
			e.buf = append(e.buf[:e.cur-1], e.buf[e.cur:]...)
			e.cur--
		}
	case key.KeyDelete, key.KeyCtrlD:
		if e.cur < len(e.buf) {
			e.buf = append(e.buf[:e.cur], e.buf[e.cur+1:]...)
		}
	case key.KeyCtrlK:
		e.buf = e.buf[:e.cur]
	case key.KeyCtrlL:
		// Redraw only.
	default:
		return
	}
	e.refresh()
}

func (e *Editor) insert(r rune) {
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cur+1:], e.buf[e.cur:])
	e.buf[e.cur] = r
	e.cur++
}

// setText replaces the buffer, used by history recall. The cursor moves
// to the end.
func (e *Editor) setText(text string) {
	e.buf = []rune(text)
	e.cur = len(e.buf)
	e.refresh()
}

func (e *Editor) clear() {
	e.buf = e.buf[:0]
	e.cur = 0
	e.refresh()
}

func (e *Editor) refresh() {
	if e.disp != nil {
		e.disp.SetLine(string(e.buf), e.cur)
	}
}
