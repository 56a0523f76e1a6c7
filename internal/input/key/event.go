package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// IsChar returns true if this is a printable character event.
func (e Event) IsChar() bool {
	return e.Key == KeyRune && unicode.IsPrint(e.Rune)
}

// String returns a canonical representation, e.g. "a", "Enter", "Alt+Up".
func (e Event) String() string {
	if e.Key == KeyRune {
		if e.Rune == ' ' {
			return "Space"
		}
		return fmt.Sprintf("%c", e.Rune)
	}
	return e.Key.String()
}
