// Package key defines the closed set of key events the console reacts
// to, decoupling the editor's state machine from the terminal backend's
// key-code encoding.
package key

import "github.com/gdamore/tcell/v2"

// Key identifies a keyboard key. Character keys use KeyRune with the
// character in Event.Rune.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Terminal actions
	KeyEnter
	KeyEscape

	// History navigation
	KeyArrowUp
	KeyArrowDown

	// Scrollback navigation
	KeyPageUp
	KeyPageDown
	KeyAltArrowUp
	KeyAltArrowDown
	KeyHome
	KeyEnd

	// Line editing
	KeyArrowLeft
	KeyArrowRight
	KeyBackspace
	KeyDelete
	KeyCtrlA
	KeyCtrlB
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlK
	KeyCtrlL

	// KeyRune is used for character keys (letters, numbers, punctuation).
	KeyRune
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyArrowUp:
		return "Up"
	case KeyArrowDown:
		return "Down"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyAltArrowUp:
		return "Alt+Up"
	case KeyAltArrowDown:
		return "Alt+Down"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyArrowLeft:
		return "Left"
	case KeyArrowRight:
		return "Right"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyCtrlA:
		return "Ctrl+A"
	case KeyCtrlB:
		return "Ctrl+B"
	case KeyCtrlD:
		return "Ctrl+D"
	case KeyCtrlE:
		return "Ctrl+E"
	case KeyCtrlF:
		return "Ctrl+F"
	case KeyCtrlK:
		return "Ctrl+K"
	case KeyCtrlL:
		return "Ctrl+L"
	case KeyRune:
		return "Rune"
	default:
		return "Unknown"
	}
}

// IsScroll returns true for keys that scroll the output window.
func (k Key) IsScroll() bool {
	switch k {
	case KeyPageUp, KeyPageDown, KeyAltArrowUp, KeyAltArrowDown, KeyHome, KeyEnd:
		return true
	}
	return false
}

// FromTcell converts a tcell key event into the console's key model.
// Unrecognized special keys map to KeyNone.
func FromTcell(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyEnter:
		return Event{Key: KeyEnter}
	case tcell.KeyEscape:
		return Event{Key: KeyEscape}
	case tcell.KeyUp:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return Event{Key: KeyAltArrowUp}
		}
		return Event{Key: KeyArrowUp}
	case tcell.KeyDown:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return Event{Key: KeyAltArrowDown}
		}
		return Event{Key: KeyArrowDown}
	case tcell.KeyLeft:
		return Event{Key: KeyArrowLeft}
	case tcell.KeyRight:
		return Event{Key: KeyArrowRight}
	case tcell.KeyPgUp:
		return Event{Key: KeyPageUp}
	case tcell.KeyPgDn:
		return Event{Key: KeyPageDown}
	case tcell.KeyHome:
		return Event{Key: KeyHome}
	case tcell.KeyEnd:
		return Event{Key: KeyEnd}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Key: KeyBackspace}
	case tcell.KeyDelete:
		return Event{Key: KeyDelete}
	case tcell.KeyCtrlA:
		return Event{Key: KeyCtrlA}
	case tcell.KeyCtrlB:
		return Event{Key: KeyCtrlB}
	case tcell.KeyCtrlD:
		return Event{Key: KeyCtrlD}
	case tcell.KeyCtrlE:
		return Event{Key: KeyCtrlE}
	case tcell.KeyCtrlF:
		return Event{Key: KeyCtrlF}
	case tcell.KeyCtrlK:
		return Event{Key: KeyCtrlK}
	case tcell.KeyCtrlL:
		return Event{Key: KeyCtrlL}
	case tcell.KeyRune:
		return Event{Key: KeyRune, Rune: ev.Rune()}
	default:
		return Event{Key: KeyNone}
	}
}
