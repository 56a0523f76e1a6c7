// Package ui owns the terminal surface: a titled output box with the
// scrollback window inside it and a titled command box with the input
// line. Every mutation of the screen goes through one mutex so the
// reader and editor goroutines never interleave a frame.
package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/dshills/splitterm/internal/input/key"
	"github.com/dshills/splitterm/internal/scrollback"
)

// MinHeight returns the smallest terminal height that fits the chrome
// plus an input window of the given height.
func MinHeight(inputHeight int) int {
	return inputHeight + 7
}

// Surface is the shared rendering surface. It implements the editor's
// Source and Display against the tcell screen.
type Surface struct {
	mu     sync.Mutex
	screen tcell.Screen

	width  int
	height int

	// Output box geometry
	outTop    int // interior first row
	outHeight int // interior rows (physical scroll window)

	// Input window geometry
	inTop    int
	inHeight int

	inner int // interior width of both boxes

	styles   []tcell.Style
	defStyle tcell.Style
	boxStyle tcell.Style
}

// New allocates a surface on a fresh tcell screen.
func New() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen allocates a surface on the given screen. Used by tests
// with tcell's simulation screen.
func NewWithScreen(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

// Init enters terminal mode and draws the static chrome: the output box
// titled with the connection parameters and the command box below it.
func (s *Surface) Init(outputTitle string, inputHeight int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.width, s.height = s.screen.Size()
	if err := s.computeLayout(inputHeight); err != nil {
		s.screen.Fini()
		return err
	}

	s.defStyle = tcell.StyleDefault
	s.boxStyle = tcell.StyleDefault.Dim(true)

	outBottom := s.height - inputHeight - 3 // last row of the output box
	s.screen.Clear()
	s.drawBox(0, 0, outBottom, s.width-1, " "+outputTitle+" ")
	s.drawBox(outBottom+1, 0, outBottom+inputHeight+2, s.width-1, " Commands ")
	s.screen.Show()
	return nil
}

// computeLayout derives the window geometry from the terminal size.
// Callers must hold mu and have set width and height.
func (s *Surface) computeLayout(inputHeight int) error {
	if s.height < MinHeight(inputHeight) {
		return fmt.Errorf("ui: terminal height %d too small, need %d", s.height, MinHeight(inputHeight))
	}
	outBottom := s.height - inputHeight - 3
	s.outTop = 1
	s.outHeight = outBottom - 1
	s.inTop = outBottom + 2
	s.inHeight = inputHeight
	s.inner = s.width - 2
	return nil
}

// OutputHeight returns the number of lines the output window shows.
func (s *Surface) OutputHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outHeight
}

// SetStyles installs the style table indexed by classifier StyleID.
func (s *Surface) SetStyles(styles []tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.styles = styles
}

// RenderOutput redraws the output window with the visible scrollback
// lines, oldest at the top.
func (s *Surface) RenderOutput(lines []scrollback.Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for row := 0; row < s.outHeight; row++ {
		y := s.outTop + row
		if row < len(lines) {
			s.drawLine(1, y, lines[row].Text, s.styleFor(lines[row].Style))
		} else {
			s.drawLine(1, y, "", s.defStyle)
		}
	}
	s.screen.Show()
}

// SetLine draws the input line and places the cursor; cursor is a rune
// index into text. Implements editor.Display.
func (s *Surface) SetLine(text string, cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runes := []rune(text)
	col := 1
	for i, r := range runes {
		if i == cursor {
			break
		}
		col += runewidth.RuneWidth(r)
	}

	s.drawLine(1, s.inTop, text, s.defStyle)
	for y := s.inTop + 1; y < s.inTop+s.inHeight; y++ {
		s.drawLine(1, y, "", s.defStyle)
	}
	s.screen.ShowCursor(col, s.inTop)
	s.screen.Show()
}

// Next blocks for the next recognized key event. It returns false once
// the screen has been finalized. Implements editor.Source.
func (s *Surface) Next() (key.Event, bool) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return key.Event{}, false
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		e := key.FromTcell(kev)
		if e.Key == key.KeyNone {
			continue
		}
		return e, true
	}
}

// Fini restores the terminal to its original mode. Safe to call more
// than once; a pending Next unblocks.
func (s *Surface) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Fini()
}

// styleFor maps a classifier StyleID to a tcell style. Callers must
// hold mu.
func (s *Surface) styleFor(id int) tcell.Style {
	if id >= 0 && id < len(s.styles) {
		return s.styles[id]
	}
	return s.defStyle
}

// drawLine writes text starting at (x, y), truncated to the interior
// width and padded with blanks. Callers must hold mu.
func (s *Surface) drawLine(x, y int, text string, style tcell.Style) {
	col := x
	limit := x + s.inner
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > limit {
			break
		}
		s.screen.SetContent(col, y, r, nil, style)
		col += w
	}
	for ; col < limit; col++ {
		s.screen.SetContent(col, y, ' ', nil, s.defStyle)
	}
}

// drawBox draws a rectangle with dim borders and an italic title.
func (s *Surface) drawBox(top, left, bottom, right int, title string) {
	for x := left + 1; x < right; x++ {
		s.screen.SetContent(x, top, tcell.RuneHLine, nil, s.boxStyle)
		s.screen.SetContent(x, bottom, tcell.RuneHLine, nil, s.boxStyle)
	}
	for y := top + 1; y < bottom; y++ {
		s.screen.SetContent(left, y, tcell.RuneVLine, nil, s.boxStyle)
		s.screen.SetContent(right, y, tcell.RuneVLine, nil, s.boxStyle)
	}
	s.screen.SetContent(left, top, tcell.RuneULCorner, nil, s.boxStyle)
	s.screen.SetContent(right, top, tcell.RuneURCorner, nil, s.boxStyle)
	s.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, s.boxStyle)
	s.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, s.boxStyle)

	titleStyle := s.boxStyle.Italic(true)
	col := left + 5
	for _, r := range title {
		w := runewidth.RuneWidth(r)
		if col+w >= right {
			break
		}
		s.screen.SetContent(col, top, r, nil, titleStyle)
		col += w
	}
}
