package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/splitterm/internal/config"
)

// StyleFromNames resolves foreground/background color names into a
// tcell style. Names are case-insensitive; a curses-style "COLOR_RED"
// is accepted alongside "red". Empty names keep the terminal default.
func StyleFromNames(fg, bg string) (tcell.Style, error) {
	style := tcell.StyleDefault

	fgc, err := lookupColor(fg)
	if err != nil {
		return style, err
	}
	bgc, err := lookupColor(bg)
	if err != nil {
		return style, err
	}
	return style.Foreground(fgc).Background(bgc), nil
}

func lookupColor(name string) (tcell.Color, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "COLOR_"))
	name = strings.TrimPrefix(name, "color_")
	if name == "" || name == "default" {
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[name]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("ui: unknown color %q", name)
}

// StylesFromPatterns compiles the configured color patterns into a
// style table indexed by rule position, matching the classifier's
// StyleID numbering.
func StylesFromPatterns(patterns config.ColorPatterns) ([]tcell.Style, error) {
	styles := make([]tcell.Style, 0, len(patterns))
	for _, p := range patterns {
		st, err := StyleFromNames(p.FG, p.BG)
		if err != nil {
			return nil, fmt.Errorf("ui: pattern %q: %w", p.Name, err)
		}
		styles = append(styles, st)
	}
	return styles, nil
}
