package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// markdownRenderer caches a glamour terminal renderer at a specific wrap
// width and rebuilds it lazily when the width changes (window resize).
type markdownRenderer struct {
	tr    *glamour.TermRenderer
	width int
}

// glamourStyle picks the glamour style for the current terminal, with
// Document.Margin zeroed so row containers control their own padding.
func glamourStyle() ansi.StyleConfig {
	var sc ansi.StyleConfig
	switch {
	case !term.IsTerminal(int(os.Stdout.Fd())):
		sc = styles.NoTTYStyleConfig
	case termenv.HasDarkBackground():
		sc = styles.DarkStyleConfig
	default:
		sc = styles.LightStyleConfig
	}
	zero := uint(0)
	sc.Document.Margin = &zero
	return sc
}

// render renders markdown for terminal display at the given wrap width.
// Falls back to the raw content on any renderer error.
func (r *markdownRenderer) render(content string, width int) string {
	if width <= 0 {
		return content
	}
	if r.tr == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStyles(glamourStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		r.tr = tr
		r.width = width
	}
	out, err := r.tr.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
