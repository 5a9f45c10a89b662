package main

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// payloadHL syntax-highlights JSON payload text (tool inputs and results)
// for terminal display. Constructed once; chroma objects are safe for
// reuse.
type payloadHL struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// newPayloadHL builds a highlighter matched to the terminal's color
// profile and background.
func newPayloadHL(darkBg bool) *payloadHL {
	styleName := "github"
	if darkBg {
		styleName = "dracula"
	}
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	return &payloadHL{
		lexer:     chroma.Coalesce(lexers.Get("json")),
		formatter: formatters.Get(formatterFor(profile)),
		style:     styles.Get(styleName),
	}
}

// highlight detects JSON, normalizes indentation, and returns highlighted
// text. Returns ("", false) for non-JSON input so the caller falls back to
// plain rendering.
func (h *payloadHL) highlight(s string) (string, bool) {
	raw := []byte(s)
	if !json.Valid(raw) {
		return "", false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", false
	}

	it, err := h.lexer.Tokenise(nil, buf.String())
	if err != nil {
		return "", false
	}
	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, it); err != nil {
		return "", false
	}
	return out.String(), true
}

// formatterFor maps colorprofile profiles to chroma terminal formatter
// names.
func formatterFor(profile colorprofile.Profile) string {
	switch profile {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	default:
		return "terminal"
	}
}
