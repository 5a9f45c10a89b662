package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/chatpane/chatpane/timeline"

	"github.com/dustin/go-humanize"
)

// formatTime renders a timestamp for a row header.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("3:04:05 PM")
}

// shortUUID abbreviates a standard UUID (8-4-4-4-12 hex with dashes) to its
// first group, enough to distinguish messages without burning line width.
// Non-UUID identifiers show up to 12 characters.
func shortUUID(id string) string {
	if len(id) == 36 && id[8] == '-' && id[13] == '-' && id[18] == '-' && id[23] == '-' {
		return id[:8]
	}
	return truncate(id, 12)
}

// truncate cuts s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// countFor renders "1,234 messages" style counts for the status bar.
func countFor(n int, noun string) string {
	s := humanize.Comma(int64(n)) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// statusIcon maps a task's terminal status to its icon and color style.
func statusIcon(status string) string {
	switch strings.ToLower(status) {
	case "completed", "success", "done":
		return lipglossRender(ColorStatusDone, IconDone)
	case "failed", "error":
		return lipglossRender(ColorStatusFailed, IconFailed)
	default:
		return lipglossRender(ColorStatusRunning, IconRunning)
	}
}

// roleLabel returns the header label for a turn message.
func roleLabel(m *timeline.Message) string {
	switch m.Payload.Role {
	case "user":
		return "You"
	case "assistant":
		return "Agent"
	default:
		if m.Payload.Role != "" {
			return m.Payload.Role
		}
		return m.Type.String()
	}
}

// indentFor returns the left margin for a display depth. Depth is capped so
// deeply chained logs don't push content off-screen.
func indentFor(depth int) string {
	const maxIndentDepth = 8
	if depth > maxIndentDepth {
		depth = maxIndentDepth
	}
	return strings.Repeat("  ", depth)
}

// spaceBetween lays out left and right strings with gap-fill spacing to
// span width.
func spaceBetween(left, right string, width int) string {
	gap := width - visibleWidth(left) - visibleWidth(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

// pluralHidden renders the hidden-run placeholder label.
func pluralHidden(n int) string {
	if n == 1 {
		return "1 hidden message"
	}
	return fmt.Sprintf("%d hidden messages", n)
}
