package main

import (
	"fmt"
	"strings"

	"github.com/chatpane/chatpane/timeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// -- Layout constants ---------------------------------------------------------

// maxContentWidth is the maximum width for content rendering.
const maxContentWidth = 120

// maxCollapsedLines is the maximum content lines shown when a row is
// collapsed.
const maxCollapsedLines = 6

// statusBarHeight is the number of lines the status area occupies: one
// info line plus the help / search-prompt line.
const statusBarHeight = 2

// -- Helpers ------------------------------------------------------------------

// lipglossRender renders s in the given foreground color.
func lipglossRender(c lipgloss.AdaptiveColor, s string) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// visibleWidth measures a string's printed width, ANSI-aware.
func visibleWidth(s string) int {
	return lipgloss.Width(s)
}

// selectionIndicator returns a left-margin marker for the cursor row.
func selectionIndicator(selected bool) string {
	if selected {
		return StyleAccentBold.Render(IconSelected) + " "
	}
	return "  "
}

// clipLines cuts a block of text to max lines, appending a dim hint with
// the number of lines clipped.
func clipLines(s string, max int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	hint := StyleDim.Render(fmt.Sprintf("… (%d more lines, tab expands)", len(lines)-max))
	return strings.Join(lines[:max], "\n") + "\n" + hint
}

// indentBlock adds a prefix to every line of a block of text.
func indentBlock(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// -- View ---------------------------------------------------------------------

func (m model) View() string {
	if m.width == 0 {
		return "loading…"
	}
	vh := m.listViewHeight()

	if len(m.items) == 0 {
		empty := StyleMuted.Render("no messages")
		return empty + strings.Repeat("\n", vh) + m.statusArea()
	}

	lo, hi := m.engine.VisibleRange()
	if hi < lo {
		return strings.Repeat("\n", vh) + m.statusArea()
	}

	// Materialize only the windowed rows, feeding real heights back to the
	// engine as they are laid out.
	rows := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		row := m.renderRow(i, i == m.cursor)
		m.engine.Measure(i, lipgloss.Height(row))
		rows = append(rows, row)
	}

	lines := strings.Split(strings.Join(rows, "\n"), "\n")

	// Cut the materialized block to the slice of it the viewport shows.
	skip := m.vp.offset - m.engine.OffsetOf(lo)
	if skip < 0 {
		skip = 0
	}
	if skip > len(lines) {
		skip = len(lines)
	}
	view := lines[skip:]
	if len(view) > vh {
		view = view[:vh]
	}

	var b strings.Builder
	b.WriteString(strings.Join(view, "\n"))
	for i := len(view); i < vh; i++ {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.statusArea())
	return b.String()
}

// renderRow renders one display item at its flattened position.
func (m model) renderRow(i int, selected bool) string {
	it := m.items[i]

	switch {
	case it.Kind == timeline.ItemHiddenRun:
		return m.renderHiddenRun(it, selected)
	case it.IsTaskMember || it.IsProgressMember:
		return m.renderMember(it, selected)
	case it.IsTaskLeader:
		return m.renderTaskLeader(it, selected)
	case it.IsProgressLeader:
		return m.renderProgressLeader(it, selected)
	default:
		return m.renderMessage(it, selected)
	}
}

// contentWidth returns the usable text width at a given indent.
func (m model) contentWidth(indent string) int {
	cw := m.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	cw -= len(indent) + 4
	if cw < 20 {
		cw = 20
	}
	return cw
}

// renderHiddenRun renders the placeholder summarizing consecutive hidden
// messages.
func (m model) renderHiddenRun(it timeline.DisplayItem, selected bool) string {
	sel := selectionIndicator(selected)
	ids := make([]string, 0, 3)
	for i, uuid := range it.HiddenUUIDs {
		if i == 3 {
			ids = append(ids, "…")
			break
		}
		ids = append(ids, shortUUID(uuid))
	}
	label := fmt.Sprintf("%s %s (%s) · u restores", IconHidden, pluralHidden(it.HiddenCount), strings.Join(ids, ", "))
	return sel + StyleMuted.Render(label)
}

// renderMember renders the zero-height stand-in for a message absorbed
// into a group. One dim glyph keeps the row addressable by cursor without
// visually displacing surrounding content.
func (m model) renderMember(it timeline.DisplayItem, selected bool) string {
	return selectionIndicator(selected) + indentFor(it.Depth) + StyleMuted.Render(IconMember)
}

// renderTaskLeader renders a parallel-agent batch as one summary row.
func (m model) renderTaskLeader(it timeline.DisplayItem, selected bool) string {
	sel := selectionIndicator(selected)
	indent := indentFor(it.Depth)
	g := it.TaskGroup

	header := sel + indent + lipglossRender(ColorTask, IconTaskBatch) + " " +
		StylePrimaryBold.Render(fmt.Sprintf("%d parallel agents", len(g.Tasks))) +
		"  " + StyleDim.Render(formatTime(it.Message.Payload.Timestamp))

	lines := []string{header}
	for _, t := range g.Tasks {
		desc := t.Description
		if desc == "" {
			desc = shortUUID(t.UUID)
		}
		line := indent + "  " + statusIcon(t.Status) + " " +
			StyleSecondary.Render(truncate(desc, m.contentWidth(indent))) +
			"  " + StyleMuted.Render(t.AgentID)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderProgressLeader renders an agent's progress stream as one summary
// row: the newest entries collapsed, the full stream when expanded.
func (m model) renderProgressLeader(it timeline.DisplayItem, selected bool) string {
	sel := selectionIndicator(selected)
	indent := indentFor(it.Depth)
	g := it.ProgressGroup

	header := sel + indent + lipglossRender(ColorProgress, IconProgress) + " " +
		StylePrimaryBold.Render(g.AgentID) +
		StyleDim.Render(fmt.Sprintf("  %s  %d updates", IconDot, len(g.Entries)))

	entries := g.Entries
	if !m.expanded[it.Message.UUID] && len(entries) > 3 {
		entries = entries[len(entries)-3:]
	}
	lines := []string{header}
	for _, e := range entries {
		lines = append(lines, indent+"  "+StyleDim.Render(truncate(e.Text, m.contentWidth(indent))))
	}
	return strings.Join(lines, "\n")
}

// renderMessage renders a plain (ungrouped) message row by type.
func (m model) renderMessage(it timeline.DisplayItem, selected bool) string {
	sel := selectionIndicator(selected)
	indent := indentFor(it.Depth)
	msg := it.Message
	cw := m.contentWidth(indent)
	expanded := m.expanded[msg.UUID]

	var icon, label string
	var color lipgloss.AdaptiveColor
	switch msg.Type {
	case timeline.TypeToolUse:
		icon, label, color = IconTool, msg.Payload.ToolName, ColorTool
	case timeline.TypeToolResult:
		icon, label, color = IconToolOut, msg.Payload.ToolName+" result", ColorTool
	case timeline.TypeTaskLaunch:
		icon, label, color = IconTaskBatch, "agent "+msg.Payload.AgentID, ColorTask
	case timeline.TypeTaskResult:
		icon, label, color = IconTaskBatch, "agent "+msg.Payload.AgentID+" "+msg.Payload.Status, ColorTask
	case timeline.TypeProgress:
		icon, label, color = IconProgress, msg.Payload.AgentID, ColorProgress
	case timeline.TypeSummary:
		icon, label, color = IconSummary, "Summary", ColorSummary
	default:
		if msg.Payload.Role == "user" {
			icon, color = IconUser, ColorUser
		} else {
			icon, color = IconAgent, ColorAgent
		}
		label = roleLabel(msg)
	}

	header := sel + indent + lipglossRender(color, icon) + " " + StylePrimaryBold.Render(label)
	if ts := formatTime(msg.Payload.Timestamp); ts != "" {
		header += StyleDim.Render("  " + IconDot + "  " + ts)
	}
	header += StyleMuted.Render("  " + shortUUID(msg.UUID))

	content := m.renderBody(msg, cw)
	if content == "" {
		return header
	}
	if !expanded {
		content = clipLines(content, maxCollapsedLines)
	}
	return header + "\n" + indentBlock(content, indent+"  ")
}

// renderBody renders a message's payload text: markdown for assistant
// turns, highlighted JSON for tool payloads, wrapped plain text otherwise.
func (m model) renderBody(msg *timeline.Message, width int) string {
	text := msg.Payload.Text
	if text == "" {
		return ""
	}

	switch msg.Type {
	case timeline.TypeToolUse, timeline.TypeToolResult:
		if hl, ok := m.hl.highlight(text); ok {
			return hl
		}
		return StyleSecondary.Render(wordwrap.String(text, width))
	case timeline.TypeSummary:
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(width).
			Render(text)
	default:
		if msg.Payload.Role == "assistant" {
			return m.md.render(text, width)
		}
		return wordwrap.String(text, width)
	}
}

// statusArea renders the two-line footer: counts on the left, window
// position on the right, then the help hint or the search prompt.
func (m model) statusArea() string {
	cw := m.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}

	left := StyleSecondary.Render(countFor(len(m.records), "record"))
	if n := len(m.hidden); n > 0 {
		left += StyleMuted.Render(fmt.Sprintf("  %s  %d hidden", IconDot, n))
	}
	if m.statusMsg != "" {
		style := StyleDim
		if m.statusErr {
			style = StyleErrorBold
		}
		left += style.Render("  " + IconDot + "  " + m.statusMsg)
	}

	right := StyleMuted.Render(fmt.Sprintf("gen %d", m.engine.Generation()))
	if lo, hi := m.engine.VisibleRange(); hi >= lo {
		right = StyleMuted.Render(fmt.Sprintf("rows %d–%d / %d  %s  gen %d",
			lo, hi, m.engine.Count(), IconDot, m.engine.Generation()))
	}

	info := spaceBetween(left, right, cw)

	var second string
	if m.searching {
		second = StyleAccentBold.Render("jump to uuid: ") + m.searchBuf + StyleDim.Render("▏")
	} else {
		second = m.help.View(m.keys)
	}
	return info + "\n" + second
}
