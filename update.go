package main

import (
	"sort"
	"strings"

	"github.com/chatpane/chatpane/timeline"
	"github.com/chatpane/chatpane/vscroll"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.vp.extent = m.listViewHeight()
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)

	case reloadMsg:
		m.records = msg.messages
		m.rebuild()
		m.clampScroll()
		m.statusMsg = "reloaded"
		m.statusErr = false
		return m, waitForReload(m.reloadSub)

	case reloadErrMsg:
		m.logger.Error("reload failed", "err", msg.err)
		m.statusMsg = "reload failed: " + msg.err.Error()
		m.statusErr = true
		return m, waitForReloadErr(m.reloadErr)
	}
	return m, nil
}

// updateList handles key events in the row list.
func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.statusErr = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.watcher != nil {
			m.watcher.stop()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.HalfDown):
		m.scrollBy(m.vp.extent / 2)

	case key.Matches(msg, m.keys.HalfUp):
		m.scrollBy(-m.vp.extent / 2)

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.vp.ScrollTo(0)

	case key.Matches(msg, m.keys.Bottom):
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
			m.engine.ScrollToIndex(m.cursor, vscroll.AlignEnd)
		}

	case key.Matches(msg, m.keys.Expand):
		if uuid := m.cursorUUID(); uuid != "" {
			m.expanded[uuid] = !m.expanded[uuid]
		}

	case key.Matches(msg, m.keys.Hide):
		if uuid := m.cursorUUID(); uuid != "" {
			m.hidden[uuid] = true
			m.rebuild()
			m.clampScroll()
		}

	case key.Matches(msg, m.keys.Restore):
		if it := m.cursorItem(); it != nil && it.Kind == timeline.ItemHiddenRun {
			for _, uuid := range it.HiddenUUIDs {
				delete(m.hidden, uuid)
			}
			m.rebuild()
			m.clampScroll()
		}

	case key.Matches(msg, m.keys.RestoreAll):
		if len(m.hidden) > 0 {
			m.hidden = make(map[string]bool)
			m.rebuild()
			m.clampScroll()
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchBuf = ""

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

// updateSearch handles key events while the jump-to-UUID prompt is open.
func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); s {
	case "esc", "escape", "ctrl+c":
		m.searching = false
		m.searchBuf = ""
	case "enter":
		m.searching = false
		m.jumpTo(strings.TrimSpace(m.searchBuf))
		m.searchBuf = ""
	case "backspace":
		if len(m.searchBuf) > 0 {
			m.searchBuf = m.searchBuf[:len(m.searchBuf)-1]
		}
	default:
		if len([]rune(s)) == 1 {
			m.searchBuf += s
		}
	}
	return m, nil
}

// jumpTo resolves a UUID (or unambiguous-enough UUID prefix) to its
// visible row and scrolls there. A member UUID lands on its group leader.
func (m *model) jumpTo(query string) {
	if query == "" {
		return
	}

	target := query
	if _, ok := m.index[target]; !ok && m.groups.MemberLeader(target) == "" {
		target = m.prefixMatch(query)
		if target == "" {
			m.statusMsg = "no message matching " + truncate(query, 16)
			return
		}
	}

	pos, ok := timeline.Resolve(target, m.items, m.index, m.groups)
	if !ok {
		m.statusMsg = "message " + shortUUID(target) + " is not visible"
		return
	}
	m.cursor = pos
	m.engine.ScrollToIndex(pos, vscroll.AlignCenter)
	m.statusMsg = "jumped to " + shortUUID(target)
}

// prefixMatch finds the first indexed UUID (in display order) with the
// given prefix, or "" when none matches.
func (m *model) prefixMatch(prefix string) string {
	best := -1
	var found string
	for uuid, pos := range m.index {
		if strings.HasPrefix(uuid, prefix) && (best == -1 || pos < best) {
			best = pos
			found = uuid
		}
	}
	if found != "" {
		return found
	}
	// Hidden members are absent from the index but still resolvable via
	// their leaders; scan the group maps as a fallback.
	var members []string
	for _, g := range m.groups.Tasks {
		members = append(members, g.Members...)
	}
	for _, g := range m.groups.Progress {
		members = append(members, g.Members...)
	}
	sort.Strings(members)
	for _, uuid := range members {
		if strings.HasPrefix(uuid, prefix) {
			return uuid
		}
	}
	return ""
}

// cursorItem returns the display item under the cursor, nil when empty.
func (m *model) cursorItem() *timeline.DisplayItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

// cursorUUID returns the UUID under the cursor, "" for placeholders.
func (m *model) cursorUUID() string {
	if it := m.cursorItem(); it != nil {
		return it.UUID()
	}
	return ""
}

// ensureCursorVisible scrolls just enough to bring the cursor row inside
// the viewport.
func (m *model) ensureCursorVisible() {
	if len(m.items) == 0 {
		return
	}
	top := m.engine.OffsetOf(m.cursor)
	bottom := top + m.engine.HeightOf(m.cursor)
	switch {
	case top < m.vp.offset:
		m.engine.ScrollToIndex(m.cursor, vscroll.AlignStart)
	case bottom > m.vp.offset+m.vp.extent:
		m.engine.ScrollToIndex(m.cursor, vscroll.AlignEnd)
	}
}

// scrollBy moves the viewport by delta lines, clamped to the content.
func (m *model) scrollBy(delta int) {
	m.vp.ScrollTo(m.clampedOffset(m.vp.offset + delta))
}

// clampScroll caps the scroll offset so it can't exceed the content.
func (m *model) clampScroll() {
	m.vp.ScrollTo(m.clampedOffset(m.vp.offset))
}

func (m *model) clampedOffset(off int) int {
	max := m.engine.TotalSize() - m.vp.extent
	if max < 0 {
		max = 0
	}
	if off > max {
		off = max
	}
	if off < 0 {
		off = 0
	}
	return off
}
