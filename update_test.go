package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatpane/chatpane/timeline"
)

func TestUpdateList_CursorMovement(t *testing.T) {
	t.Run("j advances the cursor", func(t *testing.T) {
		m := testModel()
		result, cmd := m.updateList(pressKey("j"))
		got := asModel(result)
		if got.cursor != 1 {
			t.Errorf("cursor = %d, want 1", got.cursor)
		}
		if cmd != nil {
			t.Errorf("j emitted a command: %T", cmd)
		}
	})

	t.Run("j clamps at the last row", func(t *testing.T) {
		m := testModel()
		m.cursor = len(m.items) - 1
		got := asModel(mustUpdate(m.updateList(pressKey("j"))))
		if got.cursor != len(m.items)-1 {
			t.Errorf("cursor = %d, want %d", got.cursor, len(m.items)-1)
		}
	})

	t.Run("k clamps at zero", func(t *testing.T) {
		m := testModel()
		got := asModel(mustUpdate(m.updateList(pressKey("k"))))
		if got.cursor != 0 {
			t.Errorf("cursor = %d, want 0", got.cursor)
		}
	})

	t.Run("g and G hit the ends", func(t *testing.T) {
		m := testModel()
		m.cursor = 2
		got := asModel(mustUpdate(m.updateList(pressKey("G"))))
		if got.cursor != len(got.items)-1 {
			t.Errorf("G: cursor = %d, want %d", got.cursor, len(got.items)-1)
		}
		got = asModel(mustUpdate(got.updateList(pressKey("g"))))
		if got.cursor != 0 || got.vp.offset != 0 {
			t.Errorf("g: cursor = %d offset = %d, want 0 0", got.cursor, got.vp.offset)
		}
	})
}

func TestUpdateList_Quit(t *testing.T) {
	m := testModel()
	_, cmd := m.updateList(pressKey("q"))
	if !isQuit(cmd) {
		t.Errorf("q did not quit")
	}
}

func TestUpdateList_HideAndRestore(t *testing.T) {
	m := testModel()
	before := len(m.items)

	// Hiding the tool call cascades to its result: two messages collapse
	// into one placeholder run.
	m.cursor = 2
	if uuid := m.cursorUUID(); uuid != "msg-tool" {
		t.Fatalf("cursor uuid = %q, want msg-tool", uuid)
	}
	m = asModel(mustUpdate(m.updateList(pressKey("h"))))
	if len(m.items) != before-1 {
		t.Fatalf("len(items) = %d, want %d", len(m.items), before-1)
	}
	run := m.items[2]
	if run.Kind != timeline.ItemHiddenRun || run.HiddenCount != 2 {
		t.Fatalf("items[2] = %+v, want a hidden run of 2", run)
	}
	if m.engine.Count() != len(m.items) {
		t.Errorf("engine count = %d, want %d", m.engine.Count(), len(m.items))
	}

	// u on the placeholder restores exactly that run.
	m.cursor = 2
	m = asModel(mustUpdate(m.updateList(pressKey("u"))))
	if len(m.items) != before {
		t.Errorf("after restore len(items) = %d, want %d", len(m.items), before)
	}
	if len(m.hidden) != 0 {
		t.Errorf("hidden set not emptied: %v", m.hidden)
	}
}

func TestUpdateList_RestoreAll(t *testing.T) {
	m := testModel()
	before := len(m.items)

	m.cursor = 0
	m = asModel(mustUpdate(m.updateList(pressKey("h")))) // hides everything reachable from the root
	if len(m.items) >= before {
		t.Fatalf("hide at root did not shrink the list: %d", len(m.items))
	}

	m = asModel(mustUpdate(m.updateList(pressKey("H"))))
	if len(m.items) != before {
		t.Errorf("after H len(items) = %d, want %d", len(m.items), before)
	}
}

func TestUpdateList_ExpandToggles(t *testing.T) {
	m := testModel()
	m.cursor = 1
	uuid := m.cursorUUID()

	m = asModel(mustUpdate(m.updateList(pressKey("tab"))))
	if !m.expanded[uuid] {
		t.Fatalf("tab did not expand %s", uuid)
	}
	m = asModel(mustUpdate(m.updateList(pressKey("tab"))))
	if m.expanded[uuid] {
		t.Errorf("second tab did not collapse %s", uuid)
	}
}

func TestUpdateSearch_JumpByPrefix(t *testing.T) {
	m := testModel()

	m = asModel(mustUpdate(m.updateList(pressKey("/"))))
	if !m.searching {
		t.Fatalf("/ did not open the prompt")
	}

	for _, r := range "msg-sum" {
		m = asModel(mustUpdate(m.Update(pressKey(string(r)))))
	}
	m = asModel(mustUpdate(m.Update(pressKey("enter"))))

	if m.searching {
		t.Fatalf("enter did not close the prompt")
	}
	want, ok := timeline.Resolve("msg-summary", m.items, m.index, m.groups)
	if !ok {
		t.Fatalf("msg-summary not resolvable")
	}
	if m.cursor != want {
		t.Errorf("cursor = %d, want %d", m.cursor, want)
	}
}

func TestUpdateSearch_EscCancels(t *testing.T) {
	m := testModel()
	m.searching = true
	m.searchBuf = "abc"
	m = asModel(mustUpdate(m.Update(pressKey("esc"))))
	if m.searching || m.searchBuf != "" {
		t.Errorf("esc left prompt state: searching=%v buf=%q", m.searching, m.searchBuf)
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := testModel()
	got := asModel(mustUpdate(m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})))
	if got.width != 80 || got.height != 24 {
		t.Errorf("size = %dx%d, want 80x24", got.width, got.height)
	}
	if got.vp.extent != 24-statusBarHeight {
		t.Errorf("vp.extent = %d, want %d", got.vp.extent, 24-statusBarHeight)
	}
}

func TestUpdate_ReloadErrorFlagsStatus(t *testing.T) {
	m := testModel()
	m.reloadErr = make(chan error, 1)

	got := asModel(mustUpdate(m.Update(reloadErrMsg{err: errors.New("short read")})))
	if !got.statusErr {
		t.Errorf("statusErr = false after a reload failure")
	}
	if !strings.Contains(got.statusMsg, "reload failed") {
		t.Errorf("statusMsg = %q, want a reload failure notice", got.statusMsg)
	}

	// Any list key clears the failure state.
	got = asModel(mustUpdate(got.updateList(pressKey("j"))))
	if got.statusErr || got.statusMsg != "" {
		t.Errorf("failure state survived a keypress: err=%v msg=%q", got.statusErr, got.statusMsg)
	}
}

func TestUpdate_ReloadReplacesRecords(t *testing.T) {
	m := testModel()
	m.reloadSub = make(chan reloadMsg, 1)

	fresh := testMessages()[:2]
	got := asModel(mustUpdate(m.Update(reloadMsg{messages: fresh})))
	if len(got.records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(got.records))
	}
	if got.engine.Count() != len(got.items) {
		t.Errorf("engine count = %d, want %d", got.engine.Count(), len(got.items))
	}
}

// mustUpdate discards the command half of an Update return.
func mustUpdate(m tea.Model, _ tea.Cmd) tea.Model { return m }
