package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/chatpane/chatpane/timeline"
)

// pressKey constructs a tea.KeyMsg from a string like "j", "tab", "enter".
// Single-character strings map to KeyRunes; named keys get their KeyType.
// Named to avoid shadowing the bubbles/key import this package uses.
func pressKey(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// asModel extracts the model from an Update return value. Panics when the
// type assertion fails, which is a test bug, not a production bug.
func asModel(t tea.Model) model {
	return t.(model)
}

// isQuit returns true when cmd is the Quit command.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// testMessages builds a small deterministic conversation: a user turn, an
// assistant reply, a tool round-trip under it, and a closing summary.
func testMessages() []timeline.Message {
	return []timeline.Message{
		{UUID: "msg-user", Type: timeline.TypeTurn, Payload: timeline.Payload{Role: "user", Text: "run the tests"}},
		{UUID: "msg-agent", ParentUUID: "msg-user", Type: timeline.TypeTurn, Payload: timeline.Payload{Role: "assistant", Text: "Running them now."}},
		{UUID: "msg-tool", ParentUUID: "msg-agent", Type: timeline.TypeToolUse, Payload: timeline.Payload{ToolName: "Bash", Text: `{"command":"go test ./..."}`}},
		{UUID: "msg-result", ParentUUID: "msg-tool", Type: timeline.TypeToolResult, Payload: timeline.Payload{ToolName: "Bash", Text: "ok"}},
		{UUID: "msg-summary", ParentUUID: "msg-agent", Type: timeline.TypeSummary, Payload: timeline.Payload{Text: "All green."}},
	}
}

// discardLogger returns a logger that swallows everything.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// testModel returns a sized model over testMessages with a silent logger.
func testModel() model {
	m := initialModel(testMessages(), discardLogger())
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return asModel(sized)
}
