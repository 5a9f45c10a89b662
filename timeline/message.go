// Package timeline turns a raw, possibly cyclic conversation log into a
// flat, annotated display list a virtualized viewer can page through.
//
// The pipeline is pure: ComputeGroups and Flatten are functions of their
// inputs, hold no state, and never mutate the messages they are given.
// Callers re-run them whenever the message collection, the hidden set, or
// the grouping output changes, and treat each result as a new generation.
package timeline

import "time"

// MessageType classifies a conversation record.
type MessageType int

const (
	TypeTurn       MessageType = iota // user or assistant conversation turn
	TypeToolUse                       // tool invocation by an assistant turn
	TypeToolResult                    // result of a tool invocation
	TypeTaskLaunch                    // background agent spawn
	TypeTaskResult                    // background agent completion
	TypeProgress                      // streamed progress event from an agent
	TypeSummary                       // compaction or session summary
)

// String returns the record-format label for a message type.
func (t MessageType) String() string {
	switch t {
	case TypeTurn:
		return "turn"
	case TypeToolUse:
		return "tool_use"
	case TypeToolResult:
		return "tool_result"
	case TypeTaskLaunch:
		return "task_launch"
	case TypeTaskResult:
		return "task_result"
	case TypeProgress:
		return "progress"
	case TypeSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Payload carries the display-facing fields of a record. The flattening
// core treats it as opaque; grouping reads AgentID, Description, and
// Status.
type Payload struct {
	Role        string    // "user", "assistant", or "" for non-turns
	Text        string    // turn text, tool output, progress line
	ToolName    string    // tool_use / tool_result
	AgentID     string    // originating agent for progress and task records
	Description string    // task description for task_launch
	Status      string    // terminal status for task_result
	Timestamp   time.Time // zero when the record carried none
}

// Message is one immutable conversation record. ParentUUID is empty for
// roots. Sidechain messages belong to a secondary context and never appear
// in the primary view.
type Message struct {
	UUID        string
	ParentUUID  string
	Type        MessageType
	IsSidechain bool
	Payload     Payload
}

// Dedupe collapses duplicate UUIDs with last-write-wins semantics: the
// surviving record keeps the position of its first occurrence in the input
// but carries the content of its last occurrence. Live logs re-emit a UUID
// when a record is amended, and the amended record is the one to show.
// Input order is otherwise preserved.
func Dedupe(msgs []Message) []Message {
	if len(msgs) == 0 {
		return nil
	}
	pos := make(map[string]int, len(msgs))
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.UUID == "" {
			continue
		}
		if i, ok := pos[m.UUID]; ok {
			out[i] = m
			continue
		}
		pos[m.UUID] = len(out)
		out = append(out, m)
	}
	return out
}

// dropSidechain filters out sidechain messages. They are excluded from the
// primary view entirely, before deduplication, grouping, or flattening.
func dropSidechain(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.IsSidechain {
			continue
		}
		out = append(out, m)
	}
	return out
}
