package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chatpane/chatpane/timeline"
)

// record is the on-disk shape of one conversation record: a JSON array of
// these is the serialized form of the in-memory collection the core
// consumes. This is ingestion of an already-extracted log, not parsing of
// any upstream wire format.
type record struct {
	UUID        string  `json:"uuid"`
	ParentUUID  *string `json:"parentUuid"`
	Type        string  `json:"type"`
	IsSidechain bool    `json:"isSidechain"`
	Payload     struct {
		Role        string `json:"role"`
		Text        string `json:"text"`
		ToolName    string `json:"toolName"`
		AgentID     string `json:"agentId"`
		Description string `json:"description"`
		Status      string `json:"status"`
		Timestamp   string `json:"timestamp"`
	} `json:"payload"`
}

// loadRecords reads a records file into messages. Records without a UUID
// are skipped; unknown type tags degrade to plain turns so an unfamiliar
// log still displays.
func loadRecords(path string) ([]timeline.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return decodeRecords(data)
}

// decodeRecords parses a JSON record array into messages.
func decodeRecords(data []byte) ([]timeline.Message, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	msgs := make([]timeline.Message, 0, len(recs))
	for _, r := range recs {
		if r.UUID == "" {
			continue
		}
		parent := ""
		if r.ParentUUID != nil {
			parent = *r.ParentUUID
		}
		msgs = append(msgs, timeline.Message{
			UUID:        r.UUID,
			ParentUUID:  parent,
			Type:        parseType(r.Type),
			IsSidechain: r.IsSidechain,
			Payload: timeline.Payload{
				Role:        r.Payload.Role,
				Text:        r.Payload.Text,
				ToolName:    r.Payload.ToolName,
				AgentID:     r.Payload.AgentID,
				Description: r.Payload.Description,
				Status:      r.Payload.Status,
				Timestamp:   parseTimestamp(r.Payload.Timestamp),
			},
		})
	}
	return msgs, nil
}

// parseType maps a record type tag to a MessageType. Unknown tags map to
// TypeTurn rather than dropping the record.
func parseType(s string) timeline.MessageType {
	switch s {
	case "turn", "":
		return timeline.TypeTurn
	case "tool_use":
		return timeline.TypeToolUse
	case "tool_result":
		return timeline.TypeToolResult
	case "task_launch":
		return timeline.TypeTaskLaunch
	case "task_result":
		return timeline.TypeTaskResult
	case "progress":
		return timeline.TypeProgress
	case "summary":
		return timeline.TypeSummary
	default:
		return timeline.TypeTurn
	}
}

// parseTimestamp parses an RFC3339 timestamp, returning the zero time for
// anything unparseable. Timestamps are display garnish, not structure.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
