package main

import (
	"fmt"
	"time"

	"github.com/chatpane/chatpane/timeline"

	"github.com/google/uuid"
)

// demoConversation synthesizes a conversation log with the shapes the
// viewer exists for: chained turns, nested tool invocations, a parallel
// background-agent batch with streamed progress, sidechain noise, and a
// closing summary. cycles controls how many request/response rounds are
// generated.
func demoConversation(cycles int) []timeline.Message {
	if cycles < 1 {
		cycles = 1
	}

	var msgs []timeline.Message
	now := time.Now().Add(-time.Duration(cycles) * time.Minute)
	tick := func() time.Time {
		now = now.Add(3 * time.Second)
		return now
	}

	prev := ""
	add := func(m timeline.Message) string {
		msgs = append(msgs, m)
		return m.UUID
	}

	for c := 0; c < cycles; c++ {
		user := add(timeline.Message{
			UUID:       uuid.NewString(),
			ParentUUID: prev,
			Type:       timeline.TypeTurn,
			Payload: timeline.Payload{
				Role:      "user",
				Text:      fmt.Sprintf("Request %d: summarize the build failures and fix the flaky test.", c+1),
				Timestamp: tick(),
			},
		})

		agent := add(timeline.Message{
			UUID:       uuid.NewString(),
			ParentUUID: user,
			Type:       timeline.TypeTurn,
			Payload: timeline.Payload{
				Role:      "assistant",
				Text:      "Looking at the failing jobs now. I'll check the logs, then run the suite locally.\n\n- inspect CI output\n- reproduce locally\n- bisect the flake",
				Timestamp: tick(),
			},
		})

		// A tool round-trip nested under the assistant turn.
		tool := add(timeline.Message{
			UUID:       uuid.NewString(),
			ParentUUID: agent,
			Type:       timeline.TypeToolUse,
			Payload: timeline.Payload{
				ToolName:  "Bash",
				Text:      `{"command":"go test ./...","timeout":120}`,
				Timestamp: tick(),
			},
		})
		add(timeline.Message{
			UUID:       uuid.NewString(),
			ParentUUID: tool,
			Type:       timeline.TypeToolResult,
			Payload: timeline.Payload{
				ToolName:  "Bash",
				Text:      "ok  \tpkg/a\t0.31s\n--- FAIL: TestRetry (0.12s)\nFAIL\tpkg/b\t0.44s",
				Timestamp: tick(),
			},
		})

		// Every other cycle spawns a parallel agent batch with progress.
		if c%2 == 1 {
			batchParent := agent
			var launches []string
			for i := 0; i < 3; i++ {
				launches = append(launches, add(timeline.Message{
					UUID:       uuid.NewString(),
					ParentUUID: batchParent,
					Type:       timeline.TypeTaskLaunch,
					Payload: timeline.Payload{
						AgentID:     fmt.Sprintf("agent-%d-%d", c, i),
						Description: fmt.Sprintf("Investigate failure cluster %d", i+1),
						Timestamp:   tick(),
					},
				}))
			}
			for i, launch := range launches {
				agentID := fmt.Sprintf("agent-%d-%d", c, i)
				for p := 0; p < 4; p++ {
					add(timeline.Message{
						UUID:       uuid.NewString(),
						ParentUUID: launch,
						Type:       timeline.TypeProgress,
						Payload: timeline.Payload{
							AgentID:   agentID,
							Text:      fmt.Sprintf("step %d/4: scanning logs", p+1),
							Timestamp: tick(),
						},
					})
				}
				status := "completed"
				if i == 2 {
					status = "failed"
				}
				add(timeline.Message{
					UUID:       uuid.NewString(),
					ParentUUID: launch,
					Type:       timeline.TypeTaskResult,
					Payload: timeline.Payload{
						AgentID:   agentID,
						Status:    status,
						Text:      "investigation finished",
						Timestamp: tick(),
					},
				})
			}
		}

		// Sidechain noise that must never surface in the primary view.
		add(timeline.Message{
			UUID:        uuid.NewString(),
			ParentUUID:  agent,
			Type:        timeline.TypeTurn,
			IsSidechain: true,
			Payload: timeline.Payload{
				Role:      "assistant",
				Text:      "sidechain scratch work",
				Timestamp: tick(),
			},
		})

		prev = agent
	}

	add(timeline.Message{
		UUID:       uuid.NewString(),
		ParentUUID: prev,
		Type:       timeline.TypeSummary,
		Payload: timeline.Payload{
			Text:      "Session summary: flaky retry test pinned to a race in the backoff timer.",
			Timestamp: tick(),
		},
	})

	return msgs
}
