package timeline_test

import (
	"strings"
	"testing"

	"github.com/chatpane/chatpane/timeline"
)

func TestEstimateHeight_FloorForPlaceholdersAndMembers(t *testing.T) {
	run := timeline.DisplayItem{
		Kind:        timeline.ItemHiddenRun,
		HiddenCount: 50,
		HiddenUUIDs: make([]string, 50),
	}
	if got := timeline.EstimateHeight(run); got != timeline.MinRowHeight {
		t.Errorf("hidden run estimate = %d, want MinRowHeight %d", got, timeline.MinRowHeight)
	}

	member := timeline.DisplayItem{
		Kind:         timeline.ItemMessage,
		Message:      &timeline.Message{UUID: "m", Type: timeline.TypeTaskLaunch},
		IsTaskMember: true,
	}
	if got := timeline.EstimateHeight(member); got != timeline.MinRowHeight {
		t.Errorf("member estimate = %d, want MinRowHeight %d", got, timeline.MinRowHeight)
	}
}

func TestEstimateHeight_LeaderScalesWithEntries(t *testing.T) {
	leaderOf := func(n int) timeline.DisplayItem {
		g := &timeline.TaskGroup{Leader: "l"}
		for i := 0; i < n; i++ {
			g.Tasks = append(g.Tasks, timeline.TaskSummary{})
		}
		return timeline.DisplayItem{
			Kind:         timeline.ItemMessage,
			Message:      &timeline.Message{UUID: "l", Type: timeline.TypeTaskLaunch},
			IsTaskLeader: true,
			TaskGroup:    g,
		}
	}
	small := timeline.EstimateHeight(leaderOf(2))
	large := timeline.EstimateHeight(leaderOf(8))
	if large <= small {
		t.Errorf("leader estimates: %d tasks -> %d, %d tasks -> %d; want estimate to grow", 2, small, 8, large)
	}
}

func TestEstimateHeight_AlwaysAtLeastMinimum(t *testing.T) {
	types := []timeline.MessageType{
		timeline.TypeTurn, timeline.TypeToolUse, timeline.TypeToolResult,
		timeline.TypeTaskLaunch, timeline.TypeTaskResult,
		timeline.TypeProgress, timeline.TypeSummary,
	}
	for _, typ := range types {
		it := timeline.DisplayItem{
			Kind:    timeline.ItemMessage,
			Message: &timeline.Message{UUID: "x", Type: typ},
		}
		if got := timeline.EstimateHeight(it); got < timeline.MinRowHeight {
			t.Errorf("estimate for %v = %d, want >= %d", typ, got, timeline.MinRowHeight)
		}
	}
}

func TestEstimateHeight_LongTextBonusIsCapped(t *testing.T) {
	long := timeline.DisplayItem{
		Kind: timeline.ItemMessage,
		Message: &timeline.Message{
			UUID:    "x",
			Type:    timeline.TypeTurn,
			Payload: timeline.Payload{Text: strings.Repeat("words ", 100_000)},
		},
	}
	short := timeline.DisplayItem{
		Kind:    timeline.ItemMessage,
		Message: &timeline.Message{UUID: "y", Type: timeline.TypeTurn},
	}
	gotLong := timeline.EstimateHeight(long)
	gotShort := timeline.EstimateHeight(short)
	if gotLong <= gotShort {
		t.Errorf("long text estimate %d not larger than short %d", gotLong, gotShort)
	}
	if gotLong > gotShort+50 {
		t.Errorf("long text estimate %d unbounded; estimates are seeds, not measurements", gotLong)
	}
}
