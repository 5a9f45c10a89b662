package timeline

// TaskSummary is one aggregated sub-task line on a task-group leader.
type TaskSummary struct {
	UUID        string
	AgentID     string
	Description string
	Status      string // terminal status from the matching task_result, "" while running
}

// TaskGroup collapses a batch of parallel background-agent launches into a
// single summary row. The leader is the first launch of the batch; the
// remaining launches are members and render as zero-height stand-ins.
type TaskGroup struct {
	Leader  string
	Members []string // launch order, leader excluded
	Tasks   []TaskSummary
}

// ProgressEntry is one aggregated progress line on a progress-group leader.
type ProgressEntry struct {
	UUID string
	Text string
}

// ProgressGroup collapses the streamed progress events of one agent into a
// single summary row keyed by the first event.
type ProgressGroup struct {
	Leader  string
	Members []string // event order, leader excluded
	AgentID string
	Entries []ProgressEntry
}

// Groups holds both group maps, keyed by leader UUID.
type Groups struct {
	Tasks    map[string]*TaskGroup
	Progress map[string]*ProgressGroup
}

// MemberLeader returns the leader UUID of the group (of either kind) that
// claims uuid as a member, or "" when uuid is not a member of any group.
func (g Groups) MemberLeader(uuid string) string {
	for leader, tg := range g.Tasks {
		for _, m := range tg.Members {
			if m == uuid {
				return leader
			}
		}
	}
	for leader, pg := range g.Progress {
		for _, m := range pg.Members {
			if m == uuid {
				return leader
			}
		}
	}
	return ""
}

// ComputeGroups scans the message collection and derives the task-group and
// progress-group maps. Pure and deterministic: identical input order yields
// identical groups. Sidechain messages are ignored and duplicates collapse
// last-write-wins before any grouping.
//
// The grouping policy is domain-specific (see groupTasks and groupProgress);
// the structural contract holds regardless of policy: every UUID appears in
// at most one member set across both maps, and a leader is never a member
// of any group.
func ComputeGroups(msgs []Message) Groups {
	deduped := Dedupe(dropSidechain(msgs))

	claimed := make(map[string]bool) // in some member set, or a leader
	tasks := groupTasks(deduped, claimed)
	progress := groupProgress(deduped, claimed)

	return Groups{Tasks: tasks, Progress: progress}
}

// groupTasks finds runs of two or more consecutive task_launch messages
// sharing a parent, the shape a parallel agent batch leaves in the log.
// The first launch of a run leads; the rest are absorbed as members.
// Terminal statuses come from task_result children of each launch.
func groupTasks(msgs []Message, claimed map[string]bool) map[string]*TaskGroup {
	out := make(map[string]*TaskGroup)

	// Status lookup: launch UUID -> terminal status of its result child.
	status := make(map[string]string)
	for _, m := range msgs {
		if m.Type == TypeTaskResult && m.ParentUUID != "" {
			status[m.ParentUUID] = m.Payload.Status
		}
	}

	flush := func(run []Message) {
		if len(run) < 2 {
			return
		}
		g := &TaskGroup{Leader: run[0].UUID}
		for i, m := range run {
			if i > 0 {
				g.Members = append(g.Members, m.UUID)
			}
			g.Tasks = append(g.Tasks, TaskSummary{
				UUID:        m.UUID,
				AgentID:     m.Payload.AgentID,
				Description: m.Payload.Description,
				Status:      status[m.UUID],
			})
			claimed[m.UUID] = true
		}
		out[g.Leader] = g
	}

	var run []Message
	for _, m := range msgs {
		if m.Type == TypeTaskLaunch && (len(run) == 0 || run[0].ParentUUID == m.ParentUUID) {
			run = append(run, m)
			continue
		}
		flush(run)
		run = run[:0]
		if m.Type == TypeTaskLaunch {
			run = append(run, m)
		}
	}
	flush(run)

	return out
}

// groupProgress groups streamed progress events by originating agent ID.
// The agent's first event leads and carries the ordered entry list; later
// events are members. Events already claimed by task grouping are skipped,
// which keeps membership mutually exclusive between the two maps.
func groupProgress(msgs []Message, claimed map[string]bool) map[string]*ProgressGroup {
	out := make(map[string]*ProgressGroup)
	byAgent := make(map[string]*ProgressGroup)

	for _, m := range msgs {
		if m.Type != TypeProgress || m.Payload.AgentID == "" || claimed[m.UUID] {
			continue
		}
		g, ok := byAgent[m.Payload.AgentID]
		if !ok {
			g = &ProgressGroup{Leader: m.UUID, AgentID: m.Payload.AgentID}
			byAgent[m.Payload.AgentID] = g
			out[g.Leader] = g
		} else {
			g.Members = append(g.Members, m.UUID)
		}
		g.Entries = append(g.Entries, ProgressEntry{UUID: m.UUID, Text: m.Payload.Text})
		claimed[m.UUID] = true
	}

	return out
}
