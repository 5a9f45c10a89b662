package timeline

// ItemKind discriminates the two display item variants.
type ItemKind int

const (
	ItemMessage   ItemKind = iota // one visible message reference
	ItemHiddenRun                 // placeholder for consecutive hidden messages
)

// DisplayItem is the unit the flattener emits and the windowing engine
// pages through. Message items carry a reference into the deduplicated
// message list plus group-membership annotations; hidden-run items stand
// in for one or more consecutive hidden messages.
type DisplayItem struct {
	Kind ItemKind

	// ItemMessage fields.
	Message     *Message
	Depth       int // zero-based tree depth; 0 in flat fallback order
	SourceIndex int // position in the deduplicated input ordering

	IsTaskLeader     bool
	IsTaskMember     bool
	IsProgressLeader bool
	IsProgressMember bool

	// Leader-only aggregated payload; nil otherwise.
	TaskGroup     *TaskGroup
	ProgressGroup *ProgressGroup

	// ItemHiddenRun fields.
	HiddenCount int
	HiddenUUIDs []string
}

// UUID returns the wrapped message's UUID, or "" for hidden-run items.
func (it DisplayItem) UUID() string {
	if it.Kind != ItemMessage || it.Message == nil {
		return ""
	}
	return it.Message.UUID
}

// ReachabilityThreshold is the share of deduplicated messages a root
// traversal must reach before the flattener considers the tree healthy.
// Below it, an AnomalyUnreachable diagnostic is reported. Unreachable
// messages are appended to the output either way; the threshold tunes the
// observability signal, not coverage.
const ReachabilityThreshold = 0.9

// ordered is one slot in the fully ordered message list, before hidden-run
// accumulation.
type ordered struct {
	idx    int // into the deduplicated slice
	depth  int
	hidden bool // hidden by self or by ancestor
}

// Flatten transforms the message collection into the ordered display list.
//
// Sidechain messages are filtered first and never appear in any output
// form. Duplicates collapse last-write-wins. When at least one root
// (empty ParentUUID) exists, messages are ordered by a cycle-guarded
// depth-first pre-order traversal; hiding a node structurally hides its
// entire subtree. Messages unreachable from any root are appended in
// original order as additional roots, so nothing is ever silently
// dropped; when more than the tolerated share is unreachable, an
// AnomalyUnreachable diagnostic reports the broken tree. With no roots at
// all the deduplicated input order is already flat.
//
// Consecutive hidden messages collapse into a single hidden-run item.
// Visible messages are annotated with leader/member flags from the group
// maps, and leaders carry their aggregated payload.
//
// Flatten never panics and never drops a non-sidechain message: malformed
// structure degrades to safe ordering plus a warning-level anomaly.
func Flatten(msgs []Message, groups Groups, hidden map[string]bool) ([]DisplayItem, []Anomaly) {
	deduped := Dedupe(dropSidechain(msgs))
	if len(deduped) == 0 {
		return nil, nil
	}

	var anomalies []Anomaly

	// Child-list index, preserving input order within each parent.
	children := make(map[string][]int, len(deduped))
	var roots []int
	for i, m := range deduped {
		if m.ParentUUID == "" {
			roots = append(roots, i)
			continue
		}
		children[m.ParentUUID] = append(children[m.ParentUUID], i)
	}

	var order []ordered
	if len(roots) == 0 {
		// Fully disconnected input: the deduplicated order is already flat.
		order = make([]ordered, len(deduped))
		for i := range deduped {
			order[i] = ordered{idx: i, hidden: hidden[deduped[i].UUID]}
		}
	} else {
		order = make([]ordered, 0, len(deduped))
		visited := make(map[string]bool, len(deduped))

		// Iterative pre-order DFS. Children push in reverse so they pop in
		// input order. Frame hidden state carries the ancestor cascade.
		type frame struct {
			idx    int
			depth  int
			hidden bool
		}
		var stack []frame
		for r := len(roots) - 1; r >= 0; r-- {
			stack = append(stack, frame{idx: roots[r]})
		}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			m := &deduped[f.idx]
			if visited[m.UUID] {
				anomalies = append(anomalies, Anomaly{Kind: AnomalyCycle, UUID: m.UUID})
				continue
			}
			visited[m.UUID] = true

			h := f.hidden || hidden[m.UUID]
			order = append(order, ordered{idx: f.idx, depth: f.depth, hidden: h})

			kids := children[m.UUID]
			for k := len(kids) - 1; k >= 0; k-- {
				stack = append(stack, frame{idx: kids[k], depth: f.depth + 1, hidden: h})
			}
		}

		// Correctness net: anything a broken tree left unvisited is appended
		// in original order as an additional root. Ancestor hiding cannot
		// cascade to appended messages, whose ancestry is what's broken.
		if len(order) < len(deduped) {
			if float64(len(order)) < ReachabilityThreshold*float64(len(deduped)) {
				anomalies = append(anomalies, Anomaly{
					Kind:  AnomalyUnreachable,
					Count: len(deduped) - len(order),
				})
			}
			for i, m := range deduped {
				if !visited[m.UUID] {
					order = append(order, ordered{idx: i, hidden: hidden[m.UUID]})
				}
			}
		}
	}

	return emit(deduped, order, groups), anomalies
}

// emit converts the fully ordered message list into display items,
// accumulating consecutive hidden messages and flushing them as a single
// hidden-run placeholder when a visible message (or end of input) is
// reached.
func emit(deduped []Message, order []ordered, groups Groups) []DisplayItem {
	taskMemberOf := make(map[string]bool)
	for _, g := range groups.Tasks {
		for _, m := range g.Members {
			taskMemberOf[m] = true
		}
	}
	progressMemberOf := make(map[string]bool)
	for _, g := range groups.Progress {
		for _, m := range g.Members {
			progressMemberOf[m] = true
		}
	}

	items := make([]DisplayItem, 0, len(order))
	var run []string

	flushRun := func() {
		if len(run) == 0 {
			return
		}
		items = append(items, DisplayItem{
			Kind:        ItemHiddenRun,
			HiddenCount: len(run),
			HiddenUUIDs: run,
		})
		run = nil
	}

	for _, o := range order {
		m := &deduped[o.idx]
		if o.hidden {
			run = append(run, m.UUID)
			continue
		}
		flushRun()

		it := DisplayItem{
			Kind:        ItemMessage,
			Message:     m,
			Depth:       o.depth,
			SourceIndex: o.idx,
		}
		if g, ok := groups.Tasks[m.UUID]; ok {
			it.IsTaskLeader = true
			it.TaskGroup = g
		}
		if g, ok := groups.Progress[m.UUID]; ok {
			it.IsProgressLeader = true
			it.ProgressGroup = g
		}
		it.IsTaskMember = taskMemberOf[m.UUID]
		it.IsProgressMember = progressMemberOf[m.UUID]
		items = append(items, it)
	}
	flushRun()

	return items
}
