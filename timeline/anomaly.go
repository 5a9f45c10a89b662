package timeline

import "fmt"

// AnomalyKind discriminates the structural anomalies Flatten can report.
type AnomalyKind int

const (
	// AnomalyCycle: a message's parent chain loops back on itself. The
	// repeated node is skipped on its second visit.
	AnomalyCycle AnomalyKind = iota
	// AnomalyUnreachable: more than the tolerated share of messages could
	// not be reached from any root and were appended in original order.
	AnomalyUnreachable
)

// Anomaly is a warning-level diagnostic from flattening. Anomalies never
// abort the flatten. The guarantee is that every message stays reachable,
// not that the tree is valid, but callers should surface them.
type Anomaly struct {
	Kind  AnomalyKind
	UUID  string // offending message for AnomalyCycle
	Count int    // unreachable message count for AnomalyUnreachable
}

func (a Anomaly) String() string {
	switch a.Kind {
	case AnomalyCycle:
		return fmt.Sprintf("parent cycle at %s, subtree skipped on revisit", a.UUID)
	case AnomalyUnreachable:
		return fmt.Sprintf("%d messages unreachable from any root, appended in original order", a.Count)
	default:
		return "unknown anomaly"
	}
}
