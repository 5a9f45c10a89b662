package timeline

// Index maps message UUIDs to positions in one flattened display list.
// Hidden-run placeholders are not addressable by UUID and contribute no
// entries. An Index is only meaningful against the item slice it was
// built from; rebuild it whenever the list generation changes.
type Index map[string]int

// BuildIndex builds the UUID -> position map over a flattened list.
func BuildIndex(items []DisplayItem) Index {
	idx := make(Index, len(items))
	for i, it := range items {
		if it.Kind != ItemMessage {
			continue
		}
		idx[it.Message.UUID] = i
	}
	return idx
}

// Resolve maps a target UUID to the position of the nearest visible row.
//
// A direct hit on a non-member item wins. A hit on a group member
// re-resolves to the member's group leader, since members render as
// zero-height stand-ins underneath the leader's summary. A UUID absent
// from the index (a hidden group member, say) still resolves through its
// leader when the group maps know it. Stale grouping data (a leader that
// is not in the current list) falls back to the member's own direct
// position. Absence everywhere yields (-1, false). Never panics.
func Resolve(uuid string, items []DisplayItem, idx Index, groups Groups) (int, bool) {
	pos, direct := idx[uuid]
	if direct {
		it := items[pos]
		if !it.IsTaskMember && !it.IsProgressMember {
			return pos, true
		}
	}

	if leader := groups.MemberLeader(uuid); leader != "" {
		if lpos, ok := idx[leader]; ok {
			return lpos, true
		}
	}

	if direct {
		return pos, true
	}
	return -1, false
}
