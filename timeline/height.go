package timeline

// Height estimation seeds the windowing engine's offset table before any
// row has been laid out. Units are terminal rows; the contract only
// requires a positive value that the engine later corrects with real
// measurements.

// MinRowHeight is the floor for every estimate. Group members and
// hidden-run placeholders still occupy a slot in the index space, so they
// estimate at the floor rather than zero: a zero height would degenerate
// the engine's offset math.
const MinRowHeight = 1

const (
	heightTurn       = 4 // header line + a couple of content lines + spacer
	heightToolUse    = 3
	heightToolResult = 2
	heightSummary    = 3
	heightProgress   = 2

	// Leaders render variable-length summaries: a header plus one line per
	// aggregated sub-task or progress entry.
	leaderBase   = 2
	perEntryLine = 1

	// Cap on the extra lines long text contributes to an estimate. Real
	// heights come from measurement; the estimate just needs to be in the
	// neighborhood.
	maxTextBonus  = 12
	textBonusStep = 96 // ~one wrapped line of content per 96 bytes
)

// EstimateHeight returns a best-guess row height for an item that has
// never been laid out. Always >= MinRowHeight.
func EstimateHeight(it DisplayItem) int {
	if it.Kind == ItemHiddenRun {
		return MinRowHeight
	}
	if it.IsTaskMember || it.IsProgressMember {
		// Members are absorbed into their leader's summary row.
		return MinRowHeight
	}

	if it.IsTaskLeader && it.TaskGroup != nil {
		return clampHeight(leaderBase + perEntryLine*len(it.TaskGroup.Tasks))
	}
	if it.IsProgressLeader && it.ProgressGroup != nil {
		return clampHeight(leaderBase + perEntryLine*len(it.ProgressGroup.Entries))
	}

	h := heightTurn
	if it.Message != nil {
		switch it.Message.Type {
		case TypeToolUse:
			h = heightToolUse
		case TypeToolResult:
			h = heightToolResult
		case TypeSummary:
			h = heightSummary
		case TypeProgress:
			h = heightProgress
		}
		bonus := len(it.Message.Payload.Text) / textBonusStep
		if bonus > maxTextBonus {
			bonus = maxTextBonus
		}
		h += bonus
	}
	return clampHeight(h)
}

func clampHeight(h int) int {
	if h < MinRowHeight {
		return MinRowHeight
	}
	return h
}
