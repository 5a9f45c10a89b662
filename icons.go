package main

// Icons used throughout the TUI.
// Standard Unicode symbols for maximum terminal compatibility.
const (
	IconUser      = "●" // user turn indicator
	IconAgent     = "◆" // assistant turn indicator
	IconTool      = "▸" // tool invocation
	IconToolOut   = "○" // tool result
	IconTaskBatch = "⧉" // parallel agent batch leader
	IconProgress  = "↻" // progress stream leader
	IconSummary   = "§" // summary / compaction record
	IconHidden    = "⋯" // hidden-run placeholder
	IconMember    = "·" // zero-height group member stand-in
	IconSelected  = "│" // selected row sidebar
	IconDot       = "·" // separator dot
	IconDone      = "✓" // completed task status
	IconFailed    = "✕" // failed task status
	IconRunning   = "…" // task without a terminal status
)
