package main

import "github.com/charmbracelet/lipgloss"

// -- Colors ---------------------------------------------------------------
// All colors use AdaptiveColor for dark/light terminal support. Light
// values favor ANSI 0-15 for accents (palette-adaptive) and 256-color for
// grays; dark values are 256-color codes tuned for dark backgrounds.

var (
	// Text hierarchy
	ColorTextPrimary   = ac("0", "252")
	ColorTextSecondary = ac("8", "245")
	ColorTextDim       = ac("242", "243")
	ColorTextMuted     = ac("245", "240")

	// Accents
	ColorAccent = ac("4", "75")
	ColorError  = ac("1", "196")

	// Surfaces
	ColorBorder = ac("250", "60")

	// Row kinds
	ColorUser     = ac("2", "114") // green
	ColorAgent    = ac("4", "75")  // blue
	ColorTool     = ac("3", "208") // orange
	ColorProgress = ac("6", "80")  // cyan
	ColorTask     = ac("5", "177") // purple
	ColorSummary  = ac("3", "220") // yellow

	// Task statuses on group leader rows
	ColorStatusDone    = ac("2", "114")
	ColorStatusFailed  = ac("1", "196")
	ColorStatusRunning = ac("3", "208")
)

// -- Semantic text styles -------------------------------------------------
// Reusable styles for the text hierarchy. Safe to chain (.Width(),
// .Padding(), etc.) since lipgloss styles are immutable value types.

var (
	StylePrimaryBold = lipgloss.NewStyle().Bold(true).Foreground(ColorTextPrimary)
	StyleSecondary   = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	StyleDim         = lipgloss.NewStyle().Foreground(ColorTextDim)
	StyleMuted       = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleAccentBold  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StyleErrorBold   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
)

// ac is a shorthand constructor for lipgloss.AdaptiveColor.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}
