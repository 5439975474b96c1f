// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Text colors
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#E4E4E7"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#4A4A68", Dark: "#A1A1AA"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#9090A0", Dark: "#6B6B76"}
)

// Border colors
var (
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#C0C0CC", Dark: "#3F3F46"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
)

// Playback status colors. Playing is the brightest state on screen; played
// announcements stay readable but recede; skipped ones are clearly inert.
var (
	PlayingColor  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00B000"}
	PlayedColor   = lipgloss.AdaptiveColor{Light: "#228B22", Dark: "#2E8B57"}
	SkippedColor  = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#71717A"}
	UnplayedColor = TextPrimaryColor
)

// Alert colors
var (
	WarningColor = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"}
)

// Reusable styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextPrimaryColor).
			Bold(true)

	PlayingStyle  = lipgloss.NewStyle().Foreground(PlayingColor).Bold(true)
	PlayedStyle   = lipgloss.NewStyle().Foreground(PlayedColor)
	SkippedStyle  = lipgloss.NewStyle().Foreground(SkippedColor)
	UnplayedStyle = lipgloss.NewStyle().Foreground(UnplayedColor)

	MutedStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#27272A"}).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)
)
