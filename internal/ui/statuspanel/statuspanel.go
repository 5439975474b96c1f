// Package statuspanel renders the playback summary: what is on air now,
// what comes next, and how the day's announcements break down by status.
package statuspanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/reflow/truncate"

	"github.com/proctorhq/proctor/internal/schedule"
	"github.com/proctorhq/proctor/internal/ui/styles"
)

// Counts tallies announcements by playback status.
type Counts struct {
	Unplayed int
	Playing  int
	Played   int
	Skipped  int
}

// Total returns the number of announcements on the timeline.
func (c Counts) Total() int {
	return c.Unplayed + c.Playing + c.Played + c.Skipped
}

// Model is the summary panel state.
type Model struct {
	width  int
	height int
	bar    progress.Model
}

// New returns a summary panel.
func New() Model {
	bar := progress.New(progress.WithSolidFill("#00B000"), progress.WithoutPercentage())
	return Model{bar: bar}
}

// SetSize updates the panel dimensions (outer, including border).
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = max(width-6, 10)
}

// View renders the panel.
func (m Model) View(s schedule.Summary, counts Counts) string {
	var b strings.Builder

	switch {
	case s.Playing:
		b.WriteString(m.headline(
			styles.PlayingStyle.Render("▶ "+s.Label),
			styles.MutedStyle.Render("  "+s.SubjectName)))
		b.WriteString("\n")
		if s.TotalSeconds > 0 {
			percent := float64(s.ElapsedSeconds) / float64(s.TotalSeconds)
			b.WriteString(m.bar.ViewAs(min(percent, 1.0)))
			b.WriteString("\n")
			b.WriteString(styles.MutedStyle.Render(
				fmt.Sprintf("%ds elapsed, %ds remaining", s.ElapsedSeconds, s.RemainingSeconds)))
		} else {
			b.WriteString(styles.MutedStyle.Render(
				fmt.Sprintf("%ds elapsed (length unknown)", s.ElapsedSeconds)))
		}

	case s.HasNext:
		b.WriteString(m.headline(
			styles.UnplayedStyle.Render("→ "+s.NextLabel),
			styles.MutedStyle.Render("  "+s.NextSubject)))
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render("plays " + styles.FormatCountdown(s.Until)))

	default:
		b.WriteString(styles.MutedStyle.Render("idle, nothing pending"))
	}

	b.WriteString("\n")
	b.WriteString(m.renderCounts(counts))

	return styles.RenderWithTitleBorder(b.String(), "Now Playing", "", m.width, m.height, false)
}

// headline fits the label and subject on one panel line. Truncation is
// ANSI-aware, so already-styled segments keep their colors.
func (m Model) headline(label, subject string) string {
	return truncate.StringWithTail(label+subject, uint(max(m.width-4, 8)), "…")
}

func (m Model) renderCounts(c Counts) string {
	if c.Total() == 0 {
		return styles.MutedStyle.Render("no announcements")
	}
	parts := []string{
		styles.UnplayedStyle.Render(fmt.Sprintf("%d pending", c.Unplayed)),
		styles.PlayedStyle.Render(fmt.Sprintf("%d played", c.Played)),
		styles.SkippedStyle.Render(fmt.Sprintf("%d skipped", c.Skipped)),
	}
	return strings.Join(parts, styles.MutedStyle.Render(" · "))
}
