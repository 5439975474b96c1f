// Package timeline renders the merged announcement schedule as a scrolling
// panel. Rows are colored by playback status and the view can follow the
// next pending announcement as time advances.
package timeline

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/proctorhq/proctor/internal/exam/domain"
	"github.com/proctorhq/proctor/internal/ui/shared/table"
	"github.com/proctorhq/proctor/internal/ui/styles"
)

// Row is one announcement in the rendered schedule.
type Row struct {
	PlayAt       time.Time
	Offset       time.Duration
	SubjectName  string
	Label        string
	Audio        string
	AudioMissing bool
	Status       domain.PlaybackStatus
	Current      bool
	Next         bool
}

// Model is the timeline panel state.
type Model struct {
	rows   []Row
	cursor int
	offset int
	width  int
	height int

	// follow keeps the next pending announcement scrolled into view until
	// the operator moves the cursor manually.
	follow bool
}

// New returns an empty timeline panel with follow enabled.
func New() Model {
	return Model{follow: true}
}

// SetSize updates the panel dimensions (outer, including border).
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampScroll()
}

// SetRows replaces the rendered schedule. The cursor stays on the same
// position where possible; in follow mode it snaps to the playing row, or
// the next pending one.
func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = max(len(rows)-1, 0)
	}
	if m.follow {
		if next := nextIndex(rows); next >= 0 {
			m.cursor = next
		}
	}
	m.clampScroll()
}

// Rows returns the current rows.
func (m *Model) Rows() []Row {
	return m.rows
}

// Cursor returns the selected row index, or -1 when the timeline is empty.
func (m *Model) Cursor() int {
	if len(m.rows) == 0 {
		return -1
	}
	return m.cursor
}

// Following reports whether the panel is tracking the next announcement.
func (m *Model) Following() bool {
	return m.follow
}

// ToggleFollow flips follow mode. Turning it on snaps back to the next
// pending announcement.
func (m *Model) ToggleFollow() {
	m.follow = !m.follow
	if m.follow {
		if next := nextIndex(m.rows); next >= 0 {
			m.cursor = next
			m.clampScroll()
		}
	}
}

// CursorUp moves the selection up one row and disables follow.
func (m *Model) CursorUp() {
	m.follow = false
	if m.cursor > 0 {
		m.cursor--
	}
	m.clampScroll()
}

// CursorDown moves the selection down one row and disables follow.
func (m *Model) CursorDown() {
	m.follow = false
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
	m.clampScroll()
}

// visibleRows is the number of content lines inside the border, minus the
// header line.
func (m *Model) visibleRows() int {
	return max(m.height-3, 1)
}

func (m *Model) clampScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// nextIndex picks the row follow mode tracks: the playing announcement,
// else the pending one, else the first still-unplayed row.
func nextIndex(rows []Row) int {
	for i, r := range rows {
		if r.Current {
			return i
		}
	}
	for i, r := range rows {
		if r.Next {
			return i
		}
	}
	for i, r := range rows {
		if r.Status == domain.StatusUnplayed {
			return i
		}
	}
	return -1
}

var columns = []table.ColumnConfig{
	{Key: "marker", Title: "", Width: 2},
	{Key: "time", Title: "Time", Width: 8},
	{Key: "offset", Title: "Offset", Width: 8},
	{Key: "subject", Title: "Subject", MinWidth: 10, MaxWidth: 26},
	{Key: "label", Title: "Announcement", MinWidth: 14},
	{Key: "audio", Title: "Audio", MaxWidth: 22, HideBelow: 96},
	{Key: "status", Title: "Status", Width: 9},
}

// View renders the panel with its border. rightTitle is embedded in the top
// border, typically the wall clock.
func (m Model) View(focused bool, rightTitle string) string {
	layout := table.NewLayout(columns, max(m.width-2, 1))

	lines := make([]string, 0, m.visibleRows()+1)
	lines = append(lines, styles.MutedStyle.Render(layout.Header()))

	end := min(m.offset+m.visibleRows(), len(m.rows))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(layout, i, focused))
	}
	if len(m.rows) == 0 {
		lines = append(lines, styles.MutedStyle.Render("  no announcements scheduled"))
	}

	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}

	title := "Announcements"
	if !m.follow {
		title = "Announcements (follow off)"
	}
	return styles.RenderWithTitleBorder(content, title, rightTitle, m.width, m.height, focused)
}

func (m Model) renderRow(layout table.Layout, i int, focused bool) string {
	row := m.rows[i]

	marker := " "
	if row.Next {
		marker = "→"
	}
	if row.Current {
		marker = "▶"
	}

	audio := row.Audio
	if row.AudioMissing && audio != "" {
		audio = "! " + audio
	}

	line := layout.Row([]string{
		marker,
		row.PlayAt.Format("15:04:05"),
		styles.FormatOffset(row.Offset),
		row.SubjectName,
		row.Label,
		audio,
		string(row.Status),
	})

	style := statusStyle(row.Status)
	if i == m.cursor && focused {
		style = styles.SelectedRowStyle.Foreground(style.GetForeground())
	}
	return style.Render(line)
}

func statusStyle(status domain.PlaybackStatus) lipgloss.Style {
	switch status {
	case domain.StatusPlaying:
		return styles.PlayingStyle
	case domain.StatusPlayed:
		return styles.PlayedStyle
	case domain.StatusSkipped:
		return styles.SkippedStyle
	default:
		return styles.UnplayedStyle
	}
}
