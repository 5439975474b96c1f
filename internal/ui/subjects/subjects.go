// Package subjects renders the registered subject roster and hosts the
// add-subject form.
package subjects

import (
	"github.com/proctorhq/proctor/internal/exam/domain"
	"github.com/proctorhq/proctor/internal/ui/shared/table"
	"github.com/proctorhq/proctor/internal/ui/styles"
)

// Model is the roster panel state.
type Model struct {
	subjects []domain.Subject
	cursor   int
	offset   int
	width    int
	height   int
}

// New returns an empty roster panel.
func New() Model {
	return Model{}
}

// SetSize updates the panel dimensions (outer, including border).
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampScroll()
}

// SetSubjects replaces the roster contents.
func (m *Model) SetSubjects(subjects []domain.Subject) {
	m.subjects = subjects
	if m.cursor >= len(subjects) {
		m.cursor = max(len(subjects)-1, 0)
	}
	m.clampScroll()
}

// Selected returns the subject under the cursor, or nil when empty.
func (m *Model) Selected() *domain.Subject {
	if len(m.subjects) == 0 {
		return nil
	}
	return &m.subjects[m.cursor]
}

// CursorUp moves the selection up one row.
func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.clampScroll()
}

// CursorDown moves the selection down one row.
func (m *Model) CursorDown() {
	if m.cursor < len(m.subjects)-1 {
		m.cursor++
	}
	m.clampScroll()
}

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

var columns = []table.ColumnConfig{
	{Key: "name", Title: "Subject", MinWidth: 10},
	{Key: "date", Title: "Date", Width: 10, HideBelow: 52},
	{Key: "start", Title: "Start", Width: 5},
	{Key: "end", Title: "End", Width: 5},
	{Key: "duration", Title: "Length", Width: 6},
	{Key: "sessions", Title: "Sess.", Width: 5, HideBelow: 44},
}

// View renders the panel with its border.
func (m Model) View(focused bool) string {
	layout := table.NewLayout(columns, max(m.width-2, 1))

	lines := make([]string, 0, m.visibleRows()+1)
	lines = append(lines, styles.MutedStyle.Render(layout.Header()))

	end := min(m.offset+m.visibleRows(), len(m.subjects))
	for i := m.offset; i < end; i++ {
		s := m.subjects[i]
		sessions := "1"
		if s.DoubleSession {
			sessions = "2"
		}
		line := layout.Row([]string{
			s.Name,
			s.StartTime.Format("2006-01-02"),
			s.StartTime.Format("15:04"),
			s.EndTime().Format("15:04"),
			styles.FormatMinutes(s.DurationMinutes),
			sessions,
		})
		style := styles.UnplayedStyle
		if i == m.cursor && focused {
			style = styles.SelectedRowStyle
		}
		lines = append(lines, style.Render(line))
	}
	if len(m.subjects) == 0 {
		lines = append(lines, styles.MutedStyle.Render("  no subjects registered (press a to add)"))
	}

	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}

	return styles.RenderWithTitleBorder(content, "Roster", "", m.width, m.height, focused)
}
