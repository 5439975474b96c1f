// Package statusbar renders the single-line footer: wall clock, audio
// backend, template source, and audio health.
package statusbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/proctorhq/proctor/internal/ui/styles"
)

// Model is the status bar state.
type Model struct {
	width        int
	backend      string
	templatePath string
	missingAudio int
}

// New returns a status bar describing the given audio backend and template
// source. An empty templatePath means the built-in set.
func New(backend, templatePath string) Model {
	return Model{backend: backend, templatePath: templatePath}
}

// SetWidth updates the bar width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetMissingAudio records how many scheduled announcements reference audio
// files that do not exist on disk.
func (m *Model) SetMissingAudio(count int) {
	m.missingAudio = count
}

// View renders the bar at the given instant.
func (m Model) View(now time.Time) string {
	segments := []string{
		styles.TitleStyle.Render(styles.FormatClock(now)),
		"audio: " + m.backend,
		"templates: " + m.describeTemplates(),
	}
	if m.missingAudio > 0 {
		segments = append(segments,
			styles.WarningStyle.Render(fmt.Sprintf("%d missing audio", m.missingAudio)))
	}

	line := strings.Join(segments, styles.MutedStyle.Render(" │ "))
	if w := lipgloss.Width(line); w < m.width {
		line += strings.Repeat(" ", m.width-w)
	}
	return styles.StatusBarStyle.MaxWidth(m.width).Render(line)
}

func (m Model) describeTemplates() string {
	if m.templatePath == "" {
		return "built-in"
	}
	return m.templatePath
}
