package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderWithTitleBorder_Dimensions(t *testing.T) {
	out := RenderWithTitleBorder("hello", "Timeline", "", 30, 6, false)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 6)
	for _, line := range lines {
		assert.Equal(t, 30, lipgloss.Width(line))
	}
}

func TestRenderWithTitleBorder_EmbedsTitles(t *testing.T) {
	out := RenderWithTitleBorder("x", "Announcements", "14:02:09", 50, 5, true)
	top := strings.Split(out, "\n")[0]
	assert.Contains(t, top, "Announcements")
	assert.Contains(t, top, "14:02:09")
}

func TestRenderWithTitleBorder_NoTitles(t *testing.T) {
	out := RenderWithTitleBorder("x", "", "", 10, 4, false)
	top := strings.Split(out, "\n")[0]
	assert.NotContains(t, top, " ")
}

func TestRenderWithTitleBorder_NarrowDropsRightTitle(t *testing.T) {
	out := RenderWithTitleBorder("x", "Roster", "long right title here", 16, 4, false)
	top := strings.Split(out, "\n")[0]
	assert.Contains(t, top, "Roster")
	assert.NotContains(t, top, "long right title here")
}

func TestRenderWithTitleBorder_PadsShortContent(t *testing.T) {
	out := RenderWithTitleBorder("a", "", "", 12, 8, false)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 8)
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exact", 5, "exact"},
		{"truncated", "a longer string", 10, "a longe..."},
		{"tiny", "abcdef", 2, ".."},
		{"zero", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.input, tt.maxWidth))
		})
	}
}
