// Package table lays out fixed and flexible columns for panel rows.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// ColumnConfig describes one column of a panel table.
type ColumnConfig struct {
	Key   string
	Title string

	// Width fixes the column width; 0 makes the column flex.
	Width int

	// MinWidth and MaxWidth constrain flex columns. Zero means unconstrained.
	MinWidth int
	MaxWidth int

	// HideBelow drops the column entirely when the table is narrower than
	// this many cells. Zero means always visible.
	HideBelow int
}

// Layout holds resolved column widths for a given total width.
type Layout struct {
	cols   []ColumnConfig
	widths []int
}

// NewLayout filters columns by visibility at totalWidth and distributes the
// available space across the survivors.
func NewLayout(cols []ColumnConfig, totalWidth int) Layout {
	visible := filterVisibleColumns(cols, totalWidth)
	return Layout{
		cols:   visible,
		widths: calculateColumnWidths(visible, totalWidth),
	}
}

// Columns returns the visible columns in render order.
func (l Layout) Columns() []ColumnConfig {
	return l.cols
}

// Header renders the title row.
func (l Layout) Header() string {
	titles := make([]string, len(l.cols))
	for i, col := range l.cols {
		titles[i] = col.Title
	}
	return l.Row(titles)
}

// Row renders one row of cells, truncating and padding each cell to its
// column width. Missing trailing cells render empty.
func (l Layout) Row(cells []string) string {
	parts := make([]string, len(l.widths))
	for i, w := range l.widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		cell = runewidth.Truncate(cell, w, "…")
		parts[i] = runewidth.FillRight(cell, w)
	}
	return strings.Join(parts, " ")
}
