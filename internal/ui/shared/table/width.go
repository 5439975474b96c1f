package table

// minColumnWidth keeps every column wide enough to show at least "…".
const minColumnWidth = 2

// calculateColumnWidths distributes totalWidth across columns in two passes:
// fixed columns (Width > 0) take their width first, then the remainder is
// split evenly among flex columns subject to MinWidth/MaxWidth. One cell of
// separator space is reserved between adjacent columns.
func calculateColumnWidths(cols []ColumnConfig, totalWidth int) []int {
	if len(cols) == 0 {
		return []int{}
	}

	widths := make([]int, len(cols))
	flexCols := []int{}

	separatorSpace := len(cols) - 1
	availableWidth := totalWidth - separatorSpace

	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			availableWidth -= col.Width
		} else {
			flexCols = append(flexCols, i)
		}
	}

	if len(flexCols) > 0 {
		if availableWidth <= 0 {
			for _, i := range flexCols {
				widths[i] = minColumnWidth
			}
		} else {
			perCol := availableWidth / len(flexCols)
			remainder := availableWidth % len(flexCols)

			for j, i := range flexCols {
				w := perCol
				if j < remainder {
					w++
				}

				minW := max(cols[i].MinWidth, minColumnWidth)
				if w < minW {
					w = minW
				}
				if cols[i].MaxWidth > 0 && w > cols[i].MaxWidth {
					w = cols[i].MaxWidth
				}

				widths[i] = w
			}
		}
	}

	for i := range widths {
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}

	return widths
}

// filterVisibleColumns drops columns whose HideBelow threshold exceeds the
// current table width.
func filterVisibleColumns(cols []ColumnConfig, totalWidth int) []ColumnConfig {
	visible := make([]ColumnConfig, 0, len(cols))
	for _, col := range cols {
		if col.HideBelow > 0 && totalWidth < col.HideBelow {
			continue
		}
		visible = append(visible, col)
	}
	return visible
}
