// Package formatter renders records as display-width aligned markdown tables.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatTable renders header and rows as a markdown table whose columns are
// padded to the widest cell, measured in terminal display width.
func FormatTable(header []string, rows [][]string) string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, cleanRow(header))

	for _, row := range rows {
		table = append(table, cleanRow(row))
	}

	return strings.Join(alignTable(table), "\n") + "\n"
}

// cleanRow flattens cell text so each record stays on one table line.
func cleanRow(row []string) []string {
	cells := make([]string, len(row))

	for i, cell := range row {
		cell = strings.Join(strings.Fields(cell), " ")
		cells[i] = strings.ReplaceAll(cell, "|", `\|`)
	}

	return cells
}

// alignTable expects table[0] to be the header and emits a separator after it.
func alignTable(table [][]string) []string {
	if len(table) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	// Calculate max widths (using display width)
	colWidths := make([]int, colCount)

	for _, row := range table {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Ensure min width for separator (usually 3 dashes "---")
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	separator := make([]string, colCount)
	for i, width := range colWidths {
		separator[i] = strings.Repeat("-", width)
	}

	result := make([]string, 0, len(table)+1)
	result = append(result, renderRow(table[0], colWidths))
	result = append(result, renderRow(separator, colWidths))

	for _, row := range table[1:] {
		result = append(result, renderRow(row, colWidths))
	}

	return result
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		// Pad with spaces based on display width
		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
