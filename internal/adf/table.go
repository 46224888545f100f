// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adf

import "strings"

// renderTable converts an ADF table node to a GitHub-Flavored Markdown pipe
// table.
//
// The first row is always treated as the header row, regardless of whether
// its cells are tableHeader or tableCell nodes: GFM requires exactly one
// header row and ADF does not reliably mark one. Rows are padded on the
// right to the widest row, and cell text is collapsed to a single line.
func renderTable(table Node) string {
	if len(table.Content) == 0 {
		return ""
	}

	var rows [][]string
	for _, row := range table.Content {
		var cells []string
		for _, cell := range row.Content {
			var text strings.Builder
			for _, child := range cell.Content {
				text.WriteString(render(child, 0, 0))
			}
			flat := strings.ReplaceAll(strings.TrimSpace(text.String()), "\n", " ")
			cells = append(cells, flat)
		}
		rows = append(rows, cells)
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < cols {
			row = append(row, "")
		}
		rows[i] = row
	}

	lines := []string{
		"| " + strings.Join(rows[0], " | ") + " |",
		"| " + strings.Join(repeat("---", cols), " | ") + " |",
	}
	for _, row := range rows[1:] {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}

	return strings.Join(lines, "\n") + "\n\n"
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
