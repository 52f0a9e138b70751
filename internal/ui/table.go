package ui

import "strings"

// FormatTable renders headers and rows as an aligned, two-space-separated
// table. Cell widths are computed over all rows.
func FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			builder.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
		}
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return builder.String()
}
