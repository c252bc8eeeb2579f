package printer

import (
	"fmt"
	"strings"
)

// MarkdownTable builds a GitHub-flavored Markdown table.
type MarkdownTable struct {
	headers []string
	rows    [][]string
}

// NewMarkdownTable creates a table with the given column headers.
func NewMarkdownTable(headers ...string) *MarkdownTable {
	return &MarkdownTable{
		headers: headers,
		rows:    make([][]string, 0),
	}
}

// AddRow adds a data row to the table
func (t *MarkdownTable) AddRow(values ...any) {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = escapeCell(fmt.Sprintf("%v", v))
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *MarkdownTable) Len() int {
	return len(t.rows)
}

// Lines renders the header, the separator and every row, one per line.
func (t *MarkdownTable) Lines() []string {
	if len(t.headers) == 0 {
		return nil
	}
	lines := make([]string, 0, len(t.rows)+2)
	lines = append(lines, "| "+strings.Join(t.headers, " | ")+" |")

	seps := make([]string, len(t.headers))
	for i, h := range t.headers {
		seps[i] = strings.Repeat("-", len(h)+2)
	}
	lines = append(lines, "|"+strings.Join(seps, "|")+"|")

	for _, row := range t.rows {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}
	return lines
}

// String renders the table.
func (t *MarkdownTable) String() string {
	return strings.Join(t.Lines(), "\n")
}

// escapeCell keeps a cell on one line and stops a stray pipe from splitting it.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
