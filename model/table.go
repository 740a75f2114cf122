package model

import "strings"

// Table is an ordered grid of string rows discovered on a page, together
// with its paging metadata and bounding region. Post-processing steps never
// mutate a Table's rows in place; they build a new Table via Rebuild.
type Table struct {
	PageIndex  int        `json:"page_index"`
	TableIndex int        `json:"table_index"`
	BBox       BBox       `json:"bbox"`
	Rows       [][]string `json:"rows"`
}

// NewTable creates a table with the given paging metadata and rows.
func NewTable(pageIndex, tableIndex int, bbox BBox, rows [][]string) *Table {
	return &Table{
		PageIndex:  pageIndex,
		TableIndex: tableIndex,
		BBox:       bbox,
		Rows:       rows,
	}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Rebuild returns a new table carrying the same paging metadata and
// bounding region but the given rows.
func (t *Table) Rebuild(rows [][]string) *Table {
	return &Table{
		PageIndex:  t.PageIndex,
		TableIndex: t.TableIndex,
		BBox:       t.BBox,
		Rows:       rows,
	}
}

// Cell returns the cell at the given position, or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ToMarkdown converts the table to markdown format, treating the first row
// as the header.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	writeRow := func(row []string) {
		for _, text := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(text, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(t.Rows[0])
	for range t.Rows[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}

	return sb.String()
}
