package model

// RowType classifies a reconstructed row by its role in the document.
type RowType int

const (
	RowDetail RowType = iota
	RowSubtotal
	RowTotal
	RowFormula
	RowTrailer
)

// String returns a string representation of the row type.
func (rt RowType) String() string {
	switch rt {
	case RowDetail:
		return "detail"
	case RowSubtotal:
		return "subtotal"
	case RowTotal:
		return "total"
	case RowFormula:
		return "formula"
	case RowTrailer:
		return "trailer"
	default:
		return "unknown"
	}
}

// Row is a reconstructed table row: cell values keyed by internal column
// key, plus the row classification derived from its indentation. Rows are
// immutable once built; cleaners replace rows wholesale rather than
// mutating them.
type Row struct {
	Cells  map[string]string `json:"cells"`
	Type   RowType           `json:"row_type"`
	Indent int               `json:"indent_level"`
}

// Get returns the value assigned to the given column key, or "" when the
// column received no value.
func (r Row) Get(key string) string {
	return r.Cells[key]
}
