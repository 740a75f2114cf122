package model

import "fmt"

// Warning describes a non-fatal problem encountered while processing a
// page. Warnings are collected on the result; they never stop processing of
// other pages.
type Warning struct {
	PageIndex int    `json:"page_index"`
	Message   string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s", w.PageIndex+1, w.Message)
}

// ExtractionResult is the complete outcome of processing one document:
// every reconstructed table in discovery order, plus per-page warnings.
// RunID labels the run for export metadata; it never influences the
// extraction itself.
type ExtractionResult struct {
	RunID      string    `json:"run_id,omitempty"`
	Source     string    `json:"source,omitempty"`
	TotalPages int       `json:"total_pages"`
	Tables     []*Table  `json:"tables"`
	Warnings   []Warning `json:"warnings,omitempty"`
}

// TablesOnPage returns the tables discovered on the given page, in
// discovery order.
func (r *ExtractionResult) TablesOnPage(pageIndex int) []*Table {
	var out []*Table
	for _, t := range r.Tables {
		if t.PageIndex == pageIndex {
			out = append(out, t)
		}
	}
	return out
}
