package tables

import (
	"regexp"
	"strings"

	"github.com/sgoncalves/quadrille/model"
	"github.com/sgoncalves/quadrille/textutil"
)

// personnelRe matches a staffing cell of the form "2 x Grutier".
var personnelRe = regexp.MustCompile(`\d+\s*x\s+`)

// CleanConfig holds configuration for the post-processing chain.
type CleanConfig struct {
	// EmptyRowThreshold is the empty-cell ratio at or above which a row is
	// dropped. The default of 0.95 keeps any row with at least one
	// non-empty cell, so holiday rows carrying just a date survive.
	EmptyRowThreshold float64

	// FooterMarkers are substrings identifying footer rows, compared
	// case-insensitively with diacritics folded.
	FooterMarkers []string
}

// DefaultCleanConfig returns the default cleaning configuration.
func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		EmptyRowThreshold: 0.95,
		FooterMarkers: []string{
			"événements marquants",
			"visa",
			"date :",
		},
	}
}

// Cleaner applies the post-processing chain to a table. The order is fixed
// and significant: repeated headers are blanked before footer rows are
// removed, and near-empty rows are filtered last so blanked rows keep their
// first cell.
type Cleaner struct {
	config CleanConfig
}

// NewCleaner creates a cleaner with default configuration.
func NewCleaner() *Cleaner {
	return &Cleaner{config: DefaultCleanConfig()}
}

// NewCleanerWithConfig creates a cleaner with custom configuration.
func NewCleanerWithConfig(config CleanConfig) *Cleaner {
	return &Cleaner{config: config}
}

// Clean runs the full chain and returns a new table; the input is never
// mutated.
func (c *Cleaner) Clean(t *model.Table) *model.Table {
	out := c.BlankRepeatedHeaders(t)
	out = c.RemoveFooterRows(out)
	return c.RemoveNearEmptyRows(out)
}

// BlankRepeatedHeaders reclassifies rows that repeat the header captions
// instead of carrying data, typically holiday rows where the source
// repeats the column headers. A row matching the header's width is blanked
// (first cell kept, trailing total forced to "0") when its last cell is not
// numeric and no cell matches the staffing pattern.
func (c *Cleaner) BlankRepeatedHeaders(t *model.Table) *model.Table {
	if t == nil || len(t.Rows) < 2 {
		return t
	}

	headers := t.Rows[0]
	rows := [][]string{headers}

	for _, row := range t.Rows[1:] {
		if len(row) != len(headers) || !isRepeatedHeader(row) {
			rows = append(rows, row)
			continue
		}

		blanked := make([]string, len(headers))
		if len(row) > 0 {
			blanked[0] = row[0]
		}
		blanked[len(blanked)-1] = "0"
		rows = append(rows, blanked)
	}

	return t.Rebuild(rows)
}

// isRepeatedHeader applies the two indicators: a non-numeric (or blank)
// last cell, and no staffing pattern in the middle cells. The thresholds
// are tuned to one document family; recalibrate before trusting them on a
// new layout. Single-cell rows have no caption body to repeat and are
// left alone.
func isRepeatedHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}

	last := strings.TrimSpace(row[len(row)-1])
	lastInvalid := last == "" || last == "Colonne2" || !isDigits(strings.ReplaceAll(last, ".", ""))
	if !lastInvalid {
		return false
	}

	for _, cell := range row[1 : len(row)-1] {
		if cell != "" && personnelRe.MatchString(cell) {
			return false
		}
	}

	return true
}

// RemoveFooterRows drops rows containing any footer marker.
func (c *Cleaner) RemoveFooterRows(t *model.Table) *model.Table {
	if t == nil || len(t.Rows) == 0 {
		return t
	}

	var rows [][]string
	for _, row := range t.Rows {
		if !c.isFooterRow(row) {
			rows = append(rows, row)
		}
	}

	return t.Rebuild(rows)
}

func (c *Cleaner) isFooterRow(row []string) bool {
	for _, cell := range row {
		if cell == "" {
			continue
		}
		for _, marker := range c.config.FooterMarkers {
			if textutil.ContainsFold(cell, marker) {
				return true
			}
		}
	}
	return false
}

// RemoveNearEmptyRows drops rows whose empty-cell ratio meets or exceeds
// the threshold.
func (c *Cleaner) RemoveNearEmptyRows(t *model.Table) *model.Table {
	if t == nil || len(t.Rows) == 0 {
		return t
	}

	var rows [][]string
	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		empty := len(row) - nonEmptyCount(row)
		if float64(empty)/float64(len(row)) < c.config.EmptyRowThreshold {
			rows = append(rows, row)
		}
	}

	return t.Rebuild(rows)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
