package tables

import (
	"regexp"
	"strings"

	"github.com/sgoncalves/quadrille/model"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// pagePrefixRe matches a pagination fragment glued to the front of a
	// label by the lattice detector (e.g. "202/10/31 INDICE").
	pagePrefixRe = regexp.MustCompile(`^[0-9]{1,4}/[0-9]{2}/[0-9]{2}\s+`)
)

// cellReplacer normalizes glyph variants that scans produce for plain
// dashes and dots.
var cellReplacer = strings.NewReplacer(
	"\n", " ",
	"‐", "-",
	"·", ".",
	"…", "...",
)

// CleanCell normalizes one raw cell: newlines become spaces, dash and dot
// glyph variants are unified, glued pagination prefixes are stripped, and
// runs of whitespace collapse to single spaces.
func CleanCell(cell string) string {
	text := cellReplacer.Replace(cell)
	text = pagePrefixRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SegmentConfig holds configuration for splitting a raw grid into logical
// sub-tables.
type SegmentConfig struct {
	// HeaderMinNonEmpty is the minimum number of non-empty cells for a row
	// to qualify as a header starting a new sub-table.
	HeaderMinNonEmpty int

	// MinRowNonEmpty is the minimum number of non-empty cells a row must
	// keep to survive the final filter.
	MinRowNonEmpty int

	// MinColumnNonEmpty is the non-empty cell count a column must exceed
	// to be kept; columns empty across the whole sub-table are removed.
	MinColumnNonEmpty int
}

// DefaultSegmentConfig returns the default segmentation configuration.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		HeaderMinNonEmpty: 3,
		MinRowNonEmpty:    2,
		MinColumnNonEmpty: 0,
	}
}

// Segmenter splits a raw lattice-detected table block into logical
// sub-tables using header-density heuristics, then re-merges single-row
// fragments that are wrapped header captions.
type Segmenter struct {
	config SegmentConfig
}

// NewSegmenter creates a segmenter with default configuration.
func NewSegmenter() *Segmenter {
	return &Segmenter{config: DefaultSegmentConfig()}
}

// NewSegmenterWithConfig creates a segmenter with custom configuration.
func NewSegmenterWithConfig(config SegmentConfig) *Segmenter {
	return &Segmenter{config: config}
}

// Segment cleans the table's cells, splits it at header-dense rows, and
// filters sparse columns and rows from each resulting sub-table. A table
// with no qualifying header row comes back as a single segment. Sub-tables
// keep the source table's page index and bounding region; table indices
// number the segments from the source table's index.
func (s *Segmenter) Segment(t *model.Table) []*model.Table {
	if t == nil || len(t.Rows) == 0 {
		return nil
	}

	cleaned := s.cleanRows(t.Rows)
	segments := mergeAdjacent(s.splitByHeaders(cleaned))

	var out []*model.Table
	for _, rows := range segments {
		rows = s.collapseSparseColumns(rows)
		rows = s.dropLowContentRows(rows)
		if len(rows) == 0 {
			continue
		}
		seg := t.Rebuild(rows)
		seg.TableIndex = t.TableIndex + len(out)
		out = append(out, seg)
	}

	return out
}

// cleanRows normalizes every cell and drops rows left fully empty.
func (s *Segmenter) cleanRows(rows [][]string) [][]string {
	var cleaned [][]string
	for _, row := range rows {
		next := make([]string, len(row))
		any := false
		for i, cell := range row {
			next[i] = CleanCell(cell)
			if next[i] != "" {
				any = true
			}
		}
		if any {
			cleaned = append(cleaned, next)
		}
	}
	return cleaned
}

// splitByHeaders cuts the grid at every header row: a row whose non-empty
// cell count meets the header threshold and covers at least half the row's
// width starts a new sub-table.
func (s *Segmenter) splitByHeaders(rows [][]string) [][][]string {
	var segments [][][]string
	var current [][]string

	for _, row := range rows {
		n := nonEmptyCount(row)
		if n == 0 {
			continue
		}
		if n >= s.config.HeaderMinNonEmpty && n*2 >= len(row) {
			if len(current) > 0 {
				segments = append(segments, current)
			}
			current = [][]string{row}
			continue
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}

	return segments
}

// mergeAdjacent re-merges a single-row segment into the segment that
// follows it when their widths match: a lone row followed by a same-width
// block is a wrapped header caption, not a table of its own.
func mergeAdjacent(segments [][][]string) [][][]string {
	var merged [][][]string
	for _, seg := range segments {
		last := len(merged) - 1
		if last >= 0 && len(merged[last]) == 1 && len(seg) > 0 &&
			len(seg[0]) == len(merged[last][0]) {
			merged[last] = append(merged[last], seg...)
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// collapseSparseColumns drops columns whose non-empty count across the
// whole segment does not exceed the minimum.
func (s *Segmenter) collapseSparseColumns(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}

	cols := len(rows[0])
	var keep []int
	for ci := 0; ci < cols; ci++ {
		n := 0
		for _, row := range rows {
			if ci < len(row) && row[ci] != "" {
				n++
			}
		}
		if n > s.config.MinColumnNonEmpty {
			keep = append(keep, ci)
		}
	}
	if len(keep) == 0 || len(keep) == cols {
		return rows
	}

	out := make([][]string, len(rows))
	for ri, row := range rows {
		next := make([]string, 0, len(keep))
		for _, ci := range keep {
			if ci < len(row) {
				next = append(next, row[ci])
			} else {
				next = append(next, "")
			}
		}
		out[ri] = next
	}
	return out
}

// dropLowContentRows keeps only rows with enough non-empty cells.
func (s *Segmenter) dropLowContentRows(rows [][]string) [][]string {
	var out [][]string
	for _, row := range rows {
		if nonEmptyCount(row) >= s.config.MinRowNonEmpty {
			out = append(out, row)
		}
	}
	return out
}

func nonEmptyCount(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}
