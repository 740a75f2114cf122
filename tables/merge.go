package tables

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sgoncalves/quadrille/model"
	"github.com/sgoncalves/quadrille/textutil"
)

// dataCellRes match cell contents that only appear in data rows, never in
// header captions: numbers, dates, and staffing counts.
var dataCellRes = []*regexp.Regexp{
	regexp.MustCompile(`^[\d\s.,]+$`),
	regexp.MustCompile(`^\d{1,2}/\d{1,2}(/\d{2,4})?$`),
	regexp.MustCompile(`^\d+\s*x\s+`),
}

// MergeConfig holds configuration for fusing tables across page boundaries.
type MergeConfig struct {
	// CartoucheMinChars and CartoucheMinBreaks identify a title-block cell:
	// a long multi-line fragment the lattice detector swallows into the
	// first row of a continuation page.
	CartoucheMinChars  int
	CartoucheMinBreaks int

	// DataCellRatio is the fraction of first-row cells that must look like
	// data for the row to be treated as a continuation rather than a header.
	DataCellRatio float64

	// HeaderKeywordMin is the number of keyword hits a first row needs to
	// count as a real header; below it the table is a continuation.
	HeaderKeywordMin int

	// HeaderKeywords are caption words expected in a genuine header row,
	// compared accent-folded.
	HeaderKeywords []string
}

// DefaultMergeConfig returns the default merge configuration.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		CartoucheMinChars:  100,
		CartoucheMinBreaks: 3,
		DataCellRatio:      0.5,
		HeaderKeywordMin:   2,
		HeaderKeywords: []string{
			"lundi", "mardi", "mercredi", "jeudi", "vendredi",
			"samedi", "dimanche",
			"janvier", "fevrier", "mars", "avril", "mai", "juin",
			"juillet", "aout", "septembre", "octobre", "novembre",
			"decembre",
			"semaine", "date", "personnel", "effectif", "taches",
			"materiel", "observations", "total",
		},
	}
}

// Merger fuses a table that continues onto the next page with the table it
// continues. Only directly consecutive pages are fused, and only once: a
// table never absorbs more than one follower.
type Merger struct {
	config MergeConfig
}

// NewMerger creates a merger with default configuration.
func NewMerger() *Merger {
	return &Merger{config: DefaultMergeConfig()}
}

// NewMergerWithConfig creates a merger with custom configuration.
func NewMergerWithConfig(config MergeConfig) *Merger {
	return &Merger{config: config}
}

// Merge returns the tables with page-boundary continuations fused into
// their predecessors. Tables are ordered by (page, table index) first; the
// scan runs backward so a fused follower is consumed before its predecessor
// is considered as a follower itself, and a table that has just absorbed a
// follower is skipped as a candidate.
func (m *Merger) Merge(in []*model.Table) []*model.Table {
	tables := make([]*model.Table, len(in))
	copy(tables, in)
	sort.SliceStable(tables, func(i, j int) bool {
		if tables[i].PageIndex != tables[j].PageIndex {
			return tables[i].PageIndex < tables[j].PageIndex
		}
		return tables[i].TableIndex < tables[j].TableIndex
	})

	consumed := make([]bool, len(tables))
	for i := len(tables) - 1; i > 0; i-- {
		cand, prev := tables[i], tables[i-1]
		if !m.isContinuation(cand) {
			continue
		}
		if cand.PageIndex != prev.PageIndex+1 || cand.ColCount() != prev.ColCount() {
			continue
		}
		tables[i-1] = m.mergeTwo(prev, cand)
		consumed[i] = true
		// The predecessor has taken its one follower; skip it as a
		// continuation candidate so tables never chain across three pages.
		i--
	}

	var out []*model.Table
	for i, t := range tables {
		if !consumed[i] {
			out = append(out, t)
		}
	}
	return out
}

// isContinuation decides whether the table's first row is table content
// rather than a header: a cartouche fragment, a blank leading cell, too few
// header keywords, or a majority of data-looking cells all mark a
// continuation.
func (m *Merger) isContinuation(t *model.Table) bool {
	if t == nil || len(t.Rows) == 0 {
		return false
	}
	first := t.Rows[0]
	if len(first) == 0 {
		return false
	}

	if m.isCartoucheRow(first) {
		return true
	}
	if strings.TrimSpace(first[0]) == "" {
		return true
	}
	if m.keywordHits(first) < m.config.HeaderKeywordMin {
		return true
	}

	data := 0
	for _, cell := range first {
		if looksLikeData(cell) {
			data++
		}
	}
	return float64(data) >= m.config.DataCellRatio*float64(len(first))
}

// isCartoucheRow reports whether any cell of the row is a swallowed title
// block: long text with several line breaks.
func (m *Merger) isCartoucheRow(row []string) bool {
	for _, cell := range row {
		if len(cell) > m.config.CartoucheMinChars &&
			strings.Count(cell, "\n") >= m.config.CartoucheMinBreaks {
			return true
		}
	}
	return false
}

// keywordHits counts the distinct header keywords appearing anywhere in the
// row, so captions that land together in one cell still count separately.
func (m *Merger) keywordHits(row []string) int {
	folded := textutil.Fold(strings.Join(row, " "))
	hits := 0
	for _, kw := range m.config.HeaderKeywords {
		if strings.Contains(folded, kw) {
			hits++
		}
	}
	return hits
}

func looksLikeData(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	for _, re := range dataCellRes {
		if re.MatchString(cell) {
			return true
		}
	}
	return false
}

// mergeTwo appends the continuation's rows to the predecessor, skipping
// cartouche rows and rows reduced to blanks and zeros. The merged region
// spans both tables horizontally, from the top of the first to the bottom
// of the second; page and table indices come from the first.
func (m *Merger) mergeTwo(prev, cand *model.Table) *model.Table {
	rows := make([][]string, 0, len(prev.Rows)+len(cand.Rows))
	rows = append(rows, prev.Rows...)

	for _, row := range cand.Rows {
		if m.isCartoucheRow(row) || isBlankOrZero(row) {
			continue
		}
		rows = append(rows, row)
	}

	left := prev.BBox.Left()
	if cand.BBox.Left() < left {
		left = cand.BBox.Left()
	}
	right := prev.BBox.Right()
	if cand.BBox.Right() > right {
		right = cand.BBox.Right()
	}
	bbox := model.NewBBoxFromEdges(left, prev.BBox.Top(), right, cand.BBox.Bottom())

	merged := model.NewTable(prev.PageIndex, prev.TableIndex, bbox, rows)
	return merged
}

// isBlankOrZero reports whether every cell is empty or a bare "0".
func isBlankOrZero(row []string) bool {
	for _, cell := range row {
		c := strings.TrimSpace(cell)
		if c != "" && c != "0" {
			return false
		}
	}
	return true
}
