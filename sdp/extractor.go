// Package sdp reconstructs structured rows and the trailing recap record
// from "sous-détail de prix" pages, given only the page's positioned
// tokens. A page is processed in three regions: everything up to the
// formula reference line (headers), the priced table body, and the recap
// trailer opened by the body's closing total line.
package sdp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sgoncalves/quadrille/layout"
	"github.com/sgoncalves/quadrille/model"
)

// Anchors switching the page state machine out of the table body.
const (
	bodyCloseAnchor = "TOTAL PRIX SECS"
	recapOpenAnchor = "A : Travaux"
)

// columnKeys lists the priced-works columns in document order.
var columnKeys = []string{
	layout.ColDescription,
	layout.ColUnit,
	layout.ColQuantity,
	layout.ColDuration,
	layout.ColTotal,
	layout.ColLabourUnitCost,
	layout.ColMaterialsUnitPrice,
	layout.ColServicesUnitPrice,
	layout.ColOwnWorksAmount,
	layout.ColSubcontractedUnitPrice,
	layout.ColSubcontractedAmount,
	layout.ColGrandTotal,
}

// flatHeaders are the document's own column captions, used when exporting a
// page as a flat grid.
var flatHeaders = []string{
	"COMPOSANTES DU PRIX (avec décomposition par sous détails élémentaires)",
	"Unité",
	"Quantité (a)",
	"Durée d'utilisation (b)",
	"TOTAL (1=axb)",
	"Main d'oeuvre : coût à l'unité (2)",
	"Matériels et matières consommables : prix unitaire (3)",
	"Prestations : prix unitaire (4)",
	"MONTANT PART PROPRE (5=1x(2+3+4))",
	"PART SOUS TRAITES FOURNITURES : prix unitaire (6)",
	"PART SOUS TRAITES FOURNITURES : MONTANT (7=1x6)",
	"TOTAL GENERAL (8=5+7)",
	"Type ligne",
	"Niveau indentation",
}

// Config aggregates the configuration of every layout stage used by the
// extractor.
type Config struct {
	Line       layout.LineConfig
	Cluster    layout.ClusterConfig
	Calibrator layout.CalibratorConfig
	Assign     layout.AssignConfig
	Classify   layout.ClassifyConfig
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() Config {
	return Config{
		Line:       layout.DefaultLineConfig(),
		Cluster:    layout.DefaultClusterConfig(),
		Calibrator: layout.DefaultCalibratorConfig(),
		Assign:     layout.DefaultAssignConfig(),
		Classify:   layout.DefaultClassifyConfig(),
	}
}

// Page holds everything extracted from one page: the reconstructed body
// rows, the recap record (nil when no recap region was found), the raw
// assembled text lines, and the extent of the page's tokens.
type Page struct {
	PageIndex int
	Rows      []model.Row
	Recap     *model.RecapRecord
	RawLines  []string
	BBox      model.BBox
}

// Extractor turns a page's positioned tokens into structured rows and a
// recap record. Column bands are calibrated per page and passed through
// explicitly; the extractor itself holds no per-page state and is safe to
// reuse across pages.
type Extractor struct {
	config     Config
	grouper    *layout.LineGrouper
	clusterer  *layout.WordClusterer
	calibrator *layout.ColumnCalibrator
	assigner   *layout.CellAssigner
	classifier *layout.RowClassifier
	recap      *RecapParser
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultConfig())
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(config Config) *Extractor {
	return &Extractor{
		config:     config,
		grouper:    layout.NewLineGrouperWithConfig(config.Line),
		clusterer:  layout.NewWordClustererWithConfig(config.Cluster),
		calibrator: layout.NewColumnCalibratorWithConfig(config.Calibrator),
		assigner:   layout.NewCellAssignerWithConfig(config.Assign),
		classifier: layout.NewRowClassifierWithConfig(config.Classify),
		recap:      NewRecapParser(),
	}
}

// ExtractPage processes one page's tokens. It fails only on structurally
// invalid input (malformed tokens, an empty page); every other anomaly
// degrades gracefully into missing cells or unset recap fields.
func (e *Extractor) ExtractPage(pageIndex int, tokens []model.Token) (*Page, error) {
	lines, err := e.grouper.Group(tokens)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageIndex+1, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("page %d: no text lines", pageIndex+1)
	}

	// Bands are a per-page value: calibrated here, passed to assignment,
	// never cached across pages.
	bands := e.calibrator.Calibrate(lines)

	rawLines := make([]string, len(lines))
	for i, line := range lines {
		rawLines[i] = line.Text()
	}

	bodyStart := e.calibrator.FormulaLineIndex(lines) + 1

	rec := &model.RecapRecord{}
	var rows []model.Row
	inBody := true

	for _, line := range lines[bodyStart:] {
		text := line.Text()

		if strings.Contains(text, bodyCloseAnchor) {
			e.recap.ParseTotals(text, rec)
			inBody = false
			continue
		}
		if strings.Contains(text, recapOpenAnchor) {
			inBody = false
			continue
		}

		if !inBody {
			e.recap.ParseLine(text, rec)
			continue
		}

		if row, ok := e.buildRow(line, bands); ok {
			rows = append(rows, row)
		}
	}

	page := &Page{
		PageIndex: pageIndex,
		Rows:      rows,
		RawLines:  rawLines,
		BBox:      tokensBBox(tokens),
	}
	if !rec.IsEmpty() {
		page.Recap = rec
	}

	return page, nil
}

// ExtractPages processes an ordered list of token pages. A failing page is
// reported as a warning and skipped; the remaining pages are still
// processed.
func (e *Extractor) ExtractPages(pages [][]model.Token) ([]*Page, []model.Warning) {
	var results []*Page
	var warnings []model.Warning

	for i, tokens := range pages {
		page, err := e.ExtractPage(i, tokens)
		if err != nil {
			warnings = append(warnings, model.Warning{PageIndex: i, Message: err.Error()})
			continue
		}
		results = append(results, page)
	}

	return results, warnings
}

// buildRow classifies the line by indentation, clusters its tokens into
// value groups, and assigns them to the calibrated bands. Classification
// runs first, before assignment discards position information. Rows without
// a description are decoration and dropped.
func (e *Extractor) buildRow(line layout.Line, bands []layout.ColumnBand) (model.Row, bool) {
	rowType, indent := e.classifier.Classify(line)

	groups := e.clusterer.Cluster(line)
	if len(groups) == 0 {
		return model.Row{}, false
	}

	cells := e.assigner.Assign(groups, bands)
	if cells[layout.ColDescription] == "" {
		return model.Row{}, false
	}

	return model.Row{Cells: cells, Type: rowType, Indent: indent}, true
}

// FlatRows converts a page to a flat string grid: the document's own column
// captions followed by one row per reconstructed row, with the row type and
// indent tier appended as the two last columns.
func FlatRows(p *Page) [][]string {
	rows := make([][]string, 0, len(p.Rows)+1)
	rows = append(rows, flatHeaders)

	for _, r := range p.Rows {
		flat := make([]string, 0, len(columnKeys)+2)
		for _, key := range columnKeys {
			flat = append(flat, r.Get(key))
		}
		flat = append(flat, r.Type.String(), strconv.Itoa(r.Indent))
		rows = append(rows, flat)
	}

	return rows
}

// Table converts a page to a Table value carrying the flat grid, so the
// generic post-processing and export paths can consume it.
func (p *Page) Table() *model.Table {
	return model.NewTable(p.PageIndex, 0, p.BBox, FlatRows(p))
}

// tokensBBox returns the extent of the page's tokens.
func tokensBBox(tokens []model.Token) model.BBox {
	if len(tokens) == 0 {
		return model.BBox{}
	}

	left, right := tokens[0].Left, tokens[0].Right
	top, bottom := tokens[0].Top, tokens[0].Top
	for _, tok := range tokens[1:] {
		if tok.Left < left {
			left = tok.Left
		}
		if tok.Right > right {
			right = tok.Right
		}
		if tok.Top < top {
			top = tok.Top
		}
		if tok.Top > bottom {
			bottom = tok.Top
		}
	}

	return model.NewBBoxFromEdges(left, top, right, bottom)
}
