// Package quadrille reconstructs structured tables from scanned French
// construction pricing documents ("sous-détail de prix"), given the
// positioned word tokens an OCR engine produces for each page.
//
// Basic usage:
//
//	pages, err := tokenjson.Open("tokens.json")
//	if err != nil {
//	    // handle error
//	}
//	result := quadrille.New().ExtractTokenPages("tokens.json", pages)
//	if len(result.Warnings) > 0 {
//	    log.Println("Warnings:", result.Warnings)
//	}
//
// With a configuration file:
//
//	cfg, err := config.Load("quadrille.yaml")
//	if err != nil {
//	    // handle error
//	}
//	result := quadrille.NewWithConfig(cfg).ExtractTokenPages("tokens.json", pages)
//
// For advanced use cases, the lower-level layout, sdp, and tables packages
// are also available.
package quadrille

import (
	"github.com/google/uuid"

	"github.com/sgoncalves/quadrille/config"
	"github.com/sgoncalves/quadrille/model"
	"github.com/sgoncalves/quadrille/sdp"
	"github.com/sgoncalves/quadrille/tables"
)

// Pipeline bundles the page extractor and the grid post-processing stages
// behind one entry point. A Pipeline holds no per-document state and is
// safe to reuse across documents.
type Pipeline struct {
	extractor *sdp.Extractor
	segmenter *tables.Segmenter
	cleaner   *tables.Cleaner
	merger    *tables.Merger
}

// New creates a pipeline with default configuration.
func New() *Pipeline {
	return NewWithConfig(config.Default())
}

// NewWithConfig creates a pipeline from a loaded configuration.
func NewWithConfig(cfg config.Config) *Pipeline {
	return &Pipeline{
		extractor: sdp.NewExtractorWithConfig(cfg.ExtractorConfig()),
		segmenter: tables.NewSegmenterWithConfig(cfg.SegmentConfig()),
		cleaner:   tables.NewCleanerWithConfig(cfg.CleanConfig()),
		merger:    tables.NewMergerWithConfig(cfg.MergeConfig()),
	}
}

// ExtractTokenPages runs the full pricing-document pipeline over an ordered
// list of token pages: per-page reconstruction, then grid post-processing
// over the flattened pages. Failing pages become warnings on the result;
// the remaining pages are still processed. The result carries a fresh run
// identifier and the given source name.
func (p *Pipeline) ExtractTokenPages(source string, pages [][]model.Token) *model.ExtractionResult {
	extracted, warnings := p.extractor.ExtractPages(pages)

	var grids []*model.Table
	for _, page := range extracted {
		grids = append(grids, page.Table())
	}

	return &model.ExtractionResult{
		RunID:      uuid.NewString(),
		Source:     source,
		TotalPages: len(pages),
		Tables:     p.ProcessGrids(grids),
		Warnings:   warnings,
	}
}

// ExtractPages runs only the per-page reconstruction, returning the typed
// pages (rows, recap records, raw lines) instead of flat grids.
func (p *Pipeline) ExtractPages(pages [][]model.Token) ([]*sdp.Page, []model.Warning) {
	return p.extractor.ExtractPages(pages)
}

// ProcessGrids runs the grid post-processing chain over raw string-grid
// tables: each table is segmented into logical sub-tables, each sub-table
// cleaned, and page-boundary continuations fused last, once cleaning has
// normalized the rows the continuation check inspects.
func (p *Pipeline) ProcessGrids(grids []*model.Table) []*model.Table {
	var cleaned []*model.Table
	for _, grid := range grids {
		for _, seg := range p.segmenter.Segment(grid) {
			cleaned = append(cleaned, p.cleaner.Clean(seg))
		}
	}
	return p.merger.Merge(cleaned)
}
