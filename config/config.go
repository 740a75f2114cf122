// Package config loads pipeline tuning from a YAML file. Every knob has a
// default matching the packages' own defaults, so a partial file overrides
// only what it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sgoncalves/quadrille/layout"
	"github.com/sgoncalves/quadrille/ocr"
	"github.com/sgoncalves/quadrille/sdp"
	"github.com/sgoncalves/quadrille/tables"
)

// Config is the on-disk configuration.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Tables TablesConfig `yaml:"tables"`
	OCR    OCRConfig    `yaml:"ocr"`
}

// LayoutConfig tunes the geometric reconstruction stages.
type LayoutConfig struct {
	LineBucket     float64 `yaml:"line_bucket"`
	ClusterGap     float64 `yaml:"cluster_gap"`
	CurrencyGap    float64 `yaml:"currency_gap"`
	CellMargin     float64 `yaml:"cell_margin"`
	DetailIndent   float64 `yaml:"detail_indent"`
	SubtotalIndent float64 `yaml:"subtotal_indent"`
}

// TablesConfig tunes grid post-processing.
type TablesConfig struct {
	HeaderMinNonEmpty int     `yaml:"header_min_non_empty"`
	MinRowNonEmpty    int     `yaml:"min_row_non_empty"`
	EmptyRowThreshold float64 `yaml:"empty_row_threshold"`
	CartoucheMinChars int     `yaml:"cartouche_min_chars"`
}

// OCRConfig tunes the recognition stage.
type OCRConfig struct {
	Language string `yaml:"language"`
}

// Default returns the configuration matching the packages' own defaults.
func Default() Config {
	line := layout.DefaultLineConfig()
	cluster := layout.DefaultClusterConfig()
	assign := layout.DefaultAssignConfig()
	classify := layout.DefaultClassifyConfig()
	segment := tables.DefaultSegmentConfig()
	clean := tables.DefaultCleanConfig()
	merge := tables.DefaultMergeConfig()

	return Config{
		Layout: LayoutConfig{
			LineBucket:     line.BucketSize,
			ClusterGap:     cluster.GapThreshold,
			CurrencyGap:    cluster.CurrencyGap,
			CellMargin:     assign.Margin,
			DetailIndent:   classify.DetailIndent,
			SubtotalIndent: classify.SubtotalIndent,
		},
		Tables: TablesConfig{
			HeaderMinNonEmpty: segment.HeaderMinNonEmpty,
			MinRowNonEmpty:    segment.MinRowNonEmpty,
			EmptyRowThreshold: clean.EmptyRowThreshold,
			CartoucheMinChars: merge.CartoucheMinChars,
		},
		OCR: OCRConfig{
			Language: ocr.DefaultConfig().Language,
		},
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ExtractorConfig maps the configuration onto the page extractor.
func (c Config) ExtractorConfig() sdp.Config {
	out := sdp.DefaultConfig()
	out.Line.BucketSize = c.Layout.LineBucket
	out.Cluster.GapThreshold = c.Layout.ClusterGap
	out.Cluster.CurrencyGap = c.Layout.CurrencyGap
	out.Assign.Margin = c.Layout.CellMargin
	out.Classify.DetailIndent = c.Layout.DetailIndent
	out.Classify.SubtotalIndent = c.Layout.SubtotalIndent
	return out
}

// SegmentConfig maps the configuration onto the grid segmenter.
func (c Config) SegmentConfig() tables.SegmentConfig {
	out := tables.DefaultSegmentConfig()
	out.HeaderMinNonEmpty = c.Tables.HeaderMinNonEmpty
	out.MinRowNonEmpty = c.Tables.MinRowNonEmpty
	return out
}

// CleanConfig maps the configuration onto the table cleaner.
func (c Config) CleanConfig() tables.CleanConfig {
	out := tables.DefaultCleanConfig()
	out.EmptyRowThreshold = c.Tables.EmptyRowThreshold
	return out
}

// MergeConfig maps the configuration onto the multi-page merger.
func (c Config) MergeConfig() tables.MergeConfig {
	out := tables.DefaultMergeConfig()
	out.CartoucheMinChars = c.Tables.CartoucheMinChars
	return out
}

// OCRClientConfig maps the configuration onto the recognition client.
func (c Config) OCRClientConfig() ocr.Config {
	out := ocr.DefaultConfig()
	out.Language = c.OCR.Language
	return out
}
