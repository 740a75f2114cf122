package layout

import "github.com/sgoncalves/quadrille/model"

// ClassifyConfig holds the indentation thresholds separating the three row
// tiers. The thresholds are a proxy for the document's visual indentation
// convention; recalibrate them for new document layouts.
type ClassifyConfig struct {
	// DetailIndent is the leftmost-position threshold above which a row is
	// a detail line (deepest indent).
	DetailIndent float64

	// SubtotalIndent is the threshold above which a row is a subtotal
	// line. At or below it the row is a top-level total line.
	SubtotalIndent float64
}

// DefaultClassifyConfig returns the default classification thresholds.
func DefaultClassifyConfig() ClassifyConfig {
	return ClassifyConfig{
		DetailIndent:   50.0,
		SubtotalIndent: 30.0,
	}
}

// RowClassifier derives a row's type and indent tier from the smallest left
// coordinate among its tokens. Classification must run before cell
// assignment discards position information.
type RowClassifier struct {
	config ClassifyConfig
}

// NewRowClassifier creates a row classifier with default configuration.
func NewRowClassifier() *RowClassifier {
	return &RowClassifier{config: DefaultClassifyConfig()}
}

// NewRowClassifierWithConfig creates a row classifier with custom
// configuration.
func NewRowClassifierWithConfig(config ClassifyConfig) *RowClassifier {
	return &RowClassifier{config: config}
}

// Classify returns the row type and indent tier for a line: indent 2 for
// detail lines, 1 for subtotals, 0 for top-level total lines.
func (rc *RowClassifier) Classify(line Line) (model.RowType, int) {
	left := line.LeftMost()
	switch {
	case left > rc.config.DetailIndent:
		return model.RowDetail, 2
	case left > rc.config.SubtotalIndent:
		return model.RowSubtotal, 1
	default:
		return model.RowTotal, 0
	}
}
