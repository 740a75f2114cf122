package layout

import (
	"testing"

	"github.com/sgoncalves/quadrille/model"
)

// formulaLine builds a plausible formula reference line with every marker.
func formulaLine(y float64) Line {
	return Line{Y: y, Tokens: []model.Token{
		tok("a", 250, 255, y),
		tok("b", 310, 315, y),
		tok("1=axb", 370, 400, y),
		tok("2", 440, 445, y),
		tok("3", 510, 515, y),
		tok("4", 575, 580, y),
		tok("5=1x(2+3+4)", 630, 690, y),
		tok("6", 700, 705, y),
		tok("7=1x6", 740, 770, y),
		tok("8=5+7", 800, 830, y),
	}}
}

func TestFormulaLineIndex(t *testing.T) {
	lines := []Line{
		{Y: 10, Tokens: []model.Token{tok("SOUS", 10, 40, 10), tok("DETAIL", 44, 80, 10)}},
		formulaLine(60),
		{Y: 100, Tokens: []model.Token{tok("Grue", 60, 90, 100)}},
	}

	if got := NewColumnCalibrator().FormulaLineIndex(lines); got != 1 {
		t.Errorf("FormulaLineIndex() = %d, want 1", got)
	}
}

func TestFormulaLineIndexSplitMarkers(t *testing.T) {
	// Damaged scan: the composed marker broke apart, but the bare a/b/2/3
	// combination still identifies the line.
	lines := []Line{
		{Y: 60, Tokens: []model.Token{
			tok("a", 250, 255, 60),
			tok("b", 310, 315, 60),
			tok("2", 440, 445, 60),
			tok("3", 510, 515, 60),
		}},
	}

	if got := NewColumnCalibrator().FormulaLineIndex(lines); got != 0 {
		t.Errorf("FormulaLineIndex() = %d, want 0", got)
	}
}

func TestFormulaLineIndexMissing(t *testing.T) {
	lines := []Line{
		{Y: 10, Tokens: []model.Token{tok("rien", 10, 40, 10)}},
	}
	if got := NewColumnCalibrator().FormulaLineIndex(lines); got != -1 {
		t.Errorf("FormulaLineIndex() = %d, want -1", got)
	}
}

func TestCalibrateBuildsBandsFromMarkers(t *testing.T) {
	bands := NewColumnCalibrator().Calibrate([]Line{formulaLine(60)})

	// Description + unit + ten computed columns.
	if len(bands) != 12 {
		t.Fatalf("Calibrate() = %d bands, want 12", len(bands))
	}

	if bands[0].Key != ColDescription {
		t.Errorf("first band = %s, want %s", bands[0].Key, ColDescription)
	}
	// Description ends 30 units before the quantity marker at 250.
	if bands[0].End != 220 {
		t.Errorf("description end = %v, want 220", bands[0].End)
	}
	if bands[1].Key != ColUnit || bands[1].End != 250 {
		t.Errorf("unit band = %+v, want %s ending at 250", bands[1], ColUnit)
	}

	// The quantity band starts 25 before its marker and is capped by the
	// next marker at 310 minus the lead.
	if bands[2].Key != ColQuantity || bands[2].Start != 225 || bands[2].End != 285 {
		t.Errorf("quantity band = %+v, want [225, 285]", bands[2])
	}

	// The last band is bounded by the page edge.
	last := bands[len(bands)-1]
	if last.Key != ColGrandTotal {
		t.Errorf("last band = %s, want %s", last.Key, ColGrandTotal)
	}
	if last.End != 850 {
		t.Errorf("last band end = %v, want 850", last.End)
	}
}

func TestCalibrateFallsBackWithFewMarkers(t *testing.T) {
	// The composed marker identifies the line, but only three markers
	// survive, below the calibration minimum.
	lines := []Line{
		{Y: 60, Tokens: []model.Token{
			tok("1=axb", 370, 400, 60),
			tok("2", 440, 445, 60),
			tok("3", 510, 515, 60),
		}},
	}

	bands := NewColumnCalibrator().Calibrate(lines)
	if len(bands) != len(DefaultBands()) {
		t.Fatalf("Calibrate() = %d bands, want default layout", len(bands))
	}
	if bands[0] != DefaultBands()[0] {
		t.Errorf("fallback band = %+v, want %+v", bands[0], DefaultBands()[0])
	}
}

func TestCalibrateNoFormulaLine(t *testing.T) {
	lines := []Line{
		{Y: 10, Tokens: []model.Token{tok("Grue", 60, 90, 10)}},
	}

	bands := NewColumnCalibrator().Calibrate(lines)
	if len(bands) != len(DefaultBands()) {
		t.Errorf("Calibrate() = %d bands, want default layout", len(bands))
	}
}
