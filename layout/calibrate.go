package layout

import (
	"math"
	"strings"
)

// Internal column keys for the priced-works layout. The keys double as the
// cell map keys of reconstructed rows.
const (
	ColDescription            = "composantes_du_prix"
	ColUnit                   = "unite"
	ColQuantity               = "quantite"
	ColDuration               = "duree_utilisation"
	ColTotal                  = "total"
	ColLabourUnitCost         = "main_oeuvre_cout_unitaire"
	ColMaterialsUnitPrice     = "materiels_prix_unitaire"
	ColServicesUnitPrice      = "prestations_prix_unitaire"
	ColOwnWorksAmount         = "montant_part_propre"
	ColSubcontractedUnitPrice = "part_sous_traites_prix_unitaire"
	ColSubcontractedAmount    = "part_sous_traites_montant"
	ColGrandTotal             = "total_general"
)

// FormulaMarker is the literal marking the start of the computed-columns
// region on the reference line.
const FormulaMarker = "1=axb"

// ColumnBand is a page-local horizontal range assigned to one logical
// column. Bands are derived once per page and are immutable thereafter;
// they need not be contiguous or exhaustive.
type ColumnBand struct {
	Start float64
	End   float64
	Key   string
	Label string
}

// Center returns the horizontal center of the band.
func (b ColumnBand) Center() float64 {
	return (b.Start + b.End) / 2
}

// ContainsWithMargin reports whether x falls within the band's range
// expanded by the given margin on both sides.
func (b ColumnBand) ContainsWithMargin(x, margin float64) bool {
	return x >= b.Start-margin && x <= b.End+margin
}

// computedColumns lists the computed columns in document order with their
// display labels.
var computedColumns = []struct {
	key   string
	label string
}{
	{ColQuantity, "Quantité (a)"},
	{ColDuration, "Durée d'utilisation (b)"},
	{ColTotal, "TOTAL (1=axb)"},
	{ColLabourUnitCost, "Main d'oeuvre : coût à l'unité (2)"},
	{ColMaterialsUnitPrice, "Matériels et matières consommables : prix unitaire (3)"},
	{ColServicesUnitPrice, "Prestations : prix unitaire (4)"},
	{ColOwnWorksAmount, "MONTANT PART PROPRE (5=1x(2+3+4))"},
	{ColSubcontractedUnitPrice, "PART SOUS TRAITES FOURNITURES : prix unitaire (6)"},
	{ColSubcontractedAmount, "PART SOUS TRAITES FOURNITURES : MONTANT (7=1x6)"},
	{ColGrandTotal, "TOTAL GENERAL (8=5+7)"},
}

// DefaultBands returns the static default band layout used when the
// reference line cannot be calibrated. Ranges are fixed page positions
// observed across the document family.
func DefaultBands() []ColumnBand {
	return []ColumnBand{
		{0, 195, ColDescription, "COMPOSANTES DU PRIX (avec décomposition par sous détails élémentaires)"},
		{195, 225, ColUnit, "Unité"},
		{225, 275, ColQuantity, "Quantité (a)"},
		{275, 340, ColDuration, "Durée d'utilisation (b)"},
		{340, 410, ColTotal, "TOTAL (1=axb)"},
		{410, 475, ColLabourUnitCost, "Main d'oeuvre : coût à l'unité (2)"},
		{475, 545, ColMaterialsUnitPrice, "Matériels et matières consommables : prix unitaire (3)"},
		{545, 600, ColServicesUnitPrice, "Prestations : prix unitaire (4)"},
		{600, 660, ColOwnWorksAmount, "MONTANT PART PROPRE (5=1x(2+3+4))"},
		{660, 720, ColSubcontractedUnitPrice, "PART SOUS TRAITES FOURNITURES : prix unitaire (6)"},
		{720, 780, ColSubcontractedAmount, "PART SOUS TRAITES FOURNITURES : MONTANT (7=1x6)"},
		{780, 850, ColGrandTotal, "TOTAL GENERAL (8=5+7)"},
	}
}

// CalibratorConfig holds configuration for per-page column calibration.
type CalibratorConfig struct {
	// MinMarkers is the minimum number of detected formula markers below
	// which calibration falls back to the static default layout.
	MinMarkers int

	// MarkerLead is how far before a marker's position its band starts.
	MarkerLead float64

	// MaxBandWidth caps the width of a computed-column band.
	MaxBandWidth float64

	// DescriptionGap is the space reserved between the description band's
	// end and the first marker.
	DescriptionGap float64

	// UnitBandWidth is the width of the unit band following the
	// description band.
	UnitBandWidth float64

	// PageRightEdge bounds the last band when no further marker follows.
	PageRightEdge float64

	// FallbackQuantityX is the assumed quantity-marker position when the
	// marker itself is missing from an otherwise calibratable line.
	FallbackQuantityX float64
}

// DefaultCalibratorConfig returns the default calibration configuration.
func DefaultCalibratorConfig() CalibratorConfig {
	return CalibratorConfig{
		MinMarkers:        4,
		MarkerLead:        25.0,
		MaxBandWidth:      60.0,
		DescriptionGap:    30.0,
		UnitBandWidth:     30.0,
		PageRightEdge:     850.0,
		FallbackQuantityX: 250.0,
	}
}

// ColumnCalibrator derives per-page column bands from the formula reference
// line, falling back to the static default layout when the line is missing
// or malformed. Different page revisions shift column positions by a few
// units, so a purely static layout misassigns cells when columns drift,
// while blind dynamic detection is unsafe when the marker line itself is
// damaged.
type ColumnCalibrator struct {
	config CalibratorConfig
}

// NewColumnCalibrator creates a calibrator with default configuration.
func NewColumnCalibrator() *ColumnCalibrator {
	return &ColumnCalibrator{config: DefaultCalibratorConfig()}
}

// NewColumnCalibratorWithConfig creates a calibrator with custom
// configuration.
func NewColumnCalibratorWithConfig(config CalibratorConfig) *ColumnCalibrator {
	return &ColumnCalibrator{config: config}
}

// FormulaLineIndex returns the index of the formula reference line, or -1
// when no line qualifies. A line qualifies when it contains the formula
// marker literal, or the bare a/b/2/3 marker combination on damaged scans
// where the composed marker was split apart.
func (c *ColumnCalibrator) FormulaLineIndex(lines []Line) int {
	for i, line := range lines {
		if c.isFormulaLine(line) {
			return i
		}
	}
	return -1
}

func (c *ColumnCalibrator) isFormulaLine(line Line) bool {
	if strings.Contains(line.Text(), FormulaMarker) {
		return true
	}

	seen := map[string]bool{}
	for _, tok := range line.Tokens {
		seen[tok.Text] = true
	}
	return seen["a"] && seen["b"] && seen["2"] && seen["3"]
}

// Calibrate scans the page's lines for the formula reference line and
// derives column bands from its marker positions. When the line is missing
// or carries fewer markers than MinMarkers, the static default layout is
// returned.
func (c *ColumnCalibrator) Calibrate(lines []Line) []ColumnBand {
	idx := c.FormulaLineIndex(lines)
	if idx < 0 {
		return DefaultBands()
	}

	markers := c.readMarkers(lines[idx])
	if len(markers) < c.config.MinMarkers {
		return DefaultBands()
	}

	return c.bandsFromMarkers(markers)
}

// readMarkers maps each recognized marker token on the formula line to the
// internal key of the column it starts.
func (c *ColumnCalibrator) readMarkers(line Line) map[string]float64 {
	markers := make(map[string]float64)

	for _, tok := range line.Tokens {
		x := tok.Left
		switch {
		case tok.Text == "a":
			markers[ColQuantity] = x
		case tok.Text == "b":
			markers[ColDuration] = x
		case tok.Text == FormulaMarker:
			markers[ColTotal] = x
		case tok.Text == "2":
			markers[ColLabourUnitCost] = x
		case tok.Text == "3":
			markers[ColMaterialsUnitPrice] = x
		case tok.Text == "4":
			markers[ColServicesUnitPrice] = x
		case tok.Text == "5" || strings.HasPrefix(tok.Text, "5="):
			markers[ColOwnWorksAmount] = x
		case tok.Text == "6":
			markers[ColSubcontractedUnitPrice] = x
		case tok.Text == "7" || strings.HasPrefix(tok.Text, "7="):
			markers[ColSubcontractedAmount] = x
		case tok.Text == "8" || strings.HasPrefix(tok.Text, "8="):
			markers[ColGrandTotal] = x
		}
	}

	return markers
}

// bandsFromMarkers builds the band list: description and unit bands occupy
// the space before the first marker, then one band per detected marker,
// each capped at MaxBandWidth or ending just before the next marker.
func (c *ColumnCalibrator) bandsFromMarkers(markers map[string]float64) []ColumnBand {
	quantityX, ok := markers[ColQuantity]
	if !ok {
		quantityX = c.config.FallbackQuantityX
	}
	descEnd := quantityX - c.config.DescriptionGap

	bands := []ColumnBand{
		{0, descEnd, ColDescription, "COMPOSANTES DU PRIX"},
		{descEnd, descEnd + c.config.UnitBandWidth, ColUnit, "Unité"},
	}

	for i, col := range computedColumns {
		x, ok := markers[col.key]
		if !ok {
			continue
		}

		next := c.config.PageRightEdge
		for _, later := range computedColumns[i+1:] {
			if lx, ok := markers[later.key]; ok {
				next = lx - c.config.MarkerLead
				break
			}
		}

		bands = append(bands, ColumnBand{
			Start: x - c.config.MarkerLead,
			End:   math.Min(next, x+c.config.MaxBandWidth),
			Key:   col.key,
			Label: col.label,
		})
	}

	return bands
}
