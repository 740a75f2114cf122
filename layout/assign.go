package layout

import (
	"math"
	"strings"
)

// AssignConfig holds configuration for assigning value groups to column
// bands.
type AssignConfig struct {
	// Margin expands each band's range when testing whether a group's
	// center plausibly belongs to it. A nearest-center match is rejected
	// when the group lies outside the expanded range.
	Margin float64
}

// DefaultAssignConfig returns the default assignment configuration.
func DefaultAssignConfig() AssignConfig {
	return AssignConfig{
		Margin: 30.0,
	}
}

// CellAssigner routes each value group to the column band whose center is
// nearest, provided the group falls within the band's expanded range.
type CellAssigner struct {
	config AssignConfig
}

// NewCellAssigner creates a cell assigner with default configuration.
func NewCellAssigner() *CellAssigner {
	return &CellAssigner{config: DefaultAssignConfig()}
}

// NewCellAssignerWithConfig creates a cell assigner with custom
// configuration.
func NewCellAssignerWithConfig(config AssignConfig) *CellAssigner {
	return &CellAssigner{config: config}
}

// Assign maps value groups onto the given bands, returning cell values
// keyed by band key. Groups matching the same band are concatenated with a
// separating space in left-to-right discovery order. A group matching no
// band is discarded; stray marks and decoration are expected and benign.
func (a *CellAssigner) Assign(groups []ValueGroup, bands []ColumnBand) map[string]string {
	cells := make(map[string]string, len(bands))
	for _, band := range bands {
		cells[band.Key] = ""
	}

	for _, g := range groups {
		key, ok := a.nearestBand(g.Center, bands)
		if !ok {
			continue
		}
		if cells[key] != "" {
			cells[key] += " " + g.Text
		} else {
			cells[key] = g.Text
		}
	}

	for key, val := range cells {
		cells[key] = strings.TrimSpace(val)
	}

	return cells
}

// nearestBand returns the key of the band whose center is closest to x,
// among bands whose expanded range contains x.
func (a *CellAssigner) nearestBand(x float64, bands []ColumnBand) (string, bool) {
	bestKey := ""
	bestDist := math.Inf(1)

	for _, band := range bands {
		if !band.ContainsWithMargin(x, a.config.Margin) {
			continue
		}
		if dist := math.Abs(x - band.Center()); dist < bestDist {
			bestDist = dist
			bestKey = band.Key
		}
	}

	return bestKey, bestKey != ""
}
