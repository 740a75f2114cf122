package layout

import (
	"strings"

	"github.com/sgoncalves/quadrille/model"
)

// ValueGroup is a run of horizontally adjacent tokens merged into one
// logical cell value. Groups within a line never overlap and preserve
// left-to-right order.
type ValueGroup struct {
	// Text is the merged text of the group's tokens, space separated.
	Text string

	// Center is the representative horizontal center of the group.
	Center float64
}

// ClusterConfig holds configuration for merging tokens into value groups.
type ClusterConfig struct {
	// GapThreshold is the maximum horizontal gap, in page units, between
	// consecutive tokens of the same group.
	GapThreshold float64

	// CurrencyGap is the larger gap allowance that keeps a trailing
	// currency glyph attached to the preceding numeric token.
	CurrencyGap float64

	// CurrencySymbol is the currency glyph handled by the fusion rules.
	CurrencySymbol string

	// Units is the closed vocabulary of unit abbreviations that get split
	// off a description when glued to its last word.
	Units []string

	// UnitSplitOffset is the synthetic horizontal offset applied when a
	// trailing unit is split off a description, so column assignment
	// routes the two pieces to different bands.
	UnitSplitOffset float64
}

// DefaultClusterConfig returns the default clustering configuration.
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		GapThreshold:    12.0,
		CurrencyGap:     25.0,
		CurrencySymbol:  "€",
		Units:           []string{"m", "m2", "m3", "ml", "h", "t", "j", "u", "kg", "l", "ens", "forf", "km"},
		UnitSplitOffset: 20.0,
	}
}

// WordClusterer merges horizontally adjacent tokens of one line into value
// groups. Clustering is purely local to a line; it has no cross-line memory.
type WordClusterer struct {
	config ClusterConfig
	units  map[string]bool
}

// NewWordClusterer creates a word clusterer with default configuration.
func NewWordClusterer() *WordClusterer {
	return NewWordClustererWithConfig(DefaultClusterConfig())
}

// NewWordClustererWithConfig creates a word clusterer with custom
// configuration.
func NewWordClustererWithConfig(config ClusterConfig) *WordClusterer {
	units := make(map[string]bool, len(config.Units))
	for _, u := range config.Units {
		units[strings.ToLower(u)] = true
	}
	return &WordClusterer{config: config, units: units}
}

// Cluster merges the line's tokens into value groups. Tokens closer than
// the gap threshold join the current group; a currency glyph joins across a
// larger gap. Afterward a lone dash followed by the currency glyph is fused
// into one "- €" group, isolated currency glyphs are dropped, and a trailing
// unit abbreviation glued to a description is split into its own group.
func (c *WordClusterer) Cluster(line Line) []ValueGroup {
	if len(line.Tokens) == 0 {
		return nil
	}

	groups := c.mergeByProximity(line.Tokens)
	groups = c.fuseCurrency(groups)
	return c.splitTrailingUnits(groups)
}

type protoGroup struct {
	texts []string
	left  float64
	right float64
}

func (p protoGroup) value() ValueGroup {
	return ValueGroup{
		Text:   strings.Join(p.texts, " "),
		Center: (p.left + p.right) / 2,
	}
}

// mergeByProximity walks the line's tokens left to right and merges runs
// whose gaps stay below the thresholds.
func (c *WordClusterer) mergeByProximity(tokens []model.Token) []ValueGroup {
	var groups []ValueGroup

	current := protoGroup{
		texts: []string{tokens[0].Text},
		left:  tokens[0].Left,
		right: tokens[0].Right,
	}

	for _, tok := range tokens[1:] {
		gap := tok.Left - current.right

		switch {
		case tok.Text == c.config.CurrencySymbol && gap < c.config.CurrencyGap:
			current.texts = append(current.texts, tok.Text)
			current.right = tok.Right
		case gap < c.config.GapThreshold:
			current.texts = append(current.texts, tok.Text)
			current.right = tok.Right
		default:
			groups = append(groups, current.value())
			current = protoGroup{
				texts: []string{tok.Text},
				left:  tok.Left,
				right: tok.Right,
			}
		}
	}

	return append(groups, current.value())
}

// fuseCurrency fuses a lone separator dash followed by the currency glyph
// into a single "- €" group (the document's notation for a zero amount) and
// drops currency glyphs left with no preceding number.
func (c *WordClusterer) fuseCurrency(groups []ValueGroup) []ValueGroup {
	sym := c.config.CurrencySymbol
	cleaned := make([]ValueGroup, 0, len(groups))

	for i := 0; i < len(groups); i++ {
		g := groups[i]
		switch {
		case g.Text == "-" && i+1 < len(groups) && groups[i+1].Text == sym:
			cleaned = append(cleaned, ValueGroup{Text: "- " + sym, Center: g.Center})
			i++
		case g.Text == sym:
			// stray glyph, already attached elsewhere
		default:
			cleaned = append(cleaned, g)
		}
	}

	return cleaned
}

// splitTrailingUnits detects a unit abbreviation glued to the end of a
// longer description and splits it off, nudging the description left and
// the unit right of the original center.
func (c *WordClusterer) splitTrailingUnits(groups []ValueGroup) []ValueGroup {
	out := make([]ValueGroup, 0, len(groups))

	for _, g := range groups {
		words := strings.Fields(g.Text)
		if len(words) > 1 && c.units[strings.ToLower(words[len(words)-1])] {
			desc := strings.Join(words[:len(words)-1], " ")
			unit := words[len(words)-1]
			out = append(out,
				ValueGroup{Text: desc, Center: g.Center - c.config.UnitSplitOffset},
				ValueGroup{Text: unit, Center: g.Center + c.config.UnitSplitOffset},
			)
			continue
		}
		out = append(out, g)
	}

	return out
}
