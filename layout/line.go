package layout

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sgoncalves/quadrille/model"
)

// Line is a horizontal run of tokens sharing a vertical bucket, ordered
// left to right.
type Line struct {
	// Y is the bucket position of the line (top coordinate rounded to the
	// grouping bucket).
	Y float64

	// Tokens are the line's tokens sorted by increasing left coordinate.
	Tokens []model.Token
}

// Text assembles the line's text, joining tokens with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Tokens))
	for i, tok := range l.Tokens {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

// LeftMost returns the smallest left coordinate among the line's tokens.
func (l Line) LeftMost() float64 {
	if len(l.Tokens) == 0 {
		return 0
	}
	min := l.Tokens[0].Left
	for _, tok := range l.Tokens[1:] {
		if tok.Left < min {
			min = tok.Left
		}
	}
	return min
}

// IsEmpty reports whether the line has no text content.
func (l Line) IsEmpty() bool {
	return strings.TrimSpace(l.Text()) == ""
}

// LineConfig holds configuration for grouping tokens into lines.
type LineConfig struct {
	// BucketSize is the vertical rounding bucket, in page units. Tokens
	// whose top coordinate rounds to the same bucket share a line.
	BucketSize float64
}

// DefaultLineConfig returns the default line grouping configuration.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BucketSize: 8.0,
	}
}

// LineGrouper clusters tokens into text lines by vertical proximity.
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a line grouper with default configuration.
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{config: DefaultLineConfig()}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration.
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	if config.BucketSize <= 0 {
		config.BucketSize = DefaultLineConfig().BucketSize
	}
	return &LineGrouper{config: config}
}

// Group clusters tokens into lines. Lines are returned in increasing
// vertical position; tokens within a line are sorted by increasing left
// coordinate with stable ordering for equal positions. A malformed token
// makes the whole page fail; tokens are never silently dropped here.
func (g *LineGrouper) Group(tokens []model.Token) ([]Line, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	buckets := make(map[float64][]model.Token)
	for i, tok := range tokens {
		if err := tok.Validate(); err != nil {
			return nil, fmt.Errorf("grouping token %d: %w", i, err)
		}
		y := g.bucket(tok.Top)
		buckets[y] = append(buckets[y], tok)
	}

	ys := make([]float64, 0, len(buckets))
	for y := range buckets {
		ys = append(ys, y)
	}
	sort.Float64s(ys)

	lines := make([]Line, 0, len(ys))
	for _, y := range ys {
		toks := buckets[y]
		sort.SliceStable(toks, func(i, j int) bool {
			return toks[i].Left < toks[j].Left
		})
		lines = append(lines, Line{Y: y, Tokens: toks})
	}

	return lines, nil
}

// bucket rounds a top coordinate to its vertical bucket. Exact midpoints
// round toward the lower (earlier) bucket.
func (g *LineGrouper) bucket(top float64) float64 {
	size := g.config.BucketSize
	return math.Ceil(top/size-0.5) * size
}
