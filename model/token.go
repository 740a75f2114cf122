package model

import (
	"fmt"
	"math"
)

// Token is the minimal positioned text unit produced by an upstream text
// extractor (OCR word boxes, PDF text runs). Tokens are immutable inputs;
// the pipeline never modifies them.
type Token struct {
	Text  string  `json:"text"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
	Top   float64 `json:"top"`
}

// Width returns the horizontal extent of the token.
func (t Token) Width() float64 {
	return t.Right - t.Left
}

// CenterX returns the horizontal center of the token.
func (t Token) CenterX() float64 {
	return (t.Left + t.Right) / 2
}

// Validate reports whether the token carries usable coordinates. A token
// with NaN or infinite coordinates, or a right edge left of its left edge,
// is malformed and fatal for its page.
func (t Token) Validate() error {
	for _, v := range []float64{t.Left, t.Right, t.Top} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("token %q: coordinate is not a finite number", t.Text)
		}
	}
	if t.Right < t.Left {
		return fmt.Errorf("token %q: right edge %.2f precedes left edge %.2f", t.Text, t.Right, t.Left)
	}
	return nil
}
