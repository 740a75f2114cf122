package model

import (
	"math"
	"strings"
	"testing"
)

// ============================================================================
// BBox Tests
// ============================================================================

func TestNewBBoxFromEdges(t *testing.T) {
	bbox := NewBBoxFromEdges(10, 20, 110, 70)
	if bbox.X != 10 || bbox.Y != 20 || bbox.Width != 100 || bbox.Height != 50 {
		t.Errorf("NewBBoxFromEdges() = %+v, want {10, 20, 100, 50}", bbox)
	}
}

func TestBBoxEdges(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)

	if bbox.Left() != 10 {
		t.Errorf("Left() = %v, want 10", bbox.Left())
	}
	if bbox.Right() != 110 {
		t.Errorf("Right() = %v, want 110", bbox.Right())
	}
	if bbox.Top() != 20 {
		t.Errorf("Top() = %v, want 20", bbox.Top())
	}
	if bbox.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", bbox.Bottom())
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(20, 5, 10, 10)

	got := a.Union(b)
	want := BBox{X: 0, Y: 0, Width: 30, Height: 15}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestBBoxContains(t *testing.T) {
	bbox := NewBBox(0, 0, 100, 100)

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center", Point{50, 50}, true},
		{"on edge", Point{0, 50}, true},
		{"outside right", Point{101, 50}, false},
		{"outside below", Point{50, 101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bbox.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Token Tests
// ============================================================================

func TestTokenValidate(t *testing.T) {
	tests := []struct {
		name    string
		token   Token
		wantErr bool
	}{
		{"valid", Token{Text: "Grue", Left: 10, Right: 40, Top: 100}, false},
		{"zero width", Token{Text: "x", Left: 10, Right: 10, Top: 0}, false},
		{"right before left", Token{Text: "x", Left: 40, Right: 10, Top: 0}, true},
		{"NaN left", Token{Text: "x", Left: math.NaN(), Right: 10, Top: 0}, true},
		{"infinite top", Token{Text: "x", Left: 0, Right: 10, Top: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.token.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenCenterX(t *testing.T) {
	tok := Token{Text: "x", Left: 10, Right: 30, Top: 0}
	if tok.CenterX() != 20 {
		t.Errorf("CenterX() = %v, want 20", tok.CenterX())
	}
	if tok.Width() != 20 {
		t.Errorf("Width() = %v, want 20", tok.Width())
	}
}

// ============================================================================
// Row Tests
// ============================================================================

func TestRowTypeString(t *testing.T) {
	tests := []struct {
		rt   RowType
		want string
	}{
		{RowDetail, "detail"},
		{RowSubtotal, "subtotal"},
		{RowTotal, "total"},
	}

	for _, tt := range tests {
		if got := tt.rt.String(); got != tt.want {
			t.Errorf("RowType(%d).String() = %q, want %q", tt.rt, got, tt.want)
		}
	}
}

func TestRowGetMissingKey(t *testing.T) {
	row := Row{Cells: map[string]string{"unite": "m3"}}
	if got := row.Get("unite"); got != "m3" {
		t.Errorf("Get(unite) = %q, want m3", got)
	}
	if got := row.Get("quantite"); got != "" {
		t.Errorf("Get(quantite) = %q, want empty", got)
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestTableRebuildKeepsMetadata(t *testing.T) {
	orig := NewTable(2, 1, NewBBox(0, 0, 100, 50), [][]string{{"a", "b"}})
	rebuilt := orig.Rebuild([][]string{{"c", "d"}, {"e", "f"}})

	if rebuilt.PageIndex != 2 || rebuilt.TableIndex != 1 {
		t.Errorf("Rebuild() metadata = %d/%d, want 2/1", rebuilt.PageIndex, rebuilt.TableIndex)
	}
	if rebuilt.BBox != orig.BBox {
		t.Errorf("Rebuild() bbox = %+v, want %+v", rebuilt.BBox, orig.BBox)
	}
	if rebuilt.RowCount() != 2 {
		t.Errorf("Rebuild() rows = %d, want 2", rebuilt.RowCount())
	}
	if orig.RowCount() != 1 {
		t.Error("Rebuild() mutated the original table")
	}
}

func TestTableCell(t *testing.T) {
	tbl := NewTable(0, 0, BBox{}, [][]string{{"a", "b"}, {"c"}})

	if got := tbl.Cell(0, 1); got != "b" {
		t.Errorf("Cell(0,1) = %q, want b", got)
	}
	if got := tbl.Cell(1, 1); got != "" {
		t.Errorf("Cell(1,1) = %q, want empty", got)
	}
	if got := tbl.Cell(-1, 0); got != "" {
		t.Errorf("Cell(-1,0) = %q, want empty", got)
	}
}

func TestTableToMarkdown(t *testing.T) {
	tbl := NewTable(0, 0, BBox{}, [][]string{
		{"Semaine", "Lundi"},
		{"S1", "2 x\nGrutier"},
	})

	md := tbl.ToMarkdown()
	if !strings.HasPrefix(md, "| Semaine | Lundi |") {
		t.Errorf("ToMarkdown() header = %q", md)
	}
	if !strings.Contains(md, "|---|---|") {
		t.Errorf("ToMarkdown() separator missing: %q", md)
	}
	if !strings.Contains(md, "| S1 | 2 x Grutier |") {
		t.Errorf("ToMarkdown() should flatten cell line breaks: %q", md)
	}
}

func TestTableToMarkdownEmpty(t *testing.T) {
	tbl := NewTable(0, 0, BBox{}, nil)
	if got := tbl.ToMarkdown(); got != "" {
		t.Errorf("ToMarkdown() on empty table = %q, want empty", got)
	}
}

// ============================================================================
// RecapRecord Tests
// ============================================================================

func TestRecapRecordIsEmpty(t *testing.T) {
	var rec RecapRecord
	if !rec.IsEmpty() {
		t.Error("zero record should be empty")
	}

	rec.Total5 = "4011,71 €"
	if rec.IsEmpty() {
		t.Error("record with a total should not be empty")
	}
}
