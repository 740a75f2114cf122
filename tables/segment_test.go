package tables

import (
	"reflect"
	"testing"

	"github.com/sgoncalves/quadrille/model"
)

func grid(rows ...[]string) *model.Table {
	return model.NewTable(0, 0, model.NewBBox(0, 0, 800, 600), rows)
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ligne\navec retour", "ligne avec retour"},
		{"tiret ‐ long", "tiret - long"},
		{"point · médian", "point . médian"},
		{"suite …", "suite ..."},
		{"202/10/31 INDICE", "INDICE"},
		{"  espaces   multiples  ", "espaces multiples"},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.in); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSegmentSplitsAtHeaders(t *testing.T) {
	tbl := grid(
		[]string{"Semaine", "Lundi", "Mardi", "Mercredi"},
		[]string{"S1", "2 x Grutier", "", ""},
		[]string{"Semaine", "Jeudi", "Vendredi", "Samedi"},
		[]string{"S2", "1 x Grutier", "", ""},
	)

	segments := NewSegmenter().Segment(tbl)
	if len(segments) != 2 {
		t.Fatalf("Segment() = %d segments, want 2", len(segments))
	}
	if segments[0].RowCount() != 2 || segments[1].RowCount() != 2 {
		t.Errorf("segment rows = %d/%d, want 2/2",
			segments[0].RowCount(), segments[1].RowCount())
	}
	if segments[0].TableIndex != 0 || segments[1].TableIndex != 1 {
		t.Errorf("segment indices = %d/%d, want 0/1",
			segments[0].TableIndex, segments[1].TableIndex)
	}
}

func TestSegmentSparseRowIsNotAHeader(t *testing.T) {
	// Two non-empty cells out of four: below the header density, the row
	// stays attached to the segment above.
	tbl := grid(
		[]string{"Semaine", "Lundi", "Mardi", "Mercredi"},
		[]string{"S1", "2 x Grutier", "", ""},
	)

	segments := NewSegmenter().Segment(tbl)
	if len(segments) != 1 {
		t.Fatalf("Segment() = %d segments, want 1", len(segments))
	}
	if segments[0].RowCount() != 2 {
		t.Errorf("segment rows = %d, want 2", segments[0].RowCount())
	}
}

func TestSegmentRemergesLoneHeaderFragment(t *testing.T) {
	// A wrapped caption produces a lone header-dense row directly followed
	// by another header-dense block of the same width; the fragment belongs
	// to that block.
	tbl := grid(
		[]string{"PLANNING", "CHANTIER", "SEMAINE", "12"},
		[]string{"Semaine", "Lundi", "Mardi", "Mercredi"},
		[]string{"S1", "2 x Grutier", "", ""},
	)

	segments := NewSegmenter().Segment(tbl)
	if len(segments) != 1 {
		t.Fatalf("Segment() = %d segments, want 1", len(segments))
	}
	if segments[0].RowCount() != 3 {
		t.Errorf("segment rows = %d, want 3", segments[0].RowCount())
	}
}

func TestSegmentRowPartition(t *testing.T) {
	// Splitting must partition the non-empty rows: every row lands in
	// exactly one segment, in order. Filters are disabled to observe the
	// raw split.
	cfg := DefaultSegmentConfig()
	cfg.MinRowNonEmpty = 0
	cfg.MinColumnNonEmpty = -1

	rows := [][]string{
		{"Semaine", "Lundi", "Mardi", "Mercredi"},
		{"S1", "a", "", ""},
		{"S1", "b", "", ""},
		{"Semaine", "Jeudi", "Vendredi", "Samedi"},
		{"S2", "c", "", ""},
	}

	segments := NewSegmenterWithConfig(cfg).Segment(grid(rows...))

	var got [][]string
	for _, seg := range segments {
		got = append(got, seg.Rows...)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("concatenated segments = %v, want original rows %v", got, rows)
	}
}

func TestSegmentCollapsesEmptyColumns(t *testing.T) {
	tbl := grid(
		[]string{"Semaine", "Lundi", "", "Mardi"},
		[]string{"S1", "2 x Grutier", "", "1 x Chef"},
	)

	segments := NewSegmenter().Segment(tbl)
	if len(segments) != 1 {
		t.Fatalf("Segment() = %d segments, want 1", len(segments))
	}
	if segments[0].ColCount() != 3 {
		t.Errorf("columns = %d, want 3 after collapsing the empty one",
			segments[0].ColCount())
	}
}

func TestSegmentEmptyTable(t *testing.T) {
	if segments := NewSegmenter().Segment(grid()); segments != nil {
		t.Errorf("Segment(empty) = %v, want nil", segments)
	}
}
