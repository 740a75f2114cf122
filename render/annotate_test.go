package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/sgoncalves/quadrille/model"
)

func whitePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestAnnotateTablesDrawsOutline(t *testing.T) {
	img := whitePage(200, 200)
	tables := []*model.Table{
		model.NewTable(0, 0, model.NewBBox(50, 60, 100, 80), nil),
	}

	out := AnnotateTables(img, tables)

	// Corner of the outline must no longer be white.
	r, g, b, _ := out.At(50, 60).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Error("outline corner still white, expected drawn pixel")
	}

	// Pixels well inside the region stay untouched.
	r, g, b, _ = out.At(100, 100).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Error("interior pixel was modified")
	}
}

func TestAnnotateTablesDoesNotMutateSource(t *testing.T) {
	img := whitePage(100, 100)
	tables := []*model.Table{
		model.NewTable(0, 0, model.NewBBox(10, 10, 50, 50), nil),
	}

	AnnotateTables(img, tables)

	r, g, b, _ := img.At(10, 10).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Error("source image was mutated")
	}
}

func TestAnnotateTablesSkipsOffPageRegion(t *testing.T) {
	img := whitePage(100, 100)
	tables := []*model.Table{
		model.NewTable(0, 0, model.NewBBox(500, 500, 50, 50), nil),
	}

	out := AnnotateTables(img, tables)
	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", out.Bounds(), img.Bounds())
	}
}

func TestWritePNG(t *testing.T) {
	img := whitePage(100, 100)
	tables := []*model.Table{
		model.NewTable(0, 0, model.NewBBox(10, 10, 50, 50), nil),
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, img, tables); err != nil {
		t.Fatalf("WritePNG() error: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
