// Package render draws extraction overlays onto page images, so detected
// table regions can be inspected next to the scan they came from.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sgoncalves/quadrille/model"
)

var (
	outlineColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	labelColor   = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

// AnnotateTables copies the page image and draws each table's bounding
// region as a rectangle outline with a "Page N / Table M" label above its
// top-left corner. Table coordinates are assumed to be in image pixels.
func AnnotateTables(img image.Image, tables []*model.Table) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for _, t := range tables {
		rect := image.Rect(
			int(t.BBox.Left()), int(t.BBox.Top()),
			int(t.BBox.Right()), int(t.BBox.Bottom()),
		).Intersect(bounds)
		if rect.Empty() {
			continue
		}

		drawOutline(out, rect)

		label := fmt.Sprintf("Page %d / Table %d", t.PageIndex+1, t.TableIndex+1)
		drawLabel(out, label, rect.Min.X, rect.Min.Y-4)
	}

	return out
}

// WritePNG annotates the image and writes the result as PNG.
func WritePNG(w io.Writer, img image.Image, tables []*model.Table) error {
	if err := png.Encode(w, AnnotateTables(img, tables)); err != nil {
		return fmt.Errorf("encoding overlay: %w", err)
	}
	return nil
}

// drawOutline draws a one-pixel rectangle outline.
func drawOutline(img *image.RGBA, rect image.Rectangle) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, outlineColor)
		img.Set(x, rect.Max.Y-1, outlineColor)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, outlineColor)
		img.Set(rect.Max.X-1, y, outlineColor)
	}
}

// drawLabel renders text at the baseline position. Labels falling above the
// image are pushed back inside.
func drawLabel(img *image.RGBA, text string, x, y int) {
	if y < basicfont.Face7x13.Ascent {
		y = basicfont.Face7x13.Ascent
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
