// Package coords converts between the three coordinate systems of an editing
// session:
//
//   - display space: on-screen pixels, document space multiplied by the zoom
//     factor;
//   - document space: unscaled pixels referenced to the page's fixed render
//     width, origin top-left, y increasing downward;
//   - PDF space: native page points, origin bottom-left.
//
// All functions are pure. The document-to-PDF mapping is the part of the
// system where every historical regression lived, so it is kept in one place
// and covered by round-trip tests.
package coords

import (
	"github.com/inkform/inkform/internal/fonts"
	"github.com/inkform/inkform/internal/model"
)

// RenderWidth is the pixel width pages are rasterized at for on-screen
// display at scale 1.0. Document-space x coordinates are referenced to this
// width, not to the page's native point width.
const RenderWidth = 1000.0

// Point is a location in whichever space the producing function documents.
type Point struct {
	X float64
	Y float64
}

// DisplayToDocument converts scaled viewport pixels to document space.
func DisplayToDocument(x, y, scale float64) Point {
	return Point{X: x / scale, Y: y / scale}
}

// DocumentToDisplay converts document space to scaled viewport pixels.
func DocumentToDisplay(x, y, scale float64) Point {
	return Point{X: x * scale, Y: y * scale}
}

// ScaleFactor is the document-pixel to PDF-point conversion for a page of
// the given native width.
func ScaleFactor(pageWidthPt float64) float64 {
	return pageWidthPt / RenderWidth
}

// DocumentToPDF projects a field's anchor into PDF space for text drawing.
//
// The x axis only changes units. The y axis flips to the bottom-left origin
// and lands on the text baseline: the field's vertical center, corrected by
// half the font height so that a single line of text at the given size sits
// centered inside the field box.
func DocumentToPDF(field model.Field, pageWidthPt, pageHeightPt float64, m *fonts.Metrics, fontSize float64) Point {
	sf := ScaleFactor(pageWidthPt)
	heightPt := field.Size.Height * sf

	x := field.Position.X * sf
	y := pageHeightPt - field.Position.Y*sf - heightPt/2 + m.HeightAt(fontSize)/2
	return Point{X: x, Y: y}
}

// ImageAnchor returns the bottom-left corner for a raster image of the given
// point dimensions, centered on the field box after the axis flip. Images
// have no baseline; they anchor by their box.
func ImageAnchor(field model.Field, pageWidthPt, pageHeightPt, imgWidthPt, imgHeightPt float64) Point {
	sf := ScaleFactor(pageWidthPt)

	centerX := (field.Position.X + field.Size.Width/2) * sf
	centerY := pageHeightPt - (field.Position.Y+field.Size.Height/2)*sf
	return Point{X: centerX - imgWidthPt/2, Y: centerY - imgHeightPt/2}
}
