package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkform/inkform/internal/fonts"
	"github.com/inkform/inkform/internal/model"
)

func TestDisplayDocumentRoundTrip(t *testing.T) {
	scales := []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0}
	points := []Point{
		{X: 0, Y: 0},
		{X: 100, Y: 200},
		{X: 999.5, Y: 0.25},
		{X: 13.37, Y: 42.42},
	}

	for _, scale := range scales {
		for _, p := range points {
			disp := DocumentToDisplay(p.X, p.Y, scale)
			back := DisplayToDocument(disp.X, disp.Y, scale)
			assert.InDelta(t, p.X, back.X, 1e-9, "x round trip at scale %v", scale)
			assert.InDelta(t, p.Y, back.Y, 1e-9, "y round trip at scale %v", scale)
		}
	}
}

func TestScaleFactorLetterPage(t *testing.T) {
	assert.InDelta(t, 0.612, ScaleFactor(612), 1e-9)
}

func TestDocumentToPDFScenario(t *testing.T) {
	// A text field at document position (100, 200) on a 612x792pt page
	// rendered at the 1000px reference width.
	f := model.Field{
		Type:     model.FieldText,
		Position: model.Position{X: 100, Y: 200},
		Size:     model.Size{Width: 150, Height: 40},
	}

	m := fonts.StandardMetrics()
	p := DocumentToPDF(f, 612, 792, m, 12)

	assert.InDelta(t, 61.2, p.X, 1e-9, "x scales by pageWidthPt/renderWidthPx")

	sf := ScaleFactor(612)
	wantY := 792 - 200*sf - f.Size.Height*sf/2 + m.HeightAt(12)/2
	assert.InDelta(t, wantY, p.Y, 1e-9)
}

func TestDocumentToPDFAxisFlip(t *testing.T) {
	// A field at the top of the page must land near the top of the PDF
	// page, not the bottom.
	f := model.Field{
		Position: model.Position{X: 0, Y: 0},
		Size:     model.Size{Width: 150, Height: 40},
	}

	const pageHeight = 792.0
	p := DocumentToPDF(f, 612, pageHeight, fonts.StandardMetrics(), 12)

	fieldHeightPt := 40 * ScaleFactor(612)
	assert.Greater(t, p.Y, pageHeight-fieldHeightPt,
		"top-anchored field must stay within its own height of the page top")
	assert.LessOrEqual(t, p.Y, pageHeight)
}

func TestDocumentToPDFBottomOfPage(t *testing.T) {
	f := model.Field{
		Position: model.Position{X: 0, Y: 1294 - 52}, // near page bottom in document px
		Size:     model.Size{Width: 150, Height: 40},
	}

	p := DocumentToPDF(f, 612, 792, fonts.StandardMetrics(), 12)
	assert.Less(t, p.Y, 50.0, "bottom-anchored field lands near the PDF page bottom")
}

func TestImageAnchorCentersOnField(t *testing.T) {
	f := model.Field{
		Position: model.Position{X: 100, Y: 200},
		Size:     model.Size{Width: 200, Height: 100},
	}

	const (
		pageW = 612.0
		pageH = 792.0
		imgW  = 60.0
		imgH  = 30.0
	)

	p := ImageAnchor(f, pageW, pageH, imgW, imgH)
	sf := ScaleFactor(pageW)

	// The image center must coincide with the field center after the flip.
	wantCenterX := (f.Position.X + f.Size.Width/2) * sf
	wantCenterY := pageH - (f.Position.Y+f.Size.Height/2)*sf

	assert.InDelta(t, wantCenterX, p.X+imgW/2, 1e-9)
	assert.InDelta(t, wantCenterY, p.Y+imgH/2, 1e-9)
}
