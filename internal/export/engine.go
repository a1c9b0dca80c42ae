// Package export implements the field-to-PDF export engine: it re-projects
// the in-memory field model into PDF coordinate space, embeds font and image
// resources, and serializes a new document with the fields baked in as drawn
// content.
//
// Export is best-effort, never atomic. Failing to load the source document
// aborts the whole export. Everything after that point (a bad image, an
// unresolvable font, a field pointing at a missing page) degrades to a
// logged skip or a fallback resource so one bad input can never lose the
// document.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/mattetti/filebuffer"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/inkform/inkform/internal/coords"
	"github.com/inkform/inkform/internal/document"
	"github.com/inkform/inkform/internal/fonts"
	"github.com/inkform/inkform/internal/logging"
	"github.com/inkform/inkform/internal/model"
)

// Point sizes per field category. Signature text draws larger than plain
// text, matching the editor's on-screen sizes at the 0.75 px-to-pt factor.
const (
	textPoints      = 9
	signaturePoints = 14
	initialsPoints  = 11
)

// Result summarizes a finished export for the caller's aggregate feedback.
type Result struct {
	PDF     []byte
	Stamped int // fields drawn into the output
	Skipped int // fields dropped: inert type, no value, bad page, bad data
}

// Engine stamps fields into PDF documents. One engine may serve many exports;
// the font resolver's cache is append-only, so overlapping exports are safe.
type Engine struct {
	fonts     *fonts.Resolver
	conf      *pdfcpumodel.Configuration
	installed map[string]bool
}

// NewEngine creates an engine drawing custom fonts through the resolver.
func NewEngine(resolver *fonts.Resolver) *Engine {
	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed
	return &Engine{
		fonts:     resolver,
		conf:      conf,
		installed: make(map[string]bool),
	}
}

// Export produces a new PDF with the given fields drawn in. The source is
// parsed first and a failure there is fatal; per-field failures are logged
// and counted in Result.Skipped.
func (e *Engine) Export(source []byte, fields []model.Field) (*Result, error) {
	sess, err := document.Load(source, 0)
	if err != nil {
		return nil, err
	}

	log := logging.Logger()
	res := &Result{PDF: source}

	for _, f := range fields {
		if !f.Type.Exportable() || f.Value == "" {
			res.Skipped++
			continue
		}

		dim, ok := sess.PageDim(f.Position.PageIndex)
		if !ok {
			log.Warn("field targets missing page, skipping",
				"field", f.ID, "pageIndex", f.Position.PageIndex)
			res.Skipped++
			continue
		}

		stamped, err := e.stampField(res.PDF, f, dim)
		if err != nil {
			log.Warn("failed to stamp field, skipping",
				"field", f.ID, "type", f.Type, "err", err)
			res.Skipped++
			continue
		}

		res.PDF = stamped
		res.Stamped++
	}

	log.Info("export finished", "stamped", res.Stamped, "skipped", res.Skipped)
	return res, nil
}

// stampField draws one field into the document and returns the new bytes.
// The input bytes are never modified, so a failed stamp leaves the pipeline
// at the last good state.
func (e *Engine) stampField(current []byte, f model.Field, dim types.Dim) ([]byte, error) {
	var wm *pdfcpumodel.Watermark
	var err error

	switch {
	case (f.Type == model.FieldSignature || f.Type == model.FieldInitials) && isDataURI(f.Value):
		wm, err = e.imageWatermark(f, dim)
	case f.Type == model.FieldSignature || f.Type == model.FieldInitials:
		wm, err = e.typedSignatureWatermark(f, dim)
	case f.Type == model.FieldDate:
		wm, err = e.textWatermark(formatDate(f.Value), f, dim, fonts.FallbackName, textPoints, fonts.StandardMetrics())
	default:
		wm, err = e.textWatermark(f.Value, f, dim, fonts.FallbackName, textPoints, fonts.StandardMetrics())
	}
	if err != nil {
		return nil, err
	}

	in := filebuffer.New(current)
	var out bytes.Buffer
	pages := []string{strconv.Itoa(f.Position.PageIndex + 1)}
	if err := api.AddWatermarks(in, &out, pages, wm, e.conf); err != nil {
		return nil, fmt.Errorf("stamping failed: %w", err)
	}
	return out.Bytes(), nil
}

// textWatermark draws a string baseline-centered in the field box.
func (e *Engine) textWatermark(text string, f model.Field, dim types.Dim, fontName string, points int, m *fonts.Metrics) (*pdfcpumodel.Watermark, error) {
	p := coords.DocumentToPDF(f, dim.Width, dim.Height, m, float64(points))

	desc := fmt.Sprintf(
		"fontname:%s, points:%d, scalefactor:1 abs, rotation:0, fillcolor:#000000, position:bl, offset:%.2f %.2f",
		fontName, points, p.X, p.Y)
	return api.TextWatermark(text, desc, true, false, types.POINTS)
}

// typedSignatureWatermark draws a typed signature, preferring the field's
// handwriting font and silently degrading to the standard font when the
// resolution or installation fails.
func (e *Engine) typedSignatureWatermark(f model.Field, dim types.Dim) (*pdfcpumodel.Watermark, error) {
	points := signaturePoints
	if f.Type == model.FieldInitials {
		points = initialsPoints
	}

	fontName := fonts.FallbackName
	metrics := fonts.StandardMetrics()

	if f.FontFamily != "" {
		if custom, err := e.fonts.Resolve(f.FontFamily); err != nil {
			logging.Logger().Warn("custom font unavailable, falling back",
				"field", f.ID, "font", f.FontFamily, "fallback", fonts.FallbackName, "err", err)
		} else if err := e.installFont(custom); err != nil {
			logging.Logger().Warn("custom font not embeddable, falling back",
				"field", f.ID, "font", custom.Name, "fallback", fonts.FallbackName, "err", err)
		} else {
			fontName = custom.RegisteredName()
			metrics = custom.Metrics
		}
	}

	return e.drawTypedText(f, dim, fontName, points, metrics)
}

// drawTypedText builds a text watermark with the requested font, retrying
// once with the standard font when the PDF layer rejects the name. A field
// whose font resolved is degraded, never dropped.
func (e *Engine) drawTypedText(f model.Field, dim types.Dim, fontName string, points int, m *fonts.Metrics) (*pdfcpumodel.Watermark, error) {
	wm, err := e.textWatermark(f.Value, f, dim, fontName, points, m)
	if err != nil && fontName != fonts.FallbackName {
		logging.Logger().Warn("custom font rejected, falling back",
			"field", f.ID, "font", fontName, "fallback", fonts.FallbackName, "err", err)
		return e.textWatermark(f.Value, f, dim, fonts.FallbackName, points, fonts.StandardMetrics())
	}
	return wm, err
}

// installFont registers a custom font with the PDF layer so stamps can
// reference it by name. Installation is memoized per font name.
func (e *Engine) installFont(f *fonts.Font) error {
	if e.installed[f.Name] {
		return nil
	}
	if err := api.InstallFonts([]string{f.Path}); err != nil {
		return fmt.Errorf("font install failed: %w", err)
	}
	e.installed[f.Name] = true
	return nil
}

// formatDate normalizes a date field value to MM/DD/YYYY. Strings that parse
// under none of the accepted layouts are drawn verbatim.
func formatDate(value string) string {
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"01/02/2006",
		"1/2/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return value
}
