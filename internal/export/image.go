package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/inkform/inkform/internal/coords"
	"github.com/inkform/inkform/internal/model"
)

// isDataURI reports whether a field value carries an inline image (a drawn
// signature) rather than typed text.
func isDataURI(value string) bool {
	return strings.HasPrefix(value, "data:image")
}

// decodeDataURI extracts the raw image bytes and pixel dimensions from a
// base64 data URI. Malformed input is a per-field resource error.
func decodeDataURI(value string) ([]byte, image.Config, error) {
	i := strings.IndexByte(value, ',')
	if i < 0 || !strings.Contains(value[:i], ";base64") {
		return nil, image.Config{}, fmt.Errorf("malformed image data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(value[i+1:])
	if err != nil {
		return nil, image.Config{}, fmt.Errorf("failed to decode image data: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, image.Config{}, fmt.Errorf("unrecognized image data: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, image.Config{}, fmt.Errorf("image has degenerate dimensions %dx%d", cfg.Width, cfg.Height)
	}

	return raw, cfg, nil
}

// imageWatermark embeds a drawn signature as a raster image, scaled to the
// field's width preserving aspect ratio and anchored on the field's vertical
// center.
func (e *Engine) imageWatermark(f model.Field, dim types.Dim) (*pdfcpumodel.Watermark, error) {
	raw, cfg, err := decodeDataURI(f.Value)
	if err != nil {
		return nil, err
	}

	sf := coords.ScaleFactor(dim.Width)
	targetWidthPt := f.Size.Width * sf
	// Raster images map one pixel to one point at their natural size.
	scale := targetWidthPt / float64(cfg.Width)
	targetHeightPt := float64(cfg.Height) * scale

	p := coords.ImageAnchor(f, dim.Width, dim.Height, targetWidthPt, targetHeightPt)

	desc := fmt.Sprintf(
		"scalefactor:%.4f abs, rotation:0, opacity:1, position:bl, offset:%.2f %.2f",
		scale, p.X, p.Y)
	return api.ImageWatermarkForReader(bytes.NewReader(raw), desc, true, false, types.POINTS)
}
