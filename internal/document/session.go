// Package document owns the loaded source PDF for an editing session.
//
// A Session is the explicit handle that replaces ambient global state: it is
// created at load time, passed to whatever needs the document (renderer,
// export engine, CLI inspection), and invalidated by loading a new document
// or closing the session.
package document

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/inkform/inkform/internal/coords"
	"github.com/inkform/inkform/internal/logging"
	"github.com/inkform/inkform/internal/model"
)

// Session is a loaded source document: the original bytes, the parsed
// pdfcpu context, and the page geometry derived once at load time.
type Session struct {
	data   []byte
	ctx    *pdfcpumodel.Context
	dims   []types.Dim
	pages  []model.DocumentPage
	closed bool
}

// Load parses a PDF from bytes and computes page geometry. Bytes that do not
// parse as a PDF fail with a load error wrapping ErrNotPDF.
func Load(data []byte, maxSize int64) (*Session, error) {
	if err := ValidateBytes(data, maxSize); err != nil {
		return nil, err
	}

	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read page dimensions: %v", ErrNotPDF, err)
	}

	// Page geometry in document space: every page is referenced to the
	// fixed render width, so height scales by the page's aspect ratio.
	pages := make([]model.DocumentPage, len(dims))
	for i, d := range dims {
		height := 0.0
		if d.Width > 0 {
			height = d.Height * coords.RenderWidth / d.Width
		}
		pages[i] = model.DocumentPage{
			PageIndex: i,
			Width:     coords.RenderWidth,
			Height:    height,
		}
	}

	logging.Logger().Debug("document loaded", "pages", len(pages), "bytes", len(data))

	return &Session{
		data:  data,
		ctx:   ctx,
		dims:  dims,
		pages: pages,
	}, nil
}

// Bytes returns the original source bytes.
func (s *Session) Bytes() ([]byte, error) {
	if s.closed {
		return nil, ErrNoDocument
	}
	return s.data, nil
}

// PageCount returns the number of pages.
func (s *Session) PageCount() int {
	if s.closed {
		return 0
	}
	return len(s.pages)
}

// Pages returns page geometry in document space, ordered by page index.
func (s *Session) Pages() []model.DocumentPage {
	if s.closed {
		return nil
	}
	out := make([]model.DocumentPage, len(s.pages))
	copy(out, s.pages)
	return out
}

// PageDim returns a page's native dimensions in points. PageIndex is
// 0-based; out-of-range indices report false.
func (s *Session) PageDim(pageIndex int) (types.Dim, bool) {
	if s.closed || pageIndex < 0 || pageIndex >= len(s.dims) {
		return types.Dim{}, false
	}
	return s.dims[pageIndex], true
}

// Close invalidates the session. Subsequent reads report ErrNoDocument.
func (s *Session) Close() {
	s.closed = true
	s.data = nil
	s.ctx = nil
}
