package document

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// maxPreviewLength bounds per-page text previews during inspection.
const maxPreviewLength = 512

// PageText is a plain-text preview of one page, used by CLI inspection.
type PageText struct {
	PageIndex int
	Text      string
}

// InspectText extracts a truncated plain-text preview per page. Pages whose
// content cannot be decoded are skipped rather than failing the inspection.
func (s *Session) InspectText() ([]PageText, error) {
	data, err := s.Bytes()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	var out []PageText
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		out = append(out, PageText{
			PageIndex: pageNum - 1,
			Text:      truncatePreview(strings.TrimSpace(content)),
		})
	}

	return out, nil
}

// truncatePreview bounds a preview to maxPreviewLength bytes, cutting on a
// rune boundary so a multi-byte character is never split.
func truncatePreview(s string) string {
	if len(s) <= maxPreviewLength {
		return s
	}
	cut := maxPreviewLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
