package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Load-tier errors. These abort the requested operation; nothing downstream
// runs against a document that failed to load.
var (
	// ErrNoDocument means an operation requiring a loaded document ran
	// against a closed or never-loaded session.
	ErrNoDocument = errors.New("no document loaded")

	// ErrNotPDF means the supplied bytes are not a parseable PDF.
	ErrNotPDF = errors.New("not a valid PDF")
)

var pdfHeader = []byte("%PDF-")

// ValidateBytes gates an upload before parsing: non-empty, within the size
// cap, and carrying the PDF magic. Zero maxSize disables the size check.
func ValidateBytes(data []byte, maxSize int64) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty input", ErrNotPDF)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrNotPDF, len(data), maxSize)
	}
	if !bytes.HasPrefix(data, pdfHeader) {
		return fmt.Errorf("%w: missing %%PDF header", ErrNotPDF)
	}
	return nil
}

// IsPDFFilename reports whether the name carries the .pdf suffix.
func IsPDFFilename(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

// ExportFilename enforces the .pdf suffix on a user-chosen download name.
func ExportFilename(name string) string {
	if name == "" {
		return "document.pdf"
	}
	if IsPDFFilename(name) {
		return name
	}
	return name + ".pdf"
}
