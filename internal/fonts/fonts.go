// Package fonts resolves the handwriting fonts used for typed signatures and
// provides the metrics needed for baseline-centered text placement.
//
// Resolution is fail-closed: a font that cannot be found or parsed degrades
// to the standard Helvetica metrics and the built-in fallback font name,
// never an error that could abort an export.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FallbackName is the standard PDF font used whenever a custom font cannot
// be resolved. It is available in every PDF reader without embedding.
const FallbackName = "Helvetica"

// Helvetica vertical metrics in font units per 1000 em (AFM values). Used
// for baseline correction when no custom font is in play.
const (
	helveticaAscender  = 718
	helveticaDescender = -207
)

// Resolver maps handwriting font names to font files on disk and memoizes
// the loaded bytes and parsed metrics. The cache is append-only and keyed by
// font name, so overlapping exports may race to populate an entry but can
// never observe a partially written one.
type Resolver struct {
	dir string

	mu      sync.Mutex
	byName  map[string]*Font
	failed  map[string]bool
	fileFor map[string]string
}

// Font is a resolved custom font: its raw program bytes plus parsed metrics.
type Font struct {
	Name    string
	Path    string
	Data    []byte
	Metrics *Metrics

	// PostScriptName is the identity embedded in the font program. The PDF
	// layer registers installed fonts under this name, which may differ from
	// the table key. Empty when the program carries no usable name record.
	PostScriptName string
}

// RegisteredName is the name the PDF layer knows the installed font by.
func (f *Font) RegisteredName() string {
	if f.PostScriptName != "" {
		return f.PostScriptName
	}
	return f.Name
}

// NewResolver creates a resolver rooted at dir. The name table is the closed
// set of fonts the editor offers for typed signatures.
func NewResolver(dir string) *Resolver {
	return &Resolver{
		dir:    dir,
		byName: make(map[string]*Font),
		failed: make(map[string]bool),
		fileFor: map[string]string{
			"Bastliga":    "bastliga.otf",
			"CentralWell": "centralwell.ttf",
		},
	}
}

// Resolve loads the named font, serving repeated lookups from the cache.
// Unknown names, unreadable files and unparseable font programs all return
// an error; callers fall back to the standard font.
func (r *Resolver) Resolve(name string) (*Font, error) {
	// CSS font-family values arrive as "Bastliga, cursive"; only the first
	// entry names a resolvable font.
	if i := strings.IndexByte(name, ','); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.byName[name]; ok {
		return f, nil
	}
	if r.failed[name] {
		return nil, fmt.Errorf("font %q previously failed to load", name)
	}

	file, ok := r.fileFor[name]
	if !ok {
		return nil, fmt.Errorf("unknown font: %q", name)
	}

	data, err := os.ReadFile(filepath.Join(r.dir, file))
	if err != nil {
		r.failed[name] = true
		return nil, fmt.Errorf("failed to read font %q: %w", name, err)
	}

	metrics, err := ParseMetrics(data)
	if err != nil {
		r.failed[name] = true
		return nil, fmt.Errorf("failed to parse font %q: %w", name, err)
	}

	// Best effort: a missing name record falls back to the table key.
	psName, err := PostScriptName(data)
	if err != nil {
		psName = ""
	}

	f := &Font{
		Name:           name,
		Path:           filepath.Join(r.dir, file),
		Data:           data,
		Metrics:        metrics,
		PostScriptName: psName,
	}
	r.byName[name] = f
	return f, nil
}

// PostScriptName extracts the PostScript name from a font program, trying
// the full name record when the PostScript record is absent.
func PostScriptName(data []byte) (string, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return "", err
	}

	var buf sfnt.Buffer
	name, err := f.Name(&buf, sfnt.NameIDPostScript)
	if err != nil || name == "" {
		name, err = f.Name(&buf, sfnt.NameIDFull)
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// Known reports whether name maps to an entry in the font table, without
// attempting to load it.
func (r *Resolver) Known(name string) bool {
	if i := strings.IndexByte(name, ','); i >= 0 {
		name = name[:i]
	}
	_, ok := r.fileFor[strings.TrimSpace(name)]
	return ok
}

// Metrics holds the vertical font metrics needed for baseline centering.
type Metrics struct {
	UnitsPerEm int
	Ascender   int
	Descender  int // negative below the baseline
}

// ParseMetrics extracts vertical metrics from a TrueType or OpenType font
// program.
func ParseMetrics(data []byte) (*Metrics, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}

	upem := int(f.UnitsPerEm())
	if upem == 0 {
		return nil, fmt.Errorf("font reports zero units per em")
	}

	// Requesting ppem == unitsPerEm makes the 26.6 fixed-point results come
	// back in raw font units.
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(upem) << 6
	m, err := f.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}

	// Descent is positive in sfnt, negative in PDF convention.
	return &Metrics{
		UnitsPerEm: upem,
		Ascender:   int(m.Ascent.Round()),
		Descender:  -int(m.Descent.Round()),
	}, nil
}

// StandardMetrics returns the Helvetica metrics used for fallback rendering
// and for the baseline correction of plain text fields.
func StandardMetrics() *Metrics {
	return &Metrics{
		UnitsPerEm: 1000,
		Ascender:   helveticaAscender,
		Descender:  helveticaDescender,
	}
}

// HeightAt is the ascender-to-descender height in points at the given size,
// the quantity the coordinate mapper centers fields around.
func (m *Metrics) HeightAt(size float64) float64 {
	if m == nil || m.UnitsPerEm == 0 {
		return size
	}
	return float64(m.Ascender-m.Descender) / float64(m.UnitsPerEm) * size
}
