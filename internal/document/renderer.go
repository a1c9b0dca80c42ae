package document

import (
	"context"
	"image"
)

// Renderer is the display-side boundary. Rasterization lives outside this
// module; anything that draws pages on screen consumes a Session through
// this interface and supplies its own Render implementation.
type Renderer interface {
	// PageCount reports the number of renderable pages.
	PageCount() int

	// Render rasterizes a page at the given zoom factor. PageNumber is
	// 1-based to match PDF viewer conventions.
	Render(ctx context.Context, pageNumber int, scale float64) (image.Image, error)
}
