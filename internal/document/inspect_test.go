package document

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncatePreview(t *testing.T) {
	short := "a short preview"
	assert.Equal(t, short, truncatePreview(short))

	long := strings.Repeat("x", maxPreviewLength+100)
	got := truncatePreview(long)
	assert.Equal(t, strings.Repeat("x", maxPreviewLength)+"…", got)
}

func TestTruncatePreviewKeepsRunesIntact(t *testing.T) {
	// Fill the preview with 3-byte runes so the byte limit falls inside one.
	long := strings.Repeat("日", maxPreviewLength)
	got := truncatePreview(long)

	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.LessOrEqual(t, len(got), maxPreviewLength+len("…"))
	assert.True(t, strings.HasSuffix(got, "…"))
}
