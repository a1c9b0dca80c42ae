package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkform/inkform/internal/model"
)

func field(id string, x, y, w, h float64, page int) model.Field {
	return model.Field{
		ID:       id,
		Type:     model.FieldText,
		Position: model.Position{X: x, Y: y, PageIndex: page},
		Size:     model.Size{Width: w, Height: h},
	}
}

func TestNoSnapBeyondThreshold(t *testing.T) {
	others := []model.Field{field("a", 100, 100, 150, 40, 0)}

	res := Calculate("", others, model.Position{X: 300, Y: 300}, model.Size{Width: 150, Height: 40})

	assert.Nil(t, res.X)
	assert.Nil(t, res.Y)
	assert.Empty(t, res.AlignmentLines)
}

func TestSnapToLeftEdge(t *testing.T) {
	others := []model.Field{field("a", 100, 100, 150, 40, 0)}

	// Dragged field's left edge 3px from the other's left edge.
	res := Calculate("", others, model.Position{X: 103, Y: 300}, model.Size{Width: 150, Height: 40})

	require.NotNil(t, res.X)
	assert.Equal(t, 100.0, *res.X)
	assert.Nil(t, res.Y, "no vertical attraction this far away")

	require.Len(t, res.AlignmentLines, 1)
	assert.Equal(t, Vertical, res.AlignmentLines[0].Orientation)
	assert.Equal(t, 100.0, res.AlignmentLines[0].Position)
}

func TestSnapToHorizontalCenter(t *testing.T) {
	others := []model.Field{field("a", 100, 100, 150, 40, 0)} // center y = 120

	// A taller dragged box whose center (y+30 = 123) is the only stop
	// within threshold of the other field's center.
	res := Calculate("", others, model.Position{X: 400, Y: 93}, model.Size{Width: 150, Height: 60})

	require.NotNil(t, res.Y)
	assert.Equal(t, 90.0, *res.Y, "center snap translates back to the box origin")

	require.Len(t, res.AlignmentLines, 1)
	assert.Equal(t, Horizontal, res.AlignmentLines[0].Orientation)
	assert.Equal(t, 120.0, res.AlignmentLines[0].Position)
}

func TestSnapIgnoresSelfAndOtherPages(t *testing.T) {
	fields := []model.Field{
		field("self", 100, 100, 150, 40, 0),
		field("elsewhere", 103, 103, 150, 40, 1),
	}

	res := Calculate("self", fields, model.Position{X: 103, Y: 103}, model.Size{Width: 150, Height: 40})

	assert.Nil(t, res.X, "the dragged field and fields on other pages never attract")
	assert.Nil(t, res.Y)
}

func TestSnapBothAxes(t *testing.T) {
	others := []model.Field{field("a", 100, 100, 150, 40, 0)}

	// Within threshold of the left edge on x and the top edge on y.
	res := Calculate("", others, model.Position{X: 96, Y: 104}, model.Size{Width: 150, Height: 40})

	require.NotNil(t, res.X)
	require.NotNil(t, res.Y)
	assert.Equal(t, 100.0, *res.X)
	assert.Equal(t, 100.0, *res.Y)
	assert.Len(t, res.AlignmentLines, 2, "one guide per snapped axis")
}

func TestSnapPrefersClosestCandidate(t *testing.T) {
	fields := []model.Field{
		field("near", 100, 300, 150, 40, 0),
		field("nearer", 104, 500, 150, 40, 0),
	}

	res := Calculate("", fields, model.Position{X: 105, Y: 700}, model.Size{Width: 150, Height: 40})

	require.NotNil(t, res.X)
	assert.Equal(t, 104.0, *res.X, "the closest edge wins")
}
