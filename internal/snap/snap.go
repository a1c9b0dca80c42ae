// Package snap computes candidate snap positions and alignment guides for a
// field being dragged or dropped near other fields on the same page.
// Everything here is pure; the caller applies the adjusted position and
// renders the guide lines for a short fixed duration.
package snap

import (
	"math"

	"github.com/inkform/inkform/internal/model"
)

// Threshold is the document-space pixel distance within which an edge or
// center of another field attracts the dragged field.
const Threshold = 5.0

// Orientation of an alignment guide line.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Line is an alignment guide segment in document space.
type Line struct {
	Orientation Orientation
	// Position is the x coordinate for vertical lines, y for horizontal.
	Position float64
	Start    float64
	End      float64
}

// Result carries the snapped coordinates, if any. A nil coordinate means no
// snap on that axis: use the raw cursor position.
type Result struct {
	X              *float64
	Y              *float64
	AlignmentLines []Line
}

// Calculate finds snap candidates for a field of the given size at pos,
// against every other field on the same page. The dragged field itself is
// excluded by id; pass the empty id when placing a new field.
func Calculate(draggedID string, fields []model.Field, pos model.Position, size model.Size) Result {
	var res Result

	// Candidate stops on each axis for the dragged box: leading edge,
	// center, trailing edge.
	dragXs := [3]float64{pos.X, pos.X + size.Width/2, pos.X + size.Width}
	dragYs := [3]float64{pos.Y, pos.Y + size.Height/2, pos.Y + size.Height}
	// Offset to translate a matched stop back to the box origin.
	offXs := [3]float64{0, size.Width / 2, size.Width}
	offYs := [3]float64{0, size.Height / 2, size.Height}

	bestX := Threshold + 1
	bestY := Threshold + 1

	for _, other := range fields {
		if other.ID == draggedID || other.Position.PageIndex != pos.PageIndex {
			continue
		}

		otherXs := [3]float64{
			other.Position.X,
			other.Position.X + other.Size.Width/2,
			other.Position.X + other.Size.Width,
		}
		otherYs := [3]float64{
			other.Position.Y,
			other.Position.Y + other.Size.Height/2,
			other.Position.Y + other.Size.Height,
		}

		for i, dx := range dragXs {
			for _, ox := range otherXs {
				d := math.Abs(dx - ox)
				if d <= Threshold && d < bestX {
					bestX = d
					snapped := ox - offXs[i]
					res.X = &snapped
					res.AlignmentLines = append(res.AlignmentLines, Line{
						Orientation: Vertical,
						Position:    ox,
						Start:       math.Min(pos.Y, other.Position.Y),
						End:         math.Max(pos.Y+size.Height, other.Position.Y+other.Size.Height),
					})
				}
			}
		}

		for i, dy := range dragYs {
			for _, oy := range otherYs {
				d := math.Abs(dy - oy)
				if d <= Threshold && d < bestY {
					bestY = d
					snapped := oy - offYs[i]
					res.Y = &snapped
					res.AlignmentLines = append(res.AlignmentLines, Line{
						Orientation: Horizontal,
						Position:    oy,
						Start:       math.Min(pos.X, other.Position.X),
						End:         math.Max(pos.X+size.Width, other.Position.X+other.Size.Width),
					})
				}
			}
		}
	}

	// Keep only the guides matching the winning snap on each axis.
	res.AlignmentLines = filterGuides(res.AlignmentLines, res.X, res.Y)
	return res
}

// filterGuides drops guides superseded by a closer snap found later in the
// scan, keeping at most one guide per orientation.
func filterGuides(lines []Line, x, y *float64) []Line {
	var out []Line
	var lastV, lastH *Line
	for i := range lines {
		switch lines[i].Orientation {
		case Vertical:
			lastV = &lines[i]
		case Horizontal:
			lastH = &lines[i]
		}
	}
	if x != nil && lastV != nil {
		out = append(out, *lastV)
	}
	if y != nil && lastH != nil {
		out = append(out, *lastH)
	}
	return out
}
