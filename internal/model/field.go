// Package model defines the entities of an editing session: fields placed on
// document pages, the recipients they are assigned to, and the aggregate
// editor state. Types here carry value semantics; all invariants are enforced
// at the mutation boundary (internal/editor), not inside these types.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// FieldType enumerates the closed set of field kinds. Only Text, Date,
// Signature and Initials have an export representation; the remaining types
// are structurally supported extension points with no render mapping.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldSignature FieldType = "signature"
	FieldInitials  FieldType = "initials"
	FieldDate      FieldType = "date"
	FieldCheckbox  FieldType = "checkbox"
	FieldRadio     FieldType = "radio"
	FieldDropdown  FieldType = "dropdown"
	FieldCard      FieldType = "card"
	FieldFile      FieldType = "file"
	FieldStamp     FieldType = "stamp"
)

// Valid reports whether t is a member of the field type enumeration.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldSignature, FieldInitials, FieldDate,
		FieldCheckbox, FieldRadio, FieldDropdown, FieldCard, FieldFile, FieldStamp:
		return true
	}
	return false
}

// Exportable reports whether fields of this type have a defined export
// representation in the output PDF.
func (t FieldType) Exportable() bool {
	switch t {
	case FieldText, FieldDate, FieldSignature, FieldInitials:
		return true
	}
	return false
}

// Position locates a field in document space: unscaled pixels referenced to
// the page's render width, origin top-left, y increasing downward. PageIndex
// is 0-based.
type Position struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	PageIndex int     `json:"pageIndex"`
}

// Size is a field's extent in document-space pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Minimum field dimensions enforced during resize gestures.
const (
	MinFieldWidth  = 50.0
	MinFieldHeight = 30.0
)

// Field is a positioned, typed, user-editable overlay element bound to
// exactly one recipient.
type Field struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Position    Position  `json:"position"`
	Size        Size      `json:"size"`
	RecipientID string    `json:"recipientId"`

	Value      string `json:"value,omitempty"`
	Label      string `json:"label,omitempty"`
	Required   bool   `json:"required,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	FontColor  string `json:"fontColor,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	FontStyle  string `json:"fontStyle,omitempty"`
}

// NewField creates a field of the given type at the given position, assigned
// to the given recipient, with a fresh unique id. Size defaults per field
// type when the zero value is passed.
func NewField(t FieldType, pos Position, size Size, recipientID string) Field {
	if size == (Size{}) {
		size = DefaultFieldSize(t)
	}
	return Field{
		ID:          fmt.Sprintf("field-%s", uuid.NewString()),
		Type:        t,
		Position:    pos,
		Size:        size,
		RecipientID: recipientID,
	}
}

// DefaultFieldSize returns the placement size for a field type. Signature and
// initials fields start larger than plain text fields.
func DefaultFieldSize(t FieldType) Size {
	switch t {
	case FieldSignature:
		return Size{Width: 200, Height: 80}
	case FieldInitials:
		return Size{Width: 100, Height: 50}
	default:
		return Size{Width: 150, Height: 40}
	}
}

// FieldUpdate is a partial field mutation merged by ID. Nil members are left
// untouched; last writer wins.
type FieldUpdate struct {
	ID         string
	Position   *Position
	Size       *Size
	Value      *string
	Label      *string
	Required   *bool
	FontFamily *string
	FontSize   *int
	FontColor  *string
	FontWeight *string
	FontStyle  *string
}

// Apply merges the update into f.
func (u FieldUpdate) Apply(f *Field) {
	if u.Position != nil {
		f.Position = *u.Position
	}
	if u.Size != nil {
		s := *u.Size
		if s.Width < MinFieldWidth {
			s.Width = MinFieldWidth
		}
		if s.Height < MinFieldHeight {
			s.Height = MinFieldHeight
		}
		f.Size = s
	}
	if u.Value != nil {
		f.Value = *u.Value
	}
	if u.Label != nil {
		f.Label = *u.Label
	}
	if u.Required != nil {
		f.Required = *u.Required
	}
	if u.FontFamily != nil {
		f.FontFamily = *u.FontFamily
	}
	if u.FontSize != nil {
		f.FontSize = *u.FontSize
	}
	if u.FontColor != nil {
		f.FontColor = *u.FontColor
	}
	if u.FontWeight != nil {
		f.FontWeight = *u.FontWeight
	}
	if u.FontStyle != nil {
		f.FontStyle = *u.FontStyle
	}
}

// CloneFields deep-copies a field list. Field itself has no reference-typed
// members, so a slice copy yields value semantics.
func CloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}
