package model

// DocumentPage holds a page's native dimensions in document-space pixels at
// scale 1.0. Computed once at load time, immutable thereafter.
type DocumentPage struct {
	PageIndex int     `json:"pageIndex"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// Display zoom bounds. Scale is purely a view concern and never leaks into
// document-space coordinates.
const (
	MinScale = 0.5
	MaxScale = 2.0
)

// ClampScale bounds a zoom factor to the supported range.
func ClampScale(scale float64) float64 {
	if scale < MinScale {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}

// EditorState is the aggregate owned by the editor store. Fields are kept in
// creation order; Recipients is never empty once seeded.
type EditorState struct {
	Fields           []Field        `json:"fields"`
	SelectedFieldID  string         `json:"selectedFieldId"`
	Recipients       []Recipient    `json:"recipients"`
	CurrentRecipient string         `json:"currentRecipient"`
	Pages            []DocumentPage `json:"pages"`
	Scale            float64        `json:"scale"`
	IsDragging       bool           `json:"isDragging"`
	IsResizing       bool           `json:"isResizing"`
}

// Snapshot is an immutable deep copy of the undoable slice of editor state.
type Snapshot struct {
	Fields           []Field
	Recipients       []Recipient
	CurrentRecipient string
}

// TakeSnapshot deep-copies the undoable parts of the state.
func TakeSnapshot(s *EditorState) Snapshot {
	return Snapshot{
		Fields:           CloneFields(s.Fields),
		Recipients:       CloneRecipients(s.Recipients),
		CurrentRecipient: s.CurrentRecipient,
	}
}
