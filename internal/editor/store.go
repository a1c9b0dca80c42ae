// Package editor owns the live editing session: the field and recipient
// collections, selection, pagination, zoom and gesture flags, plus the
// undo/redo history over that state.
//
// The store is the single source of truth. All mutation goes through its
// methods, which validate at the boundary and emit advisory notices; views
// subscribe to change callbacks instead of sharing mutable state. The editing
// model is single-threaded and cooperative, so the store is owned by one
// goroutine and does no internal locking.
package editor

import (
	"fmt"

	"github.com/inkform/inkform/internal/logging"
	"github.com/inkform/inkform/internal/model"
)

// NoticeLevel classifies advisory feedback emitted by mutations.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is user-facing feedback about a mutation. Notices are advisory:
// store correctness never depends on them being observed.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// ValidationError is a mutation rejected at the API boundary. State is
// unchanged when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Store holds the editor state and its subscribers.
type Store struct {
	state model.EditorState

	onChange []func()
	onNotice []func(Notice)
}

// NewStore returns an empty session at scale 1.0.
func NewStore() *Store {
	return &Store{
		state: model.EditorState{Scale: 1.0},
	}
}

// Subscribe registers a callback invoked after every state change.
func (s *Store) Subscribe(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// SubscribeNotices registers a callback for advisory notices.
func (s *Store) SubscribeNotices(fn func(Notice)) {
	s.onNotice = append(s.onNotice, fn)
}

func (s *Store) changed() {
	for _, fn := range s.onChange {
		fn()
	}
}

func (s *Store) notify(level NoticeLevel, format string, args ...any) {
	n := Notice{Level: level, Message: fmt.Sprintf(format, args...)}
	for _, fn := range s.onNotice {
		fn(n)
	}
}

// State returns a shallow read-only view of the current state. Callers must
// not retain the slices across mutations.
func (s *Store) State() model.EditorState {
	return s.state
}

// AddField creates a field of the given type at the given document-space
// position, assigned to the current recipient. A zero size selects the
// type's default. Fails when no recipient is selected; the new field becomes
// the selection on success.
func (s *Store) AddField(t model.FieldType, pos model.Position, size model.Size) (model.Field, error) {
	if !t.Valid() {
		err := &ValidationError{Reason: fmt.Sprintf("unknown field type: %q", t)}
		s.notify(NoticeError, "%s", err.Reason)
		return model.Field{}, err
	}
	if s.state.CurrentRecipient == "" {
		err := &ValidationError{Reason: "no recipient selected"}
		s.notify(NoticeError, "%s", err.Reason)
		return model.Field{}, err
	}

	f := model.NewField(t, pos, size, s.state.CurrentRecipient)
	s.state.Fields = append(s.state.Fields, f)
	s.state.SelectedFieldID = f.ID

	s.notify(NoticeSuccess, "%s field added", f.Type)
	s.changed()
	return f, nil
}

// UpdateField merges a partial update by id. An unknown id is a silent
// no-op; this keeps retries from UI event handlers idempotent.
func (s *Store) UpdateField(u model.FieldUpdate) {
	for i := range s.state.Fields {
		if s.state.Fields[i].ID == u.ID {
			u.Apply(&s.state.Fields[i])
			s.changed()
			return
		}
	}
}

// DeleteField removes a field, clearing the selection if it was selected.
// Unknown ids are a silent no-op.
func (s *Store) DeleteField(id string) {
	for i := range s.state.Fields {
		if s.state.Fields[i].ID == id {
			s.state.Fields = append(s.state.Fields[:i], s.state.Fields[i+1:]...)
			if s.state.SelectedFieldID == id {
				s.state.SelectedFieldID = ""
			}
			s.notify(NoticeInfo, "field deleted")
			s.changed()
			return
		}
	}
}

// SelectField marks the field as selected; the empty id clears selection.
func (s *Store) SelectField(id string) {
	s.state.SelectedFieldID = id
	s.changed()
}

// FieldByID looks up a field. The second result reports existence.
func (s *Store) FieldByID(id string) (model.Field, bool) {
	for _, f := range s.state.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return model.Field{}, false
}

// defaultSeed is the recipient set a fresh session starts with, so field
// placement works before any explicit recipient setup.
var defaultSeed = []struct{ name, email string }{
	{"John Doe", "john.doe@example.com"},
	{"Jane Smith", "jane.smith@example.com"},
}

// SeedDefaultRecipients populates an empty session with the default
// recipients and points the current-recipient pointer at the first. A
// session that already has recipients is left untouched.
func (s *Store) SeedDefaultRecipients() {
	if len(s.state.Recipients) > 0 {
		return
	}

	for _, d := range defaultSeed {
		s.state.Recipients = append(s.state.Recipients, model.NewRecipient(d.name, d.email, ""))
	}
	s.state.CurrentRecipient = s.state.Recipients[0].ID
	s.changed()
}

// AddRecipient validates and appends a recipient. The first recipient added
// to an empty session becomes the current recipient.
func (s *Store) AddRecipient(name, email, color string) (model.Recipient, error) {
	r := model.NewRecipient(name, email, color)
	if err := r.Validate(); err != nil {
		s.notify(NoticeError, "invalid recipient: %v", err)
		return model.Recipient{}, &ValidationError{Reason: err.Error()}
	}

	s.state.Recipients = append(s.state.Recipients, r)
	if s.state.CurrentRecipient == "" {
		s.state.CurrentRecipient = r.ID
	}

	s.notify(NoticeSuccess, "recipient %s added", r.Name)
	s.changed()
	return r, nil
}

// UpdateRecipient applies updates to the recipient with the given id.
// Unknown ids are a silent no-op. Pass email as a pointer so it can be
// cleared; empty name or color leave those properties untouched.
func (s *Store) UpdateRecipient(id, name string, email *string, color string) {
	for i := range s.state.Recipients {
		if s.state.Recipients[i].ID == id {
			s.state.Recipients[i] = s.state.Recipients[i].Updated(name, email, color)
			s.changed()
			return
		}
	}
}

// DeleteRecipient removes a recipient. The last remaining recipient cannot
// be deleted. The current-recipient pointer and all fields referencing the
// deleted recipient are reassigned to a survivor, so no field is ever left
// with a dangling recipient id.
func (s *Store) DeleteRecipient(id string) error {
	if len(s.state.Recipients) <= 1 {
		err := &ValidationError{Reason: "cannot delete the last recipient"}
		s.notify(NoticeError, "%s", err.Reason)
		return err
	}

	found := false
	var survivor string
	for _, r := range s.state.Recipients {
		if r.ID == id {
			found = true
		} else if survivor == "" {
			survivor = r.ID
		}
	}
	if !found {
		return nil
	}

	if s.state.CurrentRecipient == id {
		s.state.CurrentRecipient = survivor
	}
	for i := range s.state.Fields {
		if s.state.Fields[i].RecipientID == id {
			s.state.Fields[i].RecipientID = survivor
		}
	}

	kept := s.state.Recipients[:0]
	for _, r := range s.state.Recipients {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.state.Recipients = kept

	s.notify(NoticeInfo, "recipient deleted")
	s.changed()
	return nil
}

// SetCurrentRecipient switches the recipient new fields are assigned to.
// Unknown ids are a silent no-op.
func (s *Store) SetCurrentRecipient(id string) {
	for _, r := range s.state.Recipients {
		if r.ID == id {
			s.state.CurrentRecipient = id
			s.changed()
			return
		}
	}
}

// RecipientByID looks up a recipient. The second result reports existence.
func (s *Store) RecipientByID(id string) (model.Recipient, bool) {
	for _, r := range s.state.Recipients {
		if r.ID == id {
			return r, true
		}
	}
	return model.Recipient{}, false
}

// CurrentRecipient returns the recipient new fields are assigned to.
func (s *Store) CurrentRecipient() (model.Recipient, bool) {
	return s.RecipientByID(s.state.CurrentRecipient)
}

// FieldRecipient resolves the recipient a field belongs to.
func (s *Store) FieldRecipient(fieldID string) (model.Recipient, bool) {
	f, ok := s.FieldByID(fieldID)
	if !ok {
		return model.Recipient{}, false
	}
	return s.RecipientByID(f.RecipientID)
}

// SetPages installs the page geometry of a freshly loaded document.
func (s *Store) SetPages(pages []model.DocumentPage) {
	s.state.Pages = pages
	s.changed()
}

// SetScale sets the display zoom, clamped to the supported range.
func (s *Store) SetScale(scale float64) {
	s.state.Scale = model.ClampScale(scale)
	s.changed()
}

// SetDragging toggles the drag-gesture flag.
func (s *Store) SetDragging(dragging bool) {
	s.state.IsDragging = dragging
	s.changed()
}

// SetResizing toggles the resize-gesture flag.
func (s *Store) SetResizing(resizing bool) {
	s.state.IsResizing = resizing
	s.changed()
}

// Snapshot deep-copies the undoable slice of the state.
func (s *Store) Snapshot() model.Snapshot {
	return model.TakeSnapshot(&s.state)
}

// ApplySnapshot replaces the undoable slice of the state with a deep copy of
// the snapshot, so later mutations cannot reach back into history.
func (s *Store) ApplySnapshot(snap model.Snapshot) {
	s.state.Fields = model.CloneFields(snap.Fields)
	s.state.Recipients = model.CloneRecipients(snap.Recipients)
	s.state.CurrentRecipient = snap.CurrentRecipient

	if s.state.SelectedFieldID != "" {
		if _, ok := s.FieldByID(s.state.SelectedFieldID); !ok {
			s.state.SelectedFieldID = ""
		}
	}

	logging.Logger().Debug("snapshot applied",
		"fields", len(snap.Fields), "recipients", len(snap.Recipients))
	s.changed()
}
