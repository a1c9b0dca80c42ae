package editor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/inkform/inkform/internal/logging"
	"github.com/inkform/inkform/internal/model"
)

// PersistedState is the slice of editor state that survives a restart.
// Fields and pages are deliberately excluded: a fresh process always starts
// with no document loaded, so persisted fields would dangle.
type PersistedState struct {
	Recipients       []model.Recipient `json:"recipients"`
	CurrentRecipient string            `json:"currentRecipient"`
	Scale            float64           `json:"scale"`
}

// SaveTo writes the persistable slice of the store's state to path.
func (s *Store) SaveTo(path string) error {
	p := PersistedState{
		Recipients:       model.CloneRecipients(s.state.Recipients),
		CurrentRecipient: s.state.CurrentRecipient,
		Scale:            s.state.Scale,
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode editor state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write editor state: %w", err)
	}
	return nil
}

// LoadFrom rehydrates recipients, the current-recipient pointer and the zoom
// factor from path. Fields and pages reset to empty regardless of what the
// file contains. A missing file leaves the store untouched.
func (s *Store) LoadFrom(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read editor state: %w", err)
	}

	var p PersistedState
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode editor state: %w", err)
	}

	s.state.Fields = nil
	s.state.Pages = nil
	s.state.SelectedFieldID = ""
	s.state.Recipients = p.Recipients
	s.state.CurrentRecipient = p.CurrentRecipient
	s.state.Scale = model.ClampScale(p.Scale)

	// The pointer must resolve; fall back to the first recipient.
	if _, ok := s.RecipientByID(s.state.CurrentRecipient); !ok {
		s.state.CurrentRecipient = ""
		if len(s.state.Recipients) > 0 {
			s.state.CurrentRecipient = s.state.Recipients[0].ID
		}
	}

	logging.Logger().Debug("editor state rehydrated",
		"recipients", len(p.Recipients), "scale", s.state.Scale)
	s.changed()
	return nil
}
