package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkform/inkform/internal/model"
)

func TestPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, r := newStoreWithRecipient(t)
	_, err := s.AddField(model.FieldText, model.Position{X: 10, Y: 20}, model.Size{})
	require.NoError(t, err)
	s.SetPages([]model.DocumentPage{{PageIndex: 0, Width: 1000, Height: 1294}})
	s.SetScale(1.5)

	require.NoError(t, s.SaveTo(path))

	restored := NewStore()
	require.NoError(t, restored.LoadFrom(path))

	state := restored.State()
	require.Len(t, state.Recipients, 1)
	assert.Equal(t, r.ID, state.Recipients[0].ID)
	assert.Equal(t, r.ID, state.CurrentRecipient)
	assert.Equal(t, 1.5, state.Scale)

	// Fields and pages are deliberately not persisted.
	assert.Empty(t, state.Fields)
	assert.Empty(t, state.Pages)
	assert.Empty(t, state.SelectedFieldID)
}

func TestLoadFromMissingFile(t *testing.T) {
	s, _ := newStoreWithRecipient(t)

	err := s.LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Len(t, s.State().Recipients, 1, "missing file leaves the store untouched")
}

func TestLoadFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore()
	assert.Error(t, s.LoadFrom(path))
}

func TestLoadClampsScaleAndFixesPointer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	state := `{
		"recipients": [{"id": "r1", "name": "John", "email": "", "color": "#111111"}],
		"currentRecipient": "gone",
		"scale": 9.5
	}`
	require.NoError(t, os.WriteFile(path, []byte(state), 0o600))

	s := NewStore()
	require.NoError(t, s.LoadFrom(path))

	assert.Equal(t, model.MaxScale, s.State().Scale)
	assert.Equal(t, "r1", s.State().CurrentRecipient,
		"dangling pointer falls back to the first recipient")
}
