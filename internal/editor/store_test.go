package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkform/inkform/internal/model"
)

func newStoreWithRecipient(t *testing.T) (*Store, model.Recipient) {
	t.Helper()
	s := NewStore()
	r, err := s.AddRecipient("John Doe", "john@example.com", "")
	require.NoError(t, err)
	return s, r
}

func TestAddFieldRequiresRecipient(t *testing.T) {
	s := NewStore()

	var notices []Notice
	s.SubscribeNotices(func(n Notice) { notices = append(notices, n) })

	_, err := s.AddField(model.FieldText, model.Position{X: 10, Y: 20}, model.Size{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, s.State().Fields, "state unchanged on rejection")
	require.NotEmpty(t, notices)
	assert.Equal(t, NoticeError, notices[len(notices)-1].Level)
}

func TestAddFieldAssignsCurrentRecipientAndSelects(t *testing.T) {
	s, r := newStoreWithRecipient(t)

	f, err := s.AddField(model.FieldSignature, model.Position{X: 10, Y: 20}, model.Size{})
	require.NoError(t, err)

	assert.Equal(t, r.ID, f.RecipientID)
	assert.Equal(t, f.ID, s.State().SelectedFieldID, "new field becomes the selection")
	assert.Len(t, s.State().Fields, 1)
}

func TestAddFieldRejectsUnknownType(t *testing.T) {
	s, _ := newStoreWithRecipient(t)

	_, err := s.AddField(model.FieldType("hologram"), model.Position{}, model.Size{})
	assert.Error(t, err)
	assert.Empty(t, s.State().Fields)
}

func TestUpdateFieldUnknownIDIsNoOp(t *testing.T) {
	s, _ := newStoreWithRecipient(t)
	f, err := s.AddField(model.FieldText, model.Position{}, model.Size{})
	require.NoError(t, err)

	changes := 0
	s.Subscribe(func() { changes++ })

	value := "x"
	s.UpdateField(model.FieldUpdate{ID: "missing", Value: &value})

	assert.Zero(t, changes, "unknown id must not fire change callbacks")
	got, ok := s.FieldByID(f.ID)
	require.True(t, ok)
	assert.Empty(t, got.Value)
}

func TestDeleteFieldClearsSelection(t *testing.T) {
	s, _ := newStoreWithRecipient(t)
	f, err := s.AddField(model.FieldText, model.Position{}, model.Size{})
	require.NoError(t, err)
	require.Equal(t, f.ID, s.State().SelectedFieldID)

	s.DeleteField(f.ID)

	assert.Empty(t, s.State().Fields)
	assert.Empty(t, s.State().SelectedFieldID)

	// Deleting again is a harmless no-op.
	s.DeleteField(f.ID)
}

func TestAddRecipientValidation(t *testing.T) {
	s := NewStore()

	_, err := s.AddRecipient("   ", "", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, s.State().Recipients)

	_, err = s.AddRecipient("John", "bogus-email", "")
	assert.Error(t, err)
}

func TestSeedDefaultRecipients(t *testing.T) {
	s := NewStore()
	s.SeedDefaultRecipients()

	recipients := s.State().Recipients
	require.Len(t, recipients, 2)
	assert.Equal(t, "John Doe", recipients[0].Name)
	assert.Equal(t, "Jane Smith", recipients[1].Name)
	assert.Equal(t, recipients[0].ID, s.State().CurrentRecipient, "first seed is current")

	// Fields can be placed immediately after seeding.
	_, err := s.AddField(model.FieldText, model.Position{X: 10, Y: 20}, model.Size{})
	assert.NoError(t, err)
}

func TestSeedDefaultRecipientsIdempotent(t *testing.T) {
	s := NewStore()
	s.SeedDefaultRecipients()
	s.SeedDefaultRecipients()
	assert.Len(t, s.State().Recipients, 2)
}

func TestSeedDefaultRecipientsSkipsPopulatedSession(t *testing.T) {
	s, r := newStoreWithRecipient(t)
	s.SeedDefaultRecipients()

	recipients := s.State().Recipients
	require.Len(t, recipients, 1)
	assert.Equal(t, r.ID, recipients[0].ID)
}

func TestFirstRecipientBecomesCurrent(t *testing.T) {
	s := NewStore()

	r1, err := s.AddRecipient("John", "", "")
	require.NoError(t, err)
	assert.Equal(t, r1.ID, s.State().CurrentRecipient)

	r2, err := s.AddRecipient("Jane", "", "")
	require.NoError(t, err)
	assert.Equal(t, r1.ID, s.State().CurrentRecipient, "adding more recipients keeps the pointer")

	s.SetCurrentRecipient(r2.ID)
	assert.Equal(t, r2.ID, s.State().CurrentRecipient)

	s.SetCurrentRecipient("missing")
	assert.Equal(t, r2.ID, s.State().CurrentRecipient, "unknown id is a no-op")
}

func TestDeleteLastRecipientRejected(t *testing.T) {
	s, r := newStoreWithRecipient(t)

	err := s.DeleteRecipient(r.ID)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, s.State().Recipients, 1, "state unchanged")
	assert.Equal(t, r.ID, s.State().CurrentRecipient)
}

func TestDeleteRecipientReassignsFieldsAndPointer(t *testing.T) {
	s, r1 := newStoreWithRecipient(t)
	r2, err := s.AddRecipient("Jane", "", "")
	require.NoError(t, err)

	// Two fields assigned to r1 (the current recipient).
	f1, err := s.AddField(model.FieldText, model.Position{}, model.Size{})
	require.NoError(t, err)
	f2, err := s.AddField(model.FieldDate, model.Position{}, model.Size{})
	require.NoError(t, err)

	require.NoError(t, s.DeleteRecipient(r1.ID))

	assert.Equal(t, r2.ID, s.State().CurrentRecipient, "pointer moves to the survivor")
	for _, id := range []string{f1.ID, f2.ID} {
		f, ok := s.FieldByID(id)
		require.True(t, ok)
		assert.Equal(t, r2.ID, f.RecipientID, "no field may dangle")
	}
	assert.Len(t, s.State().Recipients, 1)

	// Unknown id deletion is a no-op once more than one recipient exists.
	_, err = s.AddRecipient("Extra", "", "")
	require.NoError(t, err)
	assert.NoError(t, s.DeleteRecipient("missing"))
	assert.Len(t, s.State().Recipients, 2)
}

func TestFieldRecipientResolution(t *testing.T) {
	s, r := newStoreWithRecipient(t)
	f, err := s.AddField(model.FieldText, model.Position{}, model.Size{})
	require.NoError(t, err)

	got, ok := s.FieldRecipient(f.ID)
	require.True(t, ok)
	assert.Equal(t, r.ID, got.ID)

	_, ok = s.FieldRecipient("missing")
	assert.False(t, ok)
}

func TestSetScaleClamps(t *testing.T) {
	s := NewStore()

	s.SetScale(0.1)
	assert.Equal(t, model.MinScale, s.State().Scale)

	s.SetScale(5.0)
	assert.Equal(t, model.MaxScale, s.State().Scale)

	s.SetScale(1.25)
	assert.Equal(t, 1.25, s.State().Scale)
}

func TestGestureFlags(t *testing.T) {
	s := NewStore()

	s.SetDragging(true)
	assert.True(t, s.State().IsDragging)
	s.SetDragging(false)
	s.SetResizing(true)
	assert.True(t, s.State().IsResizing)
	assert.False(t, s.State().IsDragging)
}

func TestSnapshotIsolation(t *testing.T) {
	s, _ := newStoreWithRecipient(t)
	f, err := s.AddField(model.FieldText, model.Position{X: 1}, model.Size{})
	require.NoError(t, err)

	snap := s.Snapshot()

	value := "mutated later"
	s.UpdateField(model.FieldUpdate{ID: f.ID, Value: &value})

	require.Len(t, snap.Fields, 1)
	assert.Empty(t, snap.Fields[0].Value, "snapshot must not see later mutations")
}

func TestApplySnapshotClearsStaleSelection(t *testing.T) {
	s, _ := newStoreWithRecipient(t)
	empty := s.Snapshot()

	f, err := s.AddField(model.FieldText, model.Position{}, model.Size{})
	require.NoError(t, err)
	require.Equal(t, f.ID, s.State().SelectedFieldID)

	s.ApplySnapshot(empty)

	assert.Empty(t, s.State().Fields)
	assert.Empty(t, s.State().SelectedFieldID, "selection of a vanished field is cleared")
}
