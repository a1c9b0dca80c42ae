package editor

import "github.com/inkform/inkform/internal/model"

// maxHistoryDepth bounds the undo stack.
const maxHistoryDepth = 20

// History provides linear undo/redo over the store's (fields, recipients,
// currentRecipient) triple. Snapshots are deep copies; mutating live state
// never alters a stored entry.
//
// Coalescing is the caller's job: a whole drag gesture is one SaveState call
// at gesture end, never one per intermediate move.
type History struct {
	store  *Store
	past   []model.Snapshot
	future []model.Snapshot
}

// NewHistory creates an empty history bound to the store.
func NewHistory(store *Store) *History {
	return &History{store: store}
}

// SaveState pushes the current state onto the past stack, clears any redo
// branch, and truncates the stack to the most recent entries.
func (h *History) SaveState() {
	h.past = append(h.past, h.store.Snapshot())
	if len(h.past) > maxHistoryDepth {
		h.past = h.past[len(h.past)-maxHistoryDepth:]
	}
	h.future = nil
}

// Undo restores the most recent past snapshot, saving the current state for
// redo. No-op when there is nothing to undo.
func (h *History) Undo() {
	if len(h.past) == 0 {
		return
	}

	current := h.store.Snapshot()
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]

	h.store.ApplySnapshot(prev)
	h.future = append([]model.Snapshot{current}, h.future...)
}

// Redo re-applies the earliest future snapshot, saving the current state for
// undo. No-op when there is nothing to redo.
func (h *History) Redo() {
	if len(h.future) == 0 {
		return
	}

	current := h.store.Snapshot()
	next := h.future[0]
	h.future = h.future[1:]

	h.store.ApplySnapshot(next)
	h.past = append(h.past, current)
}

// CanUndo reports whether the past stack is non-empty.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether the future stack is non-empty.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Clear drops both stacks, typically on document load.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}
