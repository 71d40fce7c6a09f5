package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/textcore/internal/engine/selection"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultLimit is the number of undo entries kept when no limit is given.
const DefaultLimit = 100

// Snapshot is the editor state restored by undo and redo.
type Snapshot struct {
	Text      string
	Selection selection.Selection
}

// entry wraps a snapshot with metadata.
type entry struct {
	snapshot  Snapshot
	name      string
	timestamp time.Time
}

// History holds bounded past and future snapshot stacks.
type History struct {
	mu sync.Mutex

	past   []entry
	future []entry
	limit  int

	// Grouping state
	grouping  bool
	groupName string
	groupSnap *Snapshot
}

// New creates a history keeping at most limit undo entries.
// A limit of zero or less uses DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Push records the state before a mutation and clears the redo stack.
// While grouping, only the first snapshot of the group is recorded.
func (h *History) Push(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		if h.groupSnap == nil {
			h.groupSnap = &s
		}
		h.future = nil
		return
	}
	h.pushLocked(s, "")
}

// pushLocked adds a snapshot without acquiring the lock.
func (h *History) pushLocked(s Snapshot, name string) {
	h.past = append(h.past, entry{snapshot: s, name: name, timestamp: time.Now()})
	h.future = nil
	h.trimLocked()
}

// trimLocked drops the oldest entries beyond the limit.
func (h *History) trimLocked() {
	if excess := len(h.past) - h.limit; excess > 0 {
		h.past = append([]entry(nil), h.past[excess:]...)
	}
}

// Undo pops the most recent snapshot, recording current for redo.
func (h *History) Undo(current Snapshot) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	e := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, entry{snapshot: current, name: e.name, timestamp: time.Now()})
	return e.snapshot, nil
}

// Redo pops the most recently undone snapshot, recording current for undo.
func (h *History) Redo(current Snapshot) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return Snapshot{}, ErrNothingToRedo
	}
	e := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, entry{snapshot: current, name: e.name, timestamp: time.Now()})
	h.trimLocked()
	return e.snapshot, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.UndoCount() > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.RedoCount() > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future)
}

// UndoName returns the group name of the next undo entry, if any.
func (h *History) UndoName() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.past) == 0 {
		return ""
	}
	return h.past[len(h.past)-1].name
}

// Limit returns the maximum number of undo entries.
func (h *History) Limit() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.limit
}

// SetLimit changes the maximum number of undo entries, dropping the oldest
// entries if needed. A limit of zero or less uses DefaultLimit.
func (h *History) SetLimit(limit int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.limit = limit
	h.trimLocked()
}

// Clear removes all history and ends any open group.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.past = nil
	h.future = nil
	h.grouping = false
	h.groupName = ""
	h.groupSnap = nil
}
