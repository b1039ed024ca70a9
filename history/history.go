package history

import (
	"maps"
	"slices"
)

// DefaultCapacity is the number of states a History keeps when no
// capacity is given.
const DefaultCapacity = 50

// State is one navigation snapshot: the plane rectangle, the iteration
// limit and the kind parameters at the time it was recorded.
type State struct {
	XMin    float64            `json:"x_min"`
	XMax    float64            `json:"x_max"`
	YMin    float64            `json:"y_min"`
	YMax    float64            `json:"y_max"`
	MaxIter int                `json:"max_iter"`
	Params  map[string]float64 `json:"params,omitempty"`
}

// Equal reports whether s and o describe the same view. A nil and an empty
// parameter map are equal.
func (s State) Equal(o State) bool {
	return s.XMin == o.XMin && s.XMax == o.XMax &&
		s.YMin == o.YMin && s.YMax == o.YMax &&
		s.MaxIter == o.MaxIter &&
		maps.Equal(s.Params, o.Params)
}

// Clone returns a copy of s that shares no memory with it.
func (s State) Clone() State {
	s.Params = maps.Clone(s.Params)
	return s
}

// History is a bounded undo/redo list with a cursor.
//
// Pushing a state discards everything after the cursor. When the list grows
// past its capacity the oldest entry is dropped.
//
// Thread safety: History is not safe for concurrent use. Session wraps
// per-kind histories behind a mutex.
type History struct {
	capacity int
	entries  []State
	cursor   int
}

// New returns an empty history holding at most capacity states. A capacity
// below 1 selects DefaultCapacity.
func New(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity, cursor: -1}
}

// Push records s as the newest state. Pushing a state equal to the current
// one does nothing.
func (h *History) Push(s State) {
	if h.cursor >= 0 && h.entries[h.cursor].Equal(s) {
		return
	}
	h.entries = append(h.entries[:h.cursor+1], s.Clone())
	if over := len(h.entries) - h.capacity; over > 0 {
		clear(h.entries[:over])
		h.entries = slices.Delete(h.entries, 0, over)
	}
	h.cursor = len(h.entries) - 1
}

// Undo moves the cursor back one entry and returns the state there.
// It reports false when there is nothing to undo.
func (h *History) Undo() (State, bool) {
	if !h.CanUndo() {
		return State{}, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo moves the cursor forward one entry and returns the state there.
// It reports false when there is nothing to redo.
func (h *History) Redo() (State, bool) {
	if !h.CanRedo() {
		return State{}, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// Current returns the state at the cursor, or false for an empty history.
func (h *History) Current() (State, bool) {
	if h.cursor < 0 {
		return State{}, false
	}
	return h.entries[h.cursor].Clone(), true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of stored states.
func (h *History) Len() int { return len(h.entries) }

// Capacity returns the maximum number of stored states.
func (h *History) Capacity() int { return h.capacity }

// Clear removes every state.
func (h *History) Clear() {
	clear(h.entries)
	h.entries = h.entries[:0]
	h.cursor = -1
}
