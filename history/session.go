package history

import (
	"encoding/json"
	"sync"

	"github.com/gogpu/fractal/internal/registry"
)

type kindState struct {
	history     *History
	saved       State
	initialized bool
}

// Session keeps one History and one saved view per fractal kind so that
// switching kinds and back restores where the user left off.
//
// Kind keys are normalized the same way as registry keys.
//
// Thread safety: Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	capacity int
	kinds    map[string]*kindState
}

// NewSession returns an empty session whose histories hold capacity states
// each. A capacity below 1 selects DefaultCapacity.
func NewSession(capacity int) *Session {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Session{capacity: capacity, kinds: make(map[string]*kindState)}
}

func (s *Session) kind(key string) *kindState {
	key = registry.Normalize(key)
	k, ok := s.kinds[key]
	if !ok {
		k = &kindState{history: New(s.capacity)}
		s.kinds[key] = k
	}
	return k
}

// Restore returns the saved view for key. A kind that was never saved gets
// defaults, which also become its saved view and first history entry.
func (s *Session) Restore(key string, defaults State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.kind(key)
	if !k.initialized {
		k.saved = defaults.Clone()
		k.initialized = true
		k.history.Push(defaults)
	}
	return k.saved.Clone()
}

// Initialized reports whether key has a saved view.
func (s *Session) Initialized(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.kinds[registry.Normalize(key)]
	return ok && k.initialized
}

// Save records st as the view to restore for key without touching its
// history.
func (s *Session) Save(key string, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.kind(key)
	k.saved = st.Clone()
	k.initialized = true
}

// Push appends st to the history of key and saves it.
func (s *Session) Push(key string, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.kind(key)
	k.history.Push(st)
	k.saved = st.Clone()
	k.initialized = true
}

// Undo steps back in the history of key. The returned state becomes the
// saved view.
func (s *Session) Undo(key string) (State, bool) {
	return s.step(key, (*History).Undo)
}

// Redo steps forward in the history of key. The returned state becomes the
// saved view.
func (s *Session) Redo(key string) (State, bool) {
	return s.step(key, (*History).Redo)
}

func (s *Session) step(key string, move func(*History) (State, bool)) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.kind(key)
	st, ok := move(k.history)
	if ok {
		k.saved = st.Clone()
	}
	return st, ok
}

// CanUndo reports whether Undo(key) would succeed.
func (s *Session) CanUndo(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind(key).history.CanUndo()
}

// CanRedo reports whether Redo(key) would succeed.
func (s *Session) CanRedo(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind(key).history.CanRedo()
}

// Reset forgets the history and saved view of key. The next Restore returns
// its defaults again.
func (s *Session) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kinds, registry.Normalize(key))
}

type sessionJSON struct {
	Capacity int                 `json:"capacity"`
	Kinds    map[string]kindJSON `json:"kinds"`
}

type kindJSON struct {
	Saved   State   `json:"saved"`
	Entries []State `json:"entries"`
	Cursor  int     `json:"cursor"`
}

// MarshalJSON encodes the saved views and histories of every initialized
// kind.
func (s *Session) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := sessionJSON{Capacity: s.capacity, Kinds: make(map[string]kindJSON, len(s.kinds))}
	for key, k := range s.kinds {
		if !k.initialized {
			continue
		}
		out.Kinds[key] = kindJSON{
			Saved:   k.saved,
			Entries: k.history.entries,
			Cursor:  k.history.cursor,
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON replaces the session contents with a previously encoded
// session. Histories longer than the capacity keep their newest entries.
func (s *Session) UnmarshalJSON(data []byte) error {
	var in sessionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.capacity = in.Capacity
	if s.capacity < 1 {
		s.capacity = DefaultCapacity
	}
	s.kinds = make(map[string]*kindState, len(in.Kinds))
	for key, kj := range in.Kinds {
		h := New(s.capacity)
		entries := kj.Entries
		cursor := kj.Cursor
		if over := len(entries) - s.capacity; over > 0 {
			entries = entries[over:]
			cursor -= over
		}
		for _, e := range entries {
			h.entries = append(h.entries, e.Clone())
		}
		h.cursor = min(max(cursor, 0), len(h.entries)-1)
		s.kinds[registry.Normalize(key)] = &kindState{
			history:     h,
			saved:       kj.Saved,
			initialized: true,
		}
	}
	return nil
}
