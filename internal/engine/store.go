package engine

import "sync"

// Store holds the live sessions. It is an explicit object handed to the
// Manager rather than package state, so independent managers (tests, shards)
// never share battles.
type Store struct {
	mu       sync.RWMutex
	nextID   uint64
	byID     map[uint64]*Session
	byPublic map[string]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{
		byID:     make(map[uint64]*Session),
		byPublic: make(map[string]*Session),
	}
}

// add assigns the session id and indexes the session.
func (st *Store) add(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.nextID++
	s.ID = st.nextID
	st.byID[s.ID] = s
	if s.PublicID != "" {
		st.byPublic[s.PublicID] = s
	}
}

// Get looks a session up by id.
func (st *Store) Get(id uint64) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.byID[id]
	return s, ok
}

// GetByPublicID looks a session up by its public routing key.
func (st *Store) GetByPublicID(publicID string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.byPublic[publicID]
	return s, ok
}

// Delete removes a session. Missing ids are a no-op, which makes EndBattle
// idempotent.
func (st *Store) Delete(id uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.byID[id]; ok {
		delete(st.byID, id)
		if s.PublicID != "" {
			delete(st.byPublic, s.PublicID)
		}
	}
}

// Len reports how many sessions are live.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID)
}

// Snapshot returns the live sessions at this instant. Callers own the slice;
// the sessions themselves still require Manager operations to mutate.
func (st *Store) Snapshot() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.byID))
	for _, s := range st.byID {
		out = append(out, s)
	}
	return out
}
