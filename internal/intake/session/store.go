package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps live sessions. Entries expire after ttl without a Touch, and the
// least recently used one is dropped past size. A dropped session is abandoned.
type Store struct {
	sessions *expirable.LRU[string, *Session]
}

// NewStore creates a Store.
func NewStore(size int, ttl time.Duration) *Store {
	return &Store{
		sessions: expirable.NewLRU[string, *Session](
			size,
			func(_ string, s *Session) { s.Abandon() },
			ttl,
		),
	}
}

// Put adds or refreshes a session.
func (st *Store) Put(s *Session) {
	st.sessions.Add(s.ID(), s)
}

// Get returns the session and restarts its expiry.
func (st *Store) Get(id string) (*Session, bool) {
	s, ok := st.sessions.Get(id)
	if !ok {
		return nil, false
	}
	st.sessions.Add(id, s)
	return s, true
}

// Delete removes a session, abandoning it.
func (st *Store) Delete(id string) {
	st.sessions.Remove(id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	return st.sessions.Len()
}
