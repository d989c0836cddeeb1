package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/services/sessions"
)

// SessionStore keeps live selection sessions in memory. Sessions are
// ephemeral by design; losing them on restart only means reopening a
// calendar.
type SessionStore struct {
	mu    sync.RWMutex
	items map[string]*sessions.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[string]*sessions.Session)}
}

func (s *SessionStore) Save(ctx context.Context, sess *sessions.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sess.ID] = sess
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*sessions.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.items[id]
	if !ok {
		return nil, sessions.ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return sessions.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *SessionStore) Expire(ctx context.Context, lastActiveBefore time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.items {
		if sess.LastActiveAt().Before(lastActiveBefore) {
			delete(s.items, id)
			removed++
		}
	}
	return removed, nil
}

var _ sessions.Store = (*SessionStore)(nil)
