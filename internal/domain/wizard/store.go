package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/logger"
)

type storedSession struct {
	session *Session
	touched time.Time
}

// Store keeps sessions in memory and expires them after ttl of inactivity.
// All access goes through the store's lock.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	calc     *pricing.Calculator
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(calc *pricing.Calculator, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*storedSession),
		calc:     calc,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session and returns its view.
func (s *Store) Create() View {
	sess := NewSession(uuid.NewString(), s.calc)
	sess.SetClock(s.now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &storedSession{session: sess, touched: s.now()}
	return sess.View()
}

// Get returns the session's view.
func (s *Store) Get(id string) (View, error) {
	var v View
	err := s.Update(id, func(sess *Session) error {
		v = sess.View()
		return nil
	})
	return v, err
}

// Update runs fn with exclusive access to the session. fn must not block on
// I/O; submissions run between two Update calls.
func (s *Store) Update(id string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	now := s.now()
	if now.Sub(entry.touched) > s.ttl {
		delete(s.sessions, id)
		return ErrSessionNotFound
	}
	entry.touched = now
	return fn(entry.session)
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if now.Sub(entry.touched) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration, lggr logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				lggr.Debugw("Expired wizard sessions removed", "count", n)
			}
		}
	}
}
