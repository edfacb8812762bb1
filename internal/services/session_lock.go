package services

import "sync"

// sessionLocks hands out one mutex per session id. Entries are dropped once
// no goroutine holds or waits for them.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// lock blocks until the session's mutex is held and returns its release func.
func (s *sessionLocks) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}

func (s *sessionLocks) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
