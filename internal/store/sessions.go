package store

import (
	"sync"
	"time"

	"github.com/i474232898/greentrack/internal/common"
)

// session tracks the sequence numbers handed out for one client session and
// the last result accepted for it.
type session[T any] struct {
	issued    uint64
	committed uint64
	resultSeq uint64
	result    T
	hasResult bool
	touched   time.Time
}

// SessionStore is a concurrency-safe in-memory store that orders results
// of overlapping requests from the same session.
type SessionStore[T any] struct {
	mu sync.Mutex

	// key: session id
	data map[string]*session[T]

	// sessions idle for longer than maxAge are dropped (0 = never)
	maxAge time.Duration
	now    func() time.Time
}

// NewSessionStore creates a store. If maxAge is <= 0, sessions never expire.
func NewSessionStore[T any](maxAge time.Duration) *SessionStore[T] {
	return &SessionStore[T]{
		data:   make(map[string]*session[T]),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// NextSequence hands out the next sequence number for a session, starting at 1.
func (s *SessionStore[T]) NextSequence(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()

	sess, ok := s.data[id]
	if !ok {
		sess = &session[T]{}
		s.data[id] = sess
	}
	sess.issued++
	sess.touched = s.now()
	return sess.issued
}

// Commit stores result unless a later sequence has already been committed.
// It reports whether the result was accepted.
func (s *SessionStore[T]) Commit(id string, seq uint64, result T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok || seq == 0 || seq > sess.issued || seq <= sess.committed {
		return false
	}
	sess.committed = seq
	sess.resultSeq = seq
	sess.result = result
	sess.hasResult = true
	sess.touched = s.now()
	return true
}

// Abandon records that seq finished without a result. Results of earlier
// sequences are rejected from then on; the stored result is kept.
func (s *SessionStore[T]) Abandon(id string, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok || seq == 0 || seq > sess.issued || seq <= sess.committed {
		return
	}
	sess.committed = seq
	sess.touched = s.now()
}

// Latest returns the last accepted result for a session and its sequence.
func (s *SessionStore[T]) Latest(id string) (T, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	sess, ok := s.data[id]
	if !ok || !sess.hasResult {
		return zero, 0, common.ErrNotFound
	}
	return sess.result, sess.resultSeq, nil
}

// Len reports the number of tracked sessions.
func (s *SessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *SessionStore[T]) evictLocked() {
	if s.maxAge <= 0 {
		return
	}
	cutoff := s.now().Add(-s.maxAge)
	for id, sess := range s.data {
		if sess.touched.Before(cutoff) {
			delete(s.data, id)
		}
	}
}
