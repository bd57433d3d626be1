// Package transcript keeps per-session conversation history in memory.
// Sessions idle past the TTL are evicted on the next access, so the store
// needs no background sweeper.
package transcript

import (
	"sync"
	"time"

	"github.com/oncampus/gearbot/internal/llm"
)

// DefaultTTL is how long an idle session's history is retained.
const DefaultTTL = 24 * time.Hour

type session struct {
	messages []llm.Message
	lastSeen time.Time
}

// Store holds conversation transcripts keyed by session ID. Safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a transcript store. A non-positive ttl falls back to
// DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Append adds messages to the session's transcript, creating the session if
// needed.
func (s *Store) Append(sessionID string, msgs ...llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	sess.messages = append(sess.messages, msgs...)
	sess.lastSeen = s.now()
}

// History returns a copy of the session's transcript in append order.
func (s *Store) History(sessionID string) []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	sess.lastSeen = s.now()
	out := make([]llm.Message, len(sess.messages))
	copy(out, sess.messages)
	return out
}

// Clear discards the session's transcript.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports how many sessions currently hold history.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	return len(s.sessions)
}

// prune drops sessions idle past the TTL. Callers must hold mu.
func (s *Store) prune() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
