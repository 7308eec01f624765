package bot

import "sync"

// memory is the single follow-up slot of one session: the last detailed
// description shown and the entity it described.
type memory struct {
	content string
	subject string
}

// SessionStore keeps one memory slot per session ID behind a mutex, so a
// shared bot instance can serve concurrent transports safely. The transport
// may omit the session ID, in which case everything shares one default slot
// with last-writer-wins semantics.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]memory
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]memory)}
}

// Remember overwrites the slot for the session.
func (s *SessionStore) Remember(sessionID, content, subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memory{content: content, subject: subject}
}

// Consume returns the slot's content and clears it in the same step, so a
// repeated follow-up sees an empty slot.
func (s *SessionStore) Consume(sessionID string) (content, subject string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, exists := s.sessions[sessionID]
	if !exists || m.content == "" {
		return "", "", false
	}
	delete(s.sessions, sessionID)
	return m.content, m.subject, true
}

// Clear empties the slot for the session.
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
