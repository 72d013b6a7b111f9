package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// SessionStore holds the current session identifier for the single-operator
// login. Tokens are signed with a key derived from the configured secret and
// the session id, so rotating the id invalidates every outstanding token.
type SessionStore struct {
	mu sync.RWMutex
	id string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Rotate generates a fresh session id and returns it.
func (s *SessionStore) Rotate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	id := hex.EncodeToString(buf)

	s.mu.Lock()
	s.id = id
	s.mu.Unlock()

	return id, nil
}

// Current returns the active session id, or "" when no session exists.
func (s *SessionStore) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Clear drops the active session, invalidating outstanding tokens.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	s.id = ""
	s.mu.Unlock()
}
