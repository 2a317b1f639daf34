package state

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrStateNotFound = errors.New("session state not found")
	ErrNilTranscript = errors.New("transcript is nil")
)

// Store is the persistence contract used by the concierge. Transcripts never
// outlive the process, so the only shipped implementation is in-memory, but
// the interface keeps the conversation pipeline testable.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Transcript, error)
	Save(ctx context.Context, t *Transcript) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore holds transcripts in a mutex-guarded map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Transcript
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Transcript),
	}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*Transcript, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidSession
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrStateNotFound
	}
	return t.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, t *Transcript) error {
	if t == nil {
		return ErrNilTranscript
	}
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[t.SessionID] = t.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
