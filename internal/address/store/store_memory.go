package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"cleanhome/internal/address/models"
	"cleanhome/pkg/platform/sentinel"
	"cleanhome/pkg/requestcontext"
)

// InMemory keeps form sessions in process memory. Expired sessions are
// invisible to readers and removed by DeleteExpired.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.Session
}

// NewInMemory creates an empty in-memory session store.
func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[uuid.UUID]models.Session)}
}

func (s *InMemory) Create(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return sentinel.ErrConflict
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *InMemory) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || session.IsExpired(requestcontext.Now(ctx)) {
		return nil, sentinel.ErrNotFound
	}
	return &session, nil
}

func (s *InMemory) Save(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.ID]
	if !ok || existing.IsExpired(requestcontext.Now(ctx)) {
		return sentinel.ErrNotFound
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *InMemory) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// DeleteExpired removes every session expired at the context's time and
// returns how many were removed.
func (s *InMemory) DeleteExpired(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
