package store

import (
	"context"
	"sync"

	"vibedezine_server/internal/types"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*types.InterviewSession
}

var _ SessionRepository = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*types.InterviewSession)}
}

func (m *MemoryStore) GetSession(_ context.Context, id string) (*types.InterviewSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errSessionNotFound(id)
	}
	return s.Clone(), nil
}

func (m *MemoryStore) SaveSession(_ context.Context, session *types.InterviewSession) error {
	c := session.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[c.ID] = c
	return nil
}

func (m *MemoryStore) Close() error { return nil }
