package auth

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and for single-node runs
// with SESSION_STORE=memory. Entries never expire.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]SessionData
	flashes  map[string][]Flash
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]SessionData{},
		flashes:  map[string][]Flash{},
	}
}

func (m *MemoryStore) Create(_ context.Context, sessionID string, data SessionData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = data
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*SessionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &data, nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	delete(m.flashes, sessionID)
	return nil
}

func (m *MemoryStore) Extend(context.Context, string) error { return nil }

func (m *MemoryStore) AddFlash(_ context.Context, sessionID string, f Flash) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flashes[sessionID] = append(m.flashes[sessionID], f)
	return nil
}

func (m *MemoryStore) PopFlashes(_ context.Context, sessionID string) ([]Flash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.flashes[sessionID]
	delete(m.flashes, sessionID)
	return f, nil
}
