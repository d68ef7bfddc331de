package repository

import (
	"context"
	"sync"

	"github.com/kitbuilder587/bookfinder/internal/domain"
	"github.com/kitbuilder587/bookfinder/internal/search"
)

type MockSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string][]search.Item

	SaveErr   error
	GetErr    error
	PingErr   error
	SaveCalls int
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string][]search.Item),
	}
}

func (m *MockSessionRepository) SaveResults(ctx context.Context, sessionID string, items []search.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}

	stored := make([]search.Item, len(items))
	copy(stored, items)
	m.sessions[sessionID] = stored
	return nil
}

func (m *MockSessionRepository) GetResults(ctx context.Context, sessionID string) ([]search.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}

	items, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return items, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

func (m *MockSessionRepository) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockSessionRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
