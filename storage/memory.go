package storage

import (
	"context"
	"sync"
)

// Memory keeps the version in memory only. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	version string
	saved   bool
}

var _ Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LastSavedVersion(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version, m.saved, nil
}

func (m *Memory) SaveVersion(_ context.Context, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version = version
	m.saved = true
	return nil
}
