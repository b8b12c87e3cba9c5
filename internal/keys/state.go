package keys

import (
	"context"
	"sync"
)

// StateStore persists the current key index per service.
type StateStore interface {
	// GetKeyIndex returns the persisted index, 0 if the service was never used.
	GetKeyIndex(ctx context.Context, service string) (int, error)
	// CompareAndSwapKeyIndex sets the index to next only if it still equals old.
	CompareAndSwapKeyIndex(ctx context.Context, service string, old, next int) (bool, error)
}

// MemoryState is a process-local StateStore.
type MemoryState struct {
	mu      sync.Mutex
	indexes map[string]int
}

// NewMemoryState creates an empty MemoryState.
func NewMemoryState() *MemoryState {
	return &MemoryState{indexes: make(map[string]int)}
}

// GetKeyIndex implements StateStore.
func (m *MemoryState) GetKeyIndex(_ context.Context, service string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexes[service], nil
}

// CompareAndSwapKeyIndex implements StateStore.
func (m *MemoryState) CompareAndSwapKeyIndex(_ context.Context, service string, old, next int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexes[service] != old {
		return false, nil
	}
	m.indexes[service] = next
	return true, nil
}
