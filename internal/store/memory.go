package store

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[Key][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[Key][]byte)}
}

func (m *MemoryStore) Read(_ context.Context, key Key) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (m *MemoryStore) Write(_ context.Context, key Key, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = clone(value)
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

// Snapshot returns a copy of every present slot.
func (m *MemoryStore) Snapshot() map[Key][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[Key][]byte, len(m.slots))
	for k, v := range m.slots {
		out[k] = clone(v)
	}
	return out
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
