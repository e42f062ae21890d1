package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV used in tests and as a stand-in when no durable
// storage is wanted. Update stages writes on a copy and swaps it in on
// success, giving the same all-or-nothing behavior as the SQLite transaction.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

func (m *MemoryKV) List(_ context.Context) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		value := make([]byte, len(v))
		copy(value, v)
		out[k] = value
	}
	return out, nil
}

func (m *MemoryKV) Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	m.mu.RLock()
	staged := NewMemoryKV()
	for k, v := range m.data {
		value := make([]byte, len(v))
		copy(value, v)
		staged.data[k] = value
	}
	m.mu.RUnlock()

	if err := fn(ctx, staged); err != nil {
		return err
	}

	m.mu.Lock()
	m.data = staged.data
	m.mu.Unlock()
	return nil
}

var _ TxKV = (*MemoryKV)(nil)
