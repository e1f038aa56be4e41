// Package kvstore provides the flat key-value persistence layer for
// the service's JSON blobs, with in-memory and Redis backends.
package kvstore

import (
	"context"
	"sync"

	"github.com/fridgelens/v1/internal/ports/outbound"
)

// Memory is an in-process KVStore. It is the default backend and the
// one used in tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get retrieves a stored blob.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, outbound.ErrNoValue
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a blob, replacing any previous value wholesale.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete removes a key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
