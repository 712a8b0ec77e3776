package kv

import (
	"context"
	"sync"
)

// Store is the single piece of durable state the operator needs. Everything
// else is recomputed from configuration and relation inputs on every event.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Memory keeps values in process memory. Used in tests and dry runs.
type Memory struct {
	mu     sync.Mutex
	values map[string]string

	// Writes counts Set calls, letting tests assert persistence happens
	// at most once per instance lifetime.
	Writes int
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.Writes++
	return nil
}
