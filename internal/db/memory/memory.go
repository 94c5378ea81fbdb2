// Package memory is the process-local counter store. It is the default
// provider and the store used in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory keeps counters in a map guarded by a mutex
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty store
func New() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Connect(ctx context.Context) error    { return nil }
func (m *Memory) Disconnect(ctx context.Context) error { return nil }
func (m *Memory) Ping(ctx context.Context) error       { return nil }

// Get returns the value under key
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set overwrites the value under key
func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Keys lists keys starting with prefix
func (m *Memory) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
