package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/MRaysa/medai-client/internal/metrics"
)

// Memory is a non-persistent Store used in tests and as a fallback when no
// backend is configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, scope Scope, key string, out interface{}) (bool, error) {
	m.mu.RLock()
	raw, ok := m.entries[scope.keyFor(key)]
	m.mu.RUnlock()

	if !ok {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false, nil
	}

	metrics.CacheHits.WithLabelValues(key).Inc()
	return true, nil
}

func (m *Memory) Save(ctx context.Context, scope Scope, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[scope.keyFor(key)] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(ctx context.Context, scope Scope, key string) error {
	m.mu.Lock()
	delete(m.entries, scope.keyFor(key))
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error {
	return nil
}
