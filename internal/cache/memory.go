package cache

import (
	"context"
	"sync"
	"time"

	"orderdesk/internal/metrics"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Cache with per-resource key tracking so Invalidate
// drops exactly the keys a resource owns.
type Memory struct {
	mu      sync.Mutex
	entries map[Key]entry
	byRes   map[string]map[Key]struct{}
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[Key]entry),
		byRes:   make(map[string]map[Key]struct{}),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key Key) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || m.now().After(e.expiresAt) {
		if ok {
			m.evict(key)
		}
		metrics.CacheHits.WithLabelValues(key.Resource, "miss").Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(key.Resource, "hit").Inc()
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key Key, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
	if m.byRes[key.Resource] == nil {
		m.byRes[key.Resource] = make(map[Key]struct{})
	}
	m.byRes[key.Resource][key] = struct{}{}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, resources ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, res := range resources {
		for key := range m.byRes[res] {
			delete(m.entries, key)
		}
		delete(m.byRes, res)
	}
	return nil
}

func (m *Memory) evict(key Key) {
	delete(m.entries, key)
	if keys := m.byRes[key.Resource]; keys != nil {
		delete(keys, key)
	}
}
