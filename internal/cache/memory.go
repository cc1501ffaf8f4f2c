package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache holding at most maxEntries entries.
// Expired entries are dropped lazily on Get and swept on Set once the map is
// full; if every entry is still live, the one closest to expiry is evicted.
type Memory struct {
	mu         sync.Mutex
	ttl        time.Duration
	now        func() time.Time
	maxEntries int
	entries    map[string]entry
}

// MemoryOption customises a Memory cache.
type MemoryOption func(*Memory)

// WithClock replaces time.Now; tests use it to move time forward.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithMaxEntries caps the number of stored entries.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) { m.maxEntries = n }
}

// NewMemory returns a Memory cache whose entries live for ttl.
func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		ttl:        ttl,
		now:        time.Now,
		maxEntries: 1024,
		entries:    make(map[string]entry),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.sweep(now)
	}
	m.entries[key] = entry{value: value, expiresAt: now.Add(m.ttl)}
	return nil
}

// sweep drops expired entries, then the oldest live ones until there is room
// for one more. Callers hold mu.
func (m *Memory) sweep(now time.Time) {
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	for len(m.entries) >= max(1, m.maxEntries) {
		var (
			oldest string
			at     time.Time
			first  = true
		)
		for k, e := range m.entries {
			if first || e.expiresAt.Before(at) {
				oldest, at, first = k, e.expiresAt, false
			}
		}
		delete(m.entries, oldest)
	}
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
