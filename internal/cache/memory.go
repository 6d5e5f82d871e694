package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process cache. Entries expire lazily on the next Get;
// it suits single-instance deployments and tests.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	summary   string
	expiresAt time.Time // zero means no expiry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(ctx context.Context, key Key) (string, bool, error) {
	k := key.String()

	m.mu.RLock()
	entry, ok := m.entries[k]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, k)
		m.mu.Unlock()
		return "", false, nil
	}
	return entry.summary, true, nil
}

func (m *Memory) Set(ctx context.Context, key Key, summary string, ttl time.Duration) error {
	entry := memoryEntry{summary: summary}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key.String()] = entry
	m.mu.Unlock()
	return nil
}
