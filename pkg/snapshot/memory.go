package snapshot

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory snapshot store. It is the default backend and
// suitable for single-server deployments; use RedisStore or S3Store when
// snapshots must survive the process.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*storedSnapshot
	closed    bool
}

type storedSnapshot struct {
	data      []byte
	expiresAt time.Time // zero means no expiration
}

// NewMemoryStore creates an in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*storedSnapshot),
	}
}

// Save stores a snapshot, copying the data to prevent mutations.
func (m *MemoryStore) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	m.snapshots[key] = &storedSnapshot{data: dataCopy, expiresAt: expiresAt}
	return nil
}

// Load retrieves a snapshot if it exists and has not expired.
func (m *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrStoreClosed
	}

	s, ok := m.snapshots[key]
	if !ok {
		return nil, nil
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return nil, nil
	}

	dataCopy := make([]byte, len(s.data))
	copy(dataCopy, s.data)
	return dataCopy, nil
}

// Delete removes a snapshot.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	delete(m.snapshots, key)
	return nil
}

// Close marks the store closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.snapshots = nil
	return nil
}
