package cache

import (
	"context"
	"sync"
	"time"

	"github.com/goodsflow/backend/internal/domain/shared"
)

// resultEntry holds a stored payload with expiration
type resultEntry struct {
	payload   []byte
	expiresAt time.Time
}

// InMemoryResultStore implements shared.ResultStore using an in-memory map.
// Suitable for single-instance deployments and testing.
type InMemoryResultStore struct {
	mu        sync.RWMutex
	entries   map[string]resultEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryResultStore creates a new in-memory result store.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryResultStore() *InMemoryResultStore {
	store := &InMemoryResultStore{
		entries:  make(map[string]resultEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Get returns the stored payload for a key, and whether it exists.
func (s *InMemoryResultStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		return nil, false, nil // Expired, treat as absent
	}
	return e.payload, true, nil
}

// Put stores the payload under a key with a TTL. First write wins.
func (s *InMemoryResultStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, exists := s.entries[key]; exists && time.Now().Before(e.expiresAt) {
		return nil // Already stored
	}

	s.entries[key] = resultEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryResultStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryResultStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryResultStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryResultStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ shared.ResultStore = (*InMemoryResultStore)(nil)
