// Package idempotency stores responses of mutating HTTP requests so a
// retried request with the same Idempotency-Key replays the original
// response instead of re-executing a transfer.
package idempotency

import (
	"context"
	"sync"
	"time"
)

// ProcessingMarker is the placeholder value written while the first request
// with a key is still in flight. Callers that read it back must treat the
// key as taken but not yet answerable.
const ProcessingMarker = "processing"

// Store handles idempotency key storage.
type Store interface {
	// CheckAndSet atomically checks if key exists, sets a placeholder if
	// not. Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Remove frees a key whose request produced no storable response, so a
	// later retry may execute again.
	Remove(ctx context.Context, key string) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the in-process Store used when no redis backend is
// configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// CheckAndSet atomically checks if key exists, sets if not.
func (s *MemoryStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	entry, ok := s.entries[key]
	if ok && now.Before(entry.expiresAt) {
		return true, entry.value, nil
	}

	value := response
	if value == nil {
		value = []byte(ProcessingMarker)
	}

	s.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}

	return false, nil, nil
}

// Update updates an existing key with the final response.
func (s *MemoryStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: response, expiresAt: time.Now().Add(ttl)}

	return nil
}

// Remove frees a key.
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

// Sweep drops expired entries. Called periodically by the owner.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
