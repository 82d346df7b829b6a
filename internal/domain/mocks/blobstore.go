// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/ersonp/feedback-curator/internal/domain/ports"
)

// BlobStore is an in-memory mock implementation of ports.BlobStore.
// Objects live in a bucket→key→bytes map; error fields force failures.
type BlobStore struct {
	mu      sync.Mutex
	objects map[string]map[string][]byte

	PutErr    error
	GetErr    error
	ListErr   error
	DeleteErr error

	// Deleted records every key passed to Delete, in order.
	Deleted []string
}

// NewBlobStore creates an empty mock store.
func NewBlobStore() *BlobStore {
	return &BlobStore{objects: make(map[string]map[string][]byte)}
}

// Seed places an object in the store without going through Put.
func (m *BlobStore) Seed(bucket, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects[bucket] == nil {
		m.objects[bucket] = make(map[string][]byte)
	}
	m.objects[bucket][key] = data
}

// Put stores the object or returns the configured error.
func (m *BlobStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Seed(bucket, key, data)
	return nil
}

// Get returns the object bytes, the configured error, or ports.ErrNotFound.
func (m *BlobStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket][key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return data, nil
}

// List returns all keys under the prefix in ascending order.
func (m *BlobStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects[bucket] {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the object or returns the configured error.
func (m *BlobStore) Delete(ctx context.Context, bucket, key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects[bucket], key)
	m.Deleted = append(m.Deleted, key)
	return nil
}
