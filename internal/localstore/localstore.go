// Package localstore provides the volatile and durable key/value tiers used
// for session identity and the settings cache.
package localstore

import (
	"os"
	"path/filepath"
	"sync"
)

// Store is a small key/value tier. Absence of a key is signaled by ok=false,
// not by an error; durability depends on the implementation.
type Store interface {
	// Get returns the stored value for key.
	Get(key string) ([]byte, bool)
	// Set stores value under key.
	Set(key string, value []byte) error
	// Delete removes key; deleting a missing key is a no-op.
	Delete(key string) error
}

// Memory is the volatile (session-scoped) tier.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory creates an empty volatile store.
func NewMemory() *Memory { return &Memory{m: make(map[string][]byte)} }

// Get returns the stored value for key.
func (s *Memory) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// Set stores value under key.
func (s *Memory) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// FileStore is the durable tier: one file per key under dir, 0600.
type FileStore struct{ dir string }

// NewFileStore creates the directory if needed and returns the durable store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string { return filepath.Join(s.dir, key) }

// Get returns the stored value for key.
func (s *FileStore) Get(key string) ([]byte, bool) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores value under key.
func (s *FileStore) Set(key string, value []byte) error {
	return os.WriteFile(s.path(key), value, 0o600)
}

// Delete removes key.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
