// Package prefs persists per-widget settings in a flat key-value store.
package prefs

import (
	"errors"
	"sync"
)

var (
	ErrInvalidEnvelope    = errors.New("prefs: invalid envelope")
	ErrUnsupportedVersion = errors.New("prefs: unsupported version")
	ErrPasswordRequired   = errors.New("prefs: password required")
	ErrInvalidPassword    = errors.New("prefs: invalid password")
	ErrCorruptPayload     = errors.New("prefs: corrupt payload")
)

// Store is the key-value collaborator. Edit applies a batch of changes
// atomically: either every change in fn is persisted or none is.
type Store interface {
	Lookup(key string) (string, bool, error)
	Edit(fn func(tx Tx)) error
}

type Tx interface {
	Put(key, value string)
	Remove(key string)
}

type mapTx map[string]string

func (t mapTx) Put(key, value string) { t[key] = value }

func (t mapTx) Remove(key string) { delete(t, key) }

// MemoryStore keeps values in memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Lookup(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Edit(fn func(tx Tx)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneValues(s.values)
	fn(mapTx(next))
	s.values = next
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

func cloneValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
