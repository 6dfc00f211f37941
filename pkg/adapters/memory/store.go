package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/runeport/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with documents.
func NewStore(seed map[string][]byte) *Store {
	s := &Store{
		data: make(map[string][]byte, len(seed)),
	}
	for name, doc := range seed {
		s.data[name] = append([]byte(nil), doc...)
	}
	return s
}

// Save stores a copy of the document.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	copied := append([]byte(nil), data...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a copy of the document so callers cannot mutate the store.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[name]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return append([]byte(nil), data...), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored document names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
