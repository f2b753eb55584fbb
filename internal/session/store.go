package session

import "sync"

// Store is the external persistence medium for one session: a synchronous
// string-keyed, string-valued store. Implementations are best-effort mirrors;
// the engine never treats a store failure as fatal.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

type memoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore returns an in-process Store. Used when the server runs
// without a database, and by tests.
func NewMemoryStore() Store {
	return &memoryStore{m: map[string]string{}}
}

func (s *memoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
