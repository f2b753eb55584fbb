package session

import "sync"

// Provider hands out the per-session view of the external store.
type Provider interface {
	Session(id string) Store
}

type memoryProvider struct {
	mu     sync.Mutex
	stores map[string]Store
}

// NewMemoryProvider keeps every session's store in process memory. State does
// not survive a server restart; used for tests and storeless runs.
func NewMemoryProvider() Provider {
	return &memoryProvider{stores: map[string]Store{}}
}

func (p *memoryProvider) Session(id string) Store {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.stores[id]
	if !ok {
		s = NewMemoryStore()
		p.stores[id] = s
	}
	return s
}
