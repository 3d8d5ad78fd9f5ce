package storage

import "sync"

// MemoryBackend keeps documents in process memory. It is used by tests and
// by the "memory:" config value.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (b *MemoryBackend) Get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.docs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) Set(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs[key] = append([]byte(nil), data...)
	return nil
}

// SetMany replaces every document under one lock hold.
func (b *MemoryBackend) SetMany(docs map[string][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, data := range docs {
		b.docs[key] = append([]byte(nil), data...)
	}
	return nil
}

func (b *MemoryBackend) Erase(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.docs, key)
	return nil
}

func (b *MemoryBackend) Close() error     { return nil }
func (b *MemoryBackend) Location() string { return "memory" }
