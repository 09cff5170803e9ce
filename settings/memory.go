package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps settings in process memory.
type MemoryStore struct {
	values map[string]map[string]any
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]any)}
}

func (s *MemoryStore) Get(_ context.Context, plugin, key string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[plugin][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, plugin, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values[plugin] == nil {
		s.values[plugin] = make(map[string]any)
	}
	s.values[plugin][key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, plugin, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values[plugin], key)
	return nil
}

// All returns a copy of the plugin's values.
func (s *MemoryStore) All(_ context.Context, plugin string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values[plugin]))
	for k, v := range s.values[plugin] {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) PluginSettings(ctx context.Context, plugin string) (map[string]any, error) {
	return s.All(ctx, plugin)
}
