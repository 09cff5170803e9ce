package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// FeatureRegistry holds typed game features published by plugins.
// Features are keyed by "pluginName.feature" (e.g. "hello.feature").
type FeatureRegistry struct {
	features map[string]any
	owners   map[string]string
	mu       sync.RWMutex
}

// NewFeatureRegistry creates an empty feature registry.
func NewFeatureRegistry() *FeatureRegistry {
	return &FeatureRegistry{
		features: make(map[string]any),
		owners:   make(map[string]string),
	}
}

// RegisterFeature stores a feature on behalf of owner. Returns error if the
// key is empty or already taken.
func (fr *FeatureRegistry) RegisterFeature(owner, key string, feature any) error {
	if key == "" {
		return fmt.Errorf("feature key cannot be empty")
	}
	if feature == nil {
		return fmt.Errorf("feature %q is nil", key)
	}

	fr.mu.Lock()
	defer fr.mu.Unlock()

	if prev, exists := fr.owners[key]; exists {
		return fmt.Errorf("feature %q already registered by %q", key, prev)
	}
	fr.features[key] = feature
	fr.owners[key] = owner
	return nil
}

// Has returns true if a feature is registered under the given key.
func (fr *FeatureRegistry) Has(key string) bool {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	_, exists := fr.features[key]
	return exists
}

// Owner returns the plugin that registered key.
func (fr *FeatureRegistry) Owner(key string) (string, bool) {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	owner, ok := fr.owners[key]
	return owner, ok
}

// Keys returns all feature keys, sorted alphabetically.
func (fr *FeatureRegistry) Keys() []string {
	fr.mu.RLock()
	defer fr.mu.RUnlock()

	keys := make([]string, 0, len(fr.features))
	for k := range fr.features {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ResolveFeature retrieves a feature with compile-time type safety.
func ResolveFeature[T any](fr *FeatureRegistry, key string) (T, error) {
	fr.mu.RLock()
	defer fr.mu.RUnlock()

	var zero T
	f, exists := fr.features[key]
	if !exists {
		return zero, fmt.Errorf("feature %q not found", key)
	}

	typed, ok := f.(T)
	if !ok {
		return zero, fmt.Errorf("feature %q is %T, want %T", key, f, zero)
	}
	return typed, nil
}

// MustResolveFeature retrieves a feature, panicking if not found or wrong type.
func MustResolveFeature[T any](fr *FeatureRegistry, key string) T {
	f, err := ResolveFeature[T](fr, key)
	if err != nil {
		panic(err)
	}
	return f
}
