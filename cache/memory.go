// Package cache is a small in-process cache with per-entry expiry.
package cache

import (
	"sync"
	"time"
)

// Memory 内存缓存
// 过期条目在读取时清除
type Memory[V any] struct {
	items map[string]item[V]
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
}

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// NewMemory 创建内存缓存，ttl 为 0 表示永不过期
func NewMemory[V any](ttl time.Duration) *Memory[V] {
	return &Memory[V]{
		items: make(map[string]item[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *Memory[V]) expired(it item[V]) bool {
	return !it.expiresAt.IsZero() && c.now().After(it.expiresAt)
}

// Get 获取缓存
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if c.expired(it) {
		c.deleteExpired(key)
		var zero V
		return zero, false
	}
	return it.value, true
}

// deleteExpired 仅在条目仍过期时删除，避免误删并发 Set 的新值
func (c *Memory[V]) deleteExpired(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.items[key]; ok && c.expired(it) {
		delete(c.items, key)
	}
}

// Set 设置缓存
func (c *Memory[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := item[V]{value: value}
	if c.ttl > 0 {
		it.expiresAt = c.now().Add(c.ttl)
	}
	c.items[key] = it
}

// Delete 删除缓存
func (c *Memory[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len counts stored entries, expired ones included until they are read.
func (c *Memory[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Memory[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item[V])
}

// GetOrLoad 获取缓存，未命中时调用 load 并写入
// load 返回的错误不缓存
func (c *Memory[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}
