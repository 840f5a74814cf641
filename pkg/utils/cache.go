package utils

import (
	"sync"
	"time"
)

// cacheItem 内部结构，包含值和过期时间
type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

// TTLCache 带过期时间的内存缓存，并发安全
// 读取时懒删除，定时任务调用 Purge 清理剩余过期项
type TTLCache[V any] struct {
	items sync.Map
	ttl   time.Duration
	now   func() time.Time
}

// NewTTLCache ttl <= 0 时默认 10 分钟
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &TTLCache[V]{ttl: ttl, now: time.Now}
}

// Set 写入并刷新过期时间
func (c *TTLCache[V]) Set(key string, value V) {
	c.items.Store(key, cacheItem[V]{
		value:      value,
		expiration: c.now().Add(c.ttl),
	})
}

// Get 获取缓存并验证是否过期
func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.items.Load(key)
	if !ok {
		return zero, false
	}

	item := val.(cacheItem[V])
	if c.now().After(item.expiration) {
		c.items.Delete(key) // 懒删除
		return zero, false
	}
	return item.value, true
}

// Touch 续期，key 不存在或已过期时返回 false
func (c *TTLCache[V]) Touch(key string) bool {
	v, ok := c.Get(key)
	if ok {
		c.Set(key, v)
	}
	return ok
}

// Delete 删除缓存
func (c *TTLCache[V]) Delete(key string) {
	c.items.Delete(key)
}

// Purge 清理所有过期项，返回被清理的 key
func (c *TTLCache[V]) Purge() []string {
	now := c.now()
	var removed []string
	c.items.Range(func(key, val any) bool {
		if now.After(val.(cacheItem[V]).expiration) {
			c.items.Delete(key)
			removed = append(removed, key.(string))
		}
		return true
	})
	return removed
}

// Len 当前条目数 (含未清理的过期项)
func (c *TTLCache[V]) Len() int {
	n := 0
	c.items.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
