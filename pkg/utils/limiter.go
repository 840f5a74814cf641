package utils

import (
	"fmt"
	"sync"
	"time"
)

// ==================== ActionLimiter 动作冷却器 ====================

// ActionLimiter 按 key 记录上次执行时间，冷却期内拒绝重复执行
// 用于加购去抖：同一会话连续点击只处理第一次
type ActionLimiter struct {
	locks sync.Map // key -> *lockEntry
	now   func() time.Time
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewActionLimiter 创建冷却器
func NewActionLimiter() *ActionLimiter {
	return &ActionLimiter{now: time.Now}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时同时记录本次执行
// interval <= 0 表示不限制
func (r *ActionLimiter) Check(key string, interval time.Duration) CheckResult {
	if interval <= 0 {
		return CheckResult{Allowed: true}
	}

	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	if !entry.lastTime.IsZero() {
		if elapsed := now.Sub(entry.lastTime); elapsed < interval {
			return CheckResult{
				Allowed:    false,
				RetryAfter: interval - elapsed,
			}
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key，会话过期清理时调用
func (r *ActionLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// Prune 删除超过 maxAge 未执行的 key，返回删除数量
func (r *ActionLimiter) Prune(maxAge time.Duration) int {
	now := r.now()
	removed := 0
	r.locks.Range(func(key, val any) bool {
		entry := val.(*lockEntry)
		entry.mu.Lock()
		stale := now.Sub(entry.lastTime) >= maxAge
		entry.mu.Unlock()
		if stale {
			r.locks.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// ==================== Key 生成工具 ====================

// SessionActionKey 会话级动作 Key，如 "session:<id>:add_to_cart"
func SessionActionKey(sessionID, action string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, action)
}
