package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActionLimiter_Check(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewActionLimiter()
	l.now = clock.now

	key := SessionActionKey("abc", "add_to_cart")
	assert.Equal(t, "session:abc:add_to_cart", key)

	assert.True(t, l.Check(key, time.Second).Allowed)

	clock.advance(300 * time.Millisecond)
	res := l.Check(key, time.Second)
	assert.False(t, res.Allowed)
	assert.Equal(t, 700*time.Millisecond, res.RetryAfter)

	// 被拒绝的检查不刷新时间
	clock.advance(700 * time.Millisecond)
	assert.True(t, l.Check(key, time.Second).Allowed)
}

func TestActionLimiter_Reset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewActionLimiter()
	l.now = clock.now

	assert.True(t, l.Check("k", time.Minute).Allowed)
	assert.False(t, l.Check("k", time.Minute).Allowed)

	l.Reset("k")
	assert.True(t, l.Check("k", time.Minute).Allowed)
}

func TestActionLimiter_ZeroIntervalDisabled(t *testing.T) {
	l := NewActionLimiter()
	assert.True(t, l.Check("k", 0).Allowed)
	assert.True(t, l.Check("k", 0).Allowed)
}

func TestActionLimiter_Prune(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewActionLimiter()
	l.now = clock.now

	l.Check("old", time.Second)
	clock.advance(time.Minute)
	l.Check("new", time.Second)

	assert.Equal(t, 1, l.Prune(30*time.Second))
	assert.True(t, l.Check("old", time.Hour).Allowed)
	assert.False(t, l.Check("new", time.Hour).Allowed)
}
