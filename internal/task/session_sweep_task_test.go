package task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSweeper struct {
	calls   atomic.Int32
	removed int
}

func (f *fakeSweeper) PurgeExpired() int {
	f.calls.Add(1)
	return f.removed
}

func (f *fakeSweeper) ActiveSessions() int { return 0 }

func TestSessionSweepTask_SweepJob(t *testing.T) {
	sweeper := &fakeSweeper{removed: 3}
	task := NewSessionSweepTask(sweeper, "", zap.NewNop())

	assert.Equal(t, DefaultSweepSpec, task.spec)
	assert.Equal(t, 3, task.sweepJob())
	assert.Equal(t, int32(1), sweeper.calls.Load())
}

func TestSessionSweepTask_InvalidSpec(t *testing.T) {
	task := NewSessionSweepTask(&fakeSweeper{}, "not a cron", zap.NewNop())
	assert.Error(t, task.Start())
}

func TestSessionSweepTask_StartStop(t *testing.T) {
	sweeper := &fakeSweeper{}
	task := NewSessionSweepTask(sweeper, "* * * * * *", zap.NewNop())

	require.NoError(t, task.Start())
	require.NoError(t, task.Start())

	assert.Eventually(t, func() bool {
		return sweeper.calls.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)

	task.Stop()
	task.Stop()
}
