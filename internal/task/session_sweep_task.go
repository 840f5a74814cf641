package task

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSweepSpec 每分钟第 0 秒执行
const DefaultSweepSpec = "0 */1 * * * *"

// SessionSweeper 可清理过期会话的服务
type SessionSweeper interface {
	PurgeExpired() int
	ActiveSessions() int
}

// SessionSweepTask 定时清理过期的选择会话
// 会话读取时已懒删除，这里回收不再被访问的会话
type SessionSweepTask struct {
	sweeper SessionSweeper
	spec    string
	cron    *cron.Cron
	logger  *zap.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	running bool
}

func NewSessionSweepTask(sweeper SessionSweeper, spec string, logger *zap.Logger) *SessionSweepTask {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweepTask{
		sweeper: sweeper,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()), // 支持秒级控制
		logger:  logger,
	}
}

// Start 注册并启动定时任务，重复调用无副作用
func (t *SessionSweepTask) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return nil
	}

	if t.entryID == 0 {
		id, err := t.cron.AddFunc(t.spec, func() { t.sweepJob() })
		if err != nil {
			return fmt.Errorf("无法启动会话清理任务 (%s): %w", t.spec, err)
		}
		t.entryID = id
	}

	t.cron.Start()
	t.running = true
	t.logger.Info("会话清理任务已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止调度并等待正在执行的清理完成
func (t *SessionSweepTask) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}

	<-t.cron.Stop().Done()
	t.running = false
	t.logger.Info("会话清理任务已停止")
}

// sweepJob 执行一次清理
func (t *SessionSweepTask) sweepJob() int {
	removed := t.sweeper.PurgeExpired()
	if removed > 0 {
		t.logger.Info("已清理过期选择会话",
			zap.Int("removed", removed),
			zap.Int("remaining", t.sweeper.ActiveSessions()),
		)
	}
	return removed
}
