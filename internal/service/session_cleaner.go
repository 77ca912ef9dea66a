package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"vtufest/backend/internal/repository"
)

// SessionCleaner 定期清理过期的领队资料补全会话
type SessionCleaner struct {
	repo      *repository.Repository
	interval  time.Duration
	scheduler gocron.Scheduler
	now       func() time.Time
	logger    *zap.Logger
}

// NewSessionCleaner 创建 SessionCleaner
func NewSessionCleaner(repo *repository.Repository, interval time.Duration, logger *zap.Logger) *SessionCleaner {
	return &SessionCleaner{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Start 启动调度器，按固定间隔执行 RunOnce
func (c *SessionCleaner) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(c.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			c.RunOnce(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		sched.Shutdown()
		return err
	}

	sched.Start()
	c.scheduler = sched
	c.logger.Info("会话清理任务已启动", zap.Duration("interval", c.interval))
	return nil
}

// RunOnce 删除已过期的会话，返回删除条数
func (c *SessionCleaner) RunOnce(ctx context.Context) int64 {
	n, err := c.repo.Session.DeleteExpired(ctx, c.now())
	if err != nil {
		c.logger.Error("清理过期会话失败", zap.Error(err))
		return 0
	}
	if n > 0 {
		c.logger.Info("已清理过期会话", zap.Int64("count", n))
	}
	return n
}

// Stop 停止调度器
func (c *SessionCleaner) Stop() error {
	if c.scheduler == nil {
		return nil
	}
	return c.scheduler.Shutdown()
}
