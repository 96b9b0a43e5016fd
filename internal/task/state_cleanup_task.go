package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/francisconatale/easypay/internal/repository"
)

// StateCleanupTask 过期 OAuth state 清理任务
// state 只有 10 分钟有效期，用户中途放弃授权会留下死行，每小时清一次
type StateCleanupTask struct {
	StateRepo repository.OAuthStateRepository
	Cron      *cron.Cron
}

func NewStateCleanupTask(stateRepo repository.OAuthStateRepository) *StateCleanupTask {
	return &StateCleanupTask{
		StateRepo: stateRepo,
		Cron:      cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *StateCleanupTask) Start() {
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.cleanupJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动 state 清理任务: %v", err)
	}

	t.Cron.Start()
	log.Println("OAuth state 清理任务已启动 (每小时一次)")
}

// Stop 停止定时任务
func (t *StateCleanupTask) Stop() {
	t.Cron.Stop()
}

func (t *StateCleanupTask) cleanupJob(ctx context.Context) {
	deleted, err := t.StateRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("[Cron] 过期 state 清理失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] 已清理 %d 条过期 state", deleted)
	}
}
