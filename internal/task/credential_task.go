package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
	"github.com/francisconatale/easypay/internal/service"
)

// CredentialTask MP 凭证保活任务
// 周期性扫描临期凭证，用 refresh_token 续期，避免商户收款时撞上 401
type CredentialTask struct {
	CredRepo      repository.CredentialRepository
	MPAuthService *service.MPAuthService
	Cron          *cron.Cron

	// 控制并发刷新的数量，MP 的 OAuth 接口有速率限制
	concurrencyLimit int
	sleepTime        time.Duration
	refreshWindow    time.Duration
}

func NewCredentialTask(credRepo repository.CredentialRepository, mpAuthService *service.MPAuthService) *CredentialTask {
	return &CredentialTask{
		CredRepo:         credRepo,
		MPAuthService:    mpAuthService,
		Cron:             cron.New(cron.WithSeconds()), // 支持秒级控制
		concurrencyLimit: 10,
		sleepTime:        100 * time.Millisecond, // 每个协程启动间隔，平滑波峰
		refreshWindow:    time.Hour,              // 一小时内到期的都提前续
	}
}

// Start 启动定时任务
func (t *CredentialTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次凭证检查...")
		t.refreshJob(ctx)
	}()

	_, err := t.Cron.AddFunc("0 0/40 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.refreshJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动凭证定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("MP 凭证保活任务已启动 (每40分钟检查一次)")
}

// Stop 停止定时任务
func (t *CredentialTask) Stop() {
	t.Cron.Stop()
}

func (t *CredentialTask) refreshJob(ctx context.Context) {
	creds, err := t.CredRepo.ListExpiring(ctx, t.refreshWindow)
	if err != nil {
		log.Printf("[Cron] 临期凭证查询失败: %v", err)
		return
	}
	if len(creds) == 0 {
		return
	}

	// 信号量通道限并发
	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	log.Printf("[Cron] 开始刷新 %d 个临期凭证，并发上限: %d", len(creds), t.concurrencyLimit)

	for i := range creds {
		select {
		case <-ctx.Done():
			log.Println("[Cron] 任务超时停止")
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		// 平滑波峰
		time.Sleep(t.sleepTime)

		go func(c model.MPCredential) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t.MPAuthService.RefreshCredential(ctx, &c); err != nil {
				// 日志仅记录，不中断其他协程
				log.Printf("[Cron] 用户 [%d] 凭证刷新失败: %v", c.UserID, err)
			}
		}(creds[i])
	}

	wg.Wait()
	log.Println("[Cron] 本轮凭证刷新任务完成")
}
