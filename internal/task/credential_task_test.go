package task

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
	"github.com/francisconatale/easypay/internal/service"
	"github.com/francisconatale/easypay/pkg/mercadopago"
)

// ==================== 测试辅助 ====================

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.MPCredential{}, &model.OAuthState{})
	return db
}

// ==================== 单元测试 ====================

func TestCredentialTask_RefreshJob(t *testing.T) {
	db := setupTaskTestDB(t)

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mercadopago.TokenResp{
			AccessToken:  "APP_USR-fresh",
			ExpiresIn:    21600,
			UserID:       111,
			RefreshToken: "TG-fresh",
		})
	}))
	defer tokenSrv.Close()

	credRepo := repository.NewCredentialRepository(db)
	stateRepo := repository.NewOAuthStateRepository(db)
	mp := mercadopago.NewClient(mercadopago.Config{APIBaseURL: tokenSrv.URL})
	svc := service.NewMPAuthService(stateRepo, credRepo, mp)

	// 30 分钟后到期，落在刷新窗口内
	db.Create(&model.MPCredential{
		UserID:       1,
		MPUserID:     111,
		AccessToken:  "APP_USR-stale",
		RefreshToken: "TG-old",
		ExpiresAt:    time.Now().Add(30 * time.Minute),
	})
	// 明天才到期，本轮不碰
	db.Create(&model.MPCredential{
		UserID:       2,
		MPUserID:     222,
		AccessToken:  "APP_USR-ok",
		RefreshToken: "TG-ok",
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	})
	// 没有 refresh_token 的凭证刷不了，不该进队列
	db.Create(&model.MPCredential{
		UserID:      3,
		MPUserID:    333,
		AccessToken: "APP_USR-norefresh",
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	})

	task := NewCredentialTask(credRepo, svc)
	task.sleepTime = 0
	task.refreshJob(context.Background())

	var refreshed model.MPCredential
	db.Where("user_id = ?", 1).First(&refreshed)
	if refreshed.AccessToken != "APP_USR-fresh" {
		t.Errorf("临期凭证未刷新: %s", refreshed.AccessToken)
	}

	var untouched model.MPCredential
	db.Where("user_id = ?", 2).First(&untouched)
	if untouched.AccessToken != "APP_USR-ok" {
		t.Errorf("未到期凭证被动了: %s", untouched.AccessToken)
	}

	var norefresh model.MPCredential
	db.Where("user_id = ?", 3).First(&norefresh)
	if norefresh.AccessToken != "APP_USR-norefresh" {
		t.Errorf("无 refresh_token 凭证被动了: %s", norefresh.AccessToken)
	}
}

func TestStateCleanupTask_CleanupJob(t *testing.T) {
	db := setupTaskTestDB(t)
	stateRepo := repository.NewOAuthStateRepository(db)

	db.Create(&model.OAuthState{State: "dead-1", UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)})
	db.Create(&model.OAuthState{State: "dead-2", UserID: 2, ExpiresAt: time.Now().Add(-time.Minute)})
	db.Create(&model.OAuthState{State: "alive", UserID: 3, ExpiresAt: time.Now().Add(5 * time.Minute)})

	task := NewStateCleanupTask(stateRepo)
	task.cleanupJob(context.Background())

	var remaining []model.OAuthState
	db.Find(&remaining)
	if len(remaining) != 1 || remaining[0].State != "alive" {
		t.Errorf("清理结果 = %+v", remaining)
	}
}
