package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
	"github.com/francisconatale/easypay/pkg/mercadopago"
)

// ==================== 测试辅助 ====================

func setupMPAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.OAuthState{}, &model.MPCredential{})
	return db
}

// newTokenServer 返回固定 Token 响应的 MP 模拟站点
func newTokenServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			t.Errorf("意外的请求路径: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mercadopago.TokenResp{
			AccessToken:  "APP_USR-test-access",
			TokenType:    "bearer",
			ExpiresIn:    21600,
			Scope:        "offline_access read write",
			UserID:       987654321,
			RefreshToken: "TG-test-refresh",
			PublicKey:    "APP_USR-public",
			LiveMode:     true,
		})
	}))
}

func newMPAuthService(db *gorm.DB, apiBase string) *MPAuthService {
	mp := mercadopago.NewClient(mercadopago.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://easypay.com/api/mp/callback",
		APIBaseURL:   apiBase,
	})
	return NewMPAuthService(
		repository.NewOAuthStateRepository(db),
		repository.NewCredentialRepository(db),
		mp,
	)
}

// ==================== 单元测试 ====================

func TestMPAuthService_BeginLink(t *testing.T) {
	db := setupMPAuthTestDB(t)
	svc := newMPAuthService(db, "")
	ctx := context.Background()

	authURL, err := svc.BeginLink(ctx, 1)
	if err != nil {
		t.Fatalf("BeginLink 失败: %v", err)
	}
	if !strings.Contains(authURL, "state=") {
		t.Errorf("授权链接缺少 state 参数: %s", authURL)
	}

	// state 已落库且带过期时间
	var row model.OAuthState
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("state 未落库: %v", err)
	}
	if row.UserID != 1 {
		t.Errorf("user_id = %d, want 1", row.UserID)
	}
	if len(row.State) != 64 {
		t.Errorf("state 长度 = %d, want 64", len(row.State))
	}
	if !strings.Contains(authURL, row.State) {
		t.Errorf("授权链接未携带落库的 state")
	}
	ttl := time.Until(row.ExpiresAt)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Errorf("state 有效期 = %v, want 约 10 分钟", ttl)
	}
}

func TestMPAuthService_CompleteLink(t *testing.T) {
	db := setupMPAuthTestDB(t)
	srv := newTokenServer(t)
	defer srv.Close()
	svc := newMPAuthService(db, srv.URL)
	ctx := context.Background()

	db.Create(&model.OAuthState{
		State:     "valid-state",
		UserID:    7,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})

	if err := svc.CompleteLink(ctx, "auth-code", "valid-state", ""); err != nil {
		t.Fatalf("CompleteLink 失败: %v", err)
	}

	// 凭证落库，过期时间换算成绝对时间
	var cred model.MPCredential
	if err := db.First(&cred).Error; err != nil {
		t.Fatalf("凭证未落库: %v", err)
	}
	if cred.UserID != 7 {
		t.Errorf("user_id = %d, want 7", cred.UserID)
	}
	if cred.MPUserID != 987654321 {
		t.Errorf("mp_user_id = %d, want 987654321", cred.MPUserID)
	}
	if cred.AccessToken != "APP_USR-test-access" {
		t.Errorf("access_token = %s", cred.AccessToken)
	}
	if time.Until(cred.ExpiresAt) < 5*time.Hour {
		t.Errorf("expires_at 未按 expires_in 换算: %v", cred.ExpiresAt)
	}
	if len(cred.RawPayload) == 0 {
		t.Errorf("raw_payload 为空")
	}

	// state 一次性：兑换成功后立即销毁，二次兑换被拒
	var stateCount int64
	db.Model(&model.OAuthState{}).Count(&stateCount)
	if stateCount != 0 {
		t.Errorf("state 行数 = %d, want 0", stateCount)
	}
	if err := svc.CompleteLink(ctx, "auth-code", "valid-state", ""); err != ErrInvalidState {
		t.Errorf("二次兑换 err = %v, want ErrInvalidState", err)
	}
}

func TestMPAuthService_CompleteLink_ExpiredState(t *testing.T) {
	db := setupMPAuthTestDB(t)
	srv := newTokenServer(t)
	defer srv.Close()
	svc := newMPAuthService(db, srv.URL)

	db.Create(&model.OAuthState{
		State:     "expired-state",
		UserID:    7,
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	err := svc.CompleteLink(context.Background(), "auth-code", "expired-state", "")
	if err != ErrInvalidState {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}

	var credCount int64
	db.Model(&model.MPCredential{}).Count(&credCount)
	if credCount != 0 {
		t.Errorf("过期 state 不应产生凭证")
	}
}

func TestMPAuthService_CompleteLink_ProviderError(t *testing.T) {
	db := setupMPAuthTestDB(t)
	svc := newMPAuthService(db, "")
	ctx := context.Background()

	// MP 带回 error 参数时直接拒绝
	if err := svc.CompleteLink(ctx, "", "", "access_denied"); !strings.Contains(err.Error(), "access_denied") {
		t.Errorf("err = %v, want ErrProviderDenied", err)
	}

	// 缺参数
	if err := svc.CompleteLink(ctx, "", "some-state", ""); err != ErrMissingParams {
		t.Errorf("缺 code err = %v, want ErrMissingParams", err)
	}
	if err := svc.CompleteLink(ctx, "some-code", "", ""); err != ErrMissingParams {
		t.Errorf("缺 state err = %v, want ErrMissingParams", err)
	}
}

func TestMPAuthService_Relink_KeepsSingleRow(t *testing.T) {
	db := setupMPAuthTestDB(t)
	srv := newTokenServer(t)
	defer srv.Close()
	svc := newMPAuthService(db, srv.URL)
	ctx := context.Background()

	// 同一用户两次完整绑定，凭证应 upsert 而不是堆行
	for _, state := range []string{"state-a", "state-b"} {
		db.Create(&model.OAuthState{
			State:     state,
			UserID:    7,
			ExpiresAt: time.Now().Add(5 * time.Minute),
		})
		if err := svc.CompleteLink(ctx, "auth-code", state, ""); err != nil {
			t.Fatalf("CompleteLink(%s) 失败: %v", state, err)
		}
	}

	var credCount int64
	db.Model(&model.MPCredential{}).Count(&credCount)
	if credCount != 1 {
		t.Errorf("凭证行数 = %d, want 1", credCount)
	}
}

func TestMPAuthService_Disconnect(t *testing.T) {
	db := setupMPAuthTestDB(t)
	svc := newMPAuthService(db, "")
	ctx := context.Background()

	db.Create(&model.MPCredential{UserID: 7, MPUserID: 1, AccessToken: "tok", ExpiresAt: time.Now()})
	db.Create(&model.OAuthState{State: "leftover", UserID: 7, ExpiresAt: time.Now().Add(time.Minute)})

	if err := svc.Disconnect(ctx, 7); err != nil {
		t.Fatalf("Disconnect 失败: %v", err)
	}

	var credCount, stateCount int64
	db.Model(&model.MPCredential{}).Count(&credCount)
	db.Model(&model.OAuthState{}).Count(&stateCount)
	if credCount != 0 || stateCount != 0 {
		t.Errorf("解绑后残留 cred=%d state=%d", credCount, stateCount)
	}

	// 幂等：重复解绑不报错
	if err := svc.Disconnect(ctx, 7); err != nil {
		t.Errorf("重复解绑失败: %v", err)
	}
}

func TestMPAuthService_RefreshCredential(t *testing.T) {
	db := setupMPAuthTestDB(t)
	srv := newTokenServer(t)
	defer srv.Close()
	svc := newMPAuthService(db, srv.URL)
	ctx := context.Background()

	cred := &model.MPCredential{
		UserID:       7,
		MPUserID:     987654321,
		AccessToken:  "old-access",
		RefreshToken: "TG-old-refresh",
		ExpiresAt:    time.Now().Add(10 * time.Minute),
	}
	db.Create(cred)

	if err := svc.RefreshCredential(ctx, cred); err != nil {
		t.Fatalf("RefreshCredential 失败: %v", err)
	}

	var updated model.MPCredential
	db.Where("user_id = ?", 7).First(&updated)
	if updated.AccessToken != "APP_USR-test-access" {
		t.Errorf("access_token 未更新: %s", updated.AccessToken)
	}

	// 无 refresh_token 的凭证无法续期
	bare := &model.MPCredential{UserID: 8}
	if err := svc.RefreshCredential(ctx, bare); err != ErrNoRefreshToken {
		t.Errorf("err = %v, want ErrNoRefreshToken", err)
	}
}
