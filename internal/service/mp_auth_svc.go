package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
	"github.com/francisconatale/easypay/pkg/mercadopago"
	"github.com/francisconatale/easypay/pkg/utils"
)

// ==================== MPAuthService MP 授权绑定服务 ====================

// MPAuthService 负责 OAuth 绑定全流程：发起跳转、回调兑换、解绑、续期
type MPAuthService struct {
	stateRepo repository.OAuthStateRepository
	credRepo  repository.CredentialRepository
	mp        *mercadopago.Client
}

// NewMPAuthService 创建 MP 授权服务
func NewMPAuthService(
	stateRepo repository.OAuthStateRepository,
	credRepo repository.CredentialRepository,
	mp *mercadopago.Client,
) *MPAuthService {
	return &MPAuthService{
		stateRepo: stateRepo,
		credRepo:  credRepo,
		mp:        mp,
	}
}

// BeginLink 发起绑定：生成 state 令牌落库，返回授权跳转链接
// 调用方必须已通过 JWT 鉴权，userID 由中间件注入
func (s *MPAuthService) BeginLink(ctx context.Context, userID int64) (string, error) {
	state, err := utils.GenerateStateToken()
	if err != nil {
		return "", fmt.Errorf("生成 state 令牌失败: %w", err)
	}

	row := &model.OAuthState{
		State:     state,
		UserID:    userID,
		ExpiresAt: time.Now().Add(model.OAuthStateTTL),
	}
	if err := s.stateRepo.Create(ctx, row); err != nil {
		return "", fmt.Errorf("保存 state 令牌失败: %w", err)
	}

	return s.mp.AuthorizationURL(state), nil
}

// CompleteLink 处理授权回调：校验 state、兑换 Token、upsert 凭证、销毁 state
// errParam 是 MP 回调带回的 error 参数，非空直接拒绝，不产生任何写入
func (s *MPAuthService) CompleteLink(ctx context.Context, code, state, errParam string) error {
	if errParam != "" {
		return fmt.Errorf("%w: %s", ErrProviderDenied, errParam)
	}
	if code == "" || state == "" {
		return ErrMissingParams
	}

	row, err := s.stateRepo.GetByState(ctx, state)
	if err != nil {
		return fmt.Errorf("查询 state 失败: %w", err)
	}
	if row == nil || row.IsExpired() {
		return ErrInvalidState
	}

	tok, err := s.mp.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("兑换 Token 失败: %w", err)
	}

	if err := s.saveCredential(ctx, row.UserID, tok); err != nil {
		return err
	}

	// state 用完即焚；删除失败只记日志，凭证已成功落库
	if err := s.stateRepo.DeleteByState(ctx, state); err != nil {
		log.Printf("[MP] 删除已兑换 state 失败: %v", err)
	}

	return nil
}

// Disconnect 解绑：删除凭证和该用户残留的 state 行，均为幂等操作
func (s *MPAuthService) Disconnect(ctx context.Context, userID int64) error {
	if err := s.credRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("删除凭证失败: %w", err)
	}
	if err := s.stateRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("清理 state 失败: %w", err)
	}
	return nil
}

// RefreshCredential 用 refresh_token 续期，成功后覆盖原凭证
// 由定时任务驱动；refresh_token 为空的凭证只能引导用户重新授权
func (s *MPAuthService) RefreshCredential(ctx context.Context, cred *model.MPCredential) error {
	if cred.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	tok, err := s.mp.RefreshToken(ctx, cred.RefreshToken)
	if err != nil {
		return fmt.Errorf("刷新 Token 失败: %w", err)
	}

	return s.saveCredential(ctx, cred.UserID, tok)
}

// saveCredential 把 token 响应转成凭证行并 upsert
// 过期时间从相对秒数换算成绝对时间戳
func (s *MPAuthService) saveCredential(ctx context.Context, userID int64, tok *mercadopago.TokenResp) error {
	raw, _ := json.Marshal(tok)

	cred := &model.MPCredential{
		UserID:       userID,
		MPUserID:     tok.UserID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		PublicKey:    tok.PublicKey,
		Scope:        tok.Scope,
		LiveMode:     tok.LiveMode,
		ExpiresAt:    time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
		RawPayload:   raw,
	}
	if err := s.credRepo.Upsert(ctx, cred); err != nil {
		return fmt.Errorf("保存凭证失败: %w", err)
	}
	return nil
}

// ==================== 错误定义 ====================

var (
	ErrProviderDenied = errors.New("用户在 MP 侧拒绝了授权")
	ErrMissingParams  = errors.New("回调缺少 code 或 state 参数")
	ErrInvalidState   = errors.New("state 令牌不存在或已过期")
	ErrNoRefreshToken = errors.New("凭证没有 refresh_token，无法续期")
)
