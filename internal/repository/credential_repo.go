package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/francisconatale/easypay/internal/model"
)

// ==================== 接口定义 ====================

// CredentialRepository MP 凭证仓储接口
type CredentialRepository interface {
	// Upsert 按 user_id 落一行：不存在插入，存在整行覆盖 (重新授权的语义)
	Upsert(ctx context.Context, cred *model.MPCredential) error
	// GetByUserID 不存在返回 (nil, nil)
	GetByUserID(ctx context.Context, userID int64) (*model.MPCredential, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	// ListExpiring 找出将在 within 内过期且有 refresh_token 的凭证
	ListExpiring(ctx context.Context, within time.Duration) ([]model.MPCredential, error)
}

// ==================== 仓储实现 ====================

type credentialRepo struct {
	db *gorm.DB
}

// NewCredentialRepository 创建凭证仓储
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepo{db: db}
}

func (r *credentialRepo) Upsert(ctx context.Context, cred *model.MPCredential) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mp_user_id", "access_token", "refresh_token", "public_key",
			"scope", "live_mode", "expires_at", "raw_payload", "updated_at",
		}),
	}).Create(cred).Error
}

func (r *credentialRepo) GetByUserID(ctx context.Context, userID int64) (*model.MPCredential, error) {
	var cred model.MPCredential
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

// DeleteByUserID 解绑时物理删除，避免唯一索引撞软删除的旧行
func (r *credentialRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&model.MPCredential{}).Error
}

func (r *credentialRepo) ListExpiring(ctx context.Context, within time.Duration) ([]model.MPCredential, error) {
	var creds []model.MPCredential
	deadline := time.Now().Add(within)
	err := r.db.WithContext(ctx).
		Where("expires_at < ? AND refresh_token <> ''", deadline).
		Find(&creds).Error
	return creds, err
}
