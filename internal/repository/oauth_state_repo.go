package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/francisconatale/easypay/internal/model"
)

// ==================== 接口定义 ====================

// OAuthStateRepository OAuth state 令牌仓储接口
type OAuthStateRepository interface {
	Create(ctx context.Context, state *model.OAuthState) error
	// GetByState 按令牌值查找，不存在返回 (nil, nil)。
	// 过期校验留给业务层做，便于区分"不存在"和"已过期"的日志口径
	GetByState(ctx context.Context, state string) (*model.OAuthState, error)
	DeleteByState(ctx context.Context, state string) error
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ==================== 仓储实现 ====================

type oauthStateRepo struct {
	db *gorm.DB
}

// NewOAuthStateRepository 创建 state 仓储
func NewOAuthStateRepository(db *gorm.DB) OAuthStateRepository {
	return &oauthStateRepo{db: db}
}

func (r *oauthStateRepo) Create(ctx context.Context, state *model.OAuthState) error {
	return r.db.WithContext(ctx).Create(state).Error
}

func (r *oauthStateRepo) GetByState(ctx context.Context, state string) (*model.OAuthState, error) {
	var row model.OAuthState
	if err := r.db.WithContext(ctx).Where("state = ?", state).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// DeleteByState 物理删除，state 是一次性令牌，不留软删墓碑
func (r *oauthStateRepo) DeleteByState(ctx context.Context, state string) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("state = ?", state).
		Delete(&model.OAuthState{}).Error
}

func (r *oauthStateRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&model.OAuthState{}).Error
}

func (r *oauthStateRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&model.OAuthState{})
	return res.RowsAffected, res.Error
}
