package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/francisconatale/easypay/internal/model"
)

// ==================== 接口定义 ====================

// ClientRepository 客户档案仓储接口
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, userID, id int64) (*model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, search string) ([]model.Client, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// ==================== 仓储实现 ====================

type clientRepo struct {
	db *gorm.DB
}

// NewClientRepository 创建客户仓储
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// GetByID 带 userID 过滤，防止越权读取别家客户
func (r *clientRepo) GetByID(ctx context.Context, userID, id int64) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", client.UserID).
		Save(client).Error
}

func (r *clientRepo) Delete(ctx context.Context, userID, id int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Client{}).Error
}

func (r *clientRepo) List(ctx context.Context, userID int64, search string) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR dni LIKE ? OR cuit LIKE ?", like, like, like, like)
	}
	err := q.Find(&clients).Error
	return clients, err
}

func (r *clientRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Client{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
