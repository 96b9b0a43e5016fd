package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/francisconatale/easypay/internal/model"
)

// ==================== 接口定义 ====================

// SaleRepository 销售记录仓储接口
type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	GetByID(ctx context.Context, userID, id int64) (*model.Sale, error)
	Update(ctx context.Context, sale *model.Sale) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64) ([]model.Sale, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]model.Sale, error)
	SumByUser(ctx context.Context, userID int64) (float64, error)
}

// ==================== 仓储实现 ====================

type saleRepo struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售仓储
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepo{db: db}
}

func (r *saleRepo) Create(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepo) GetByID(ctx context.Context, userID, id int64) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) Update(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", sale.UserID).
		Save(sale).Error
}

func (r *saleRepo) Delete(ctx context.Context, userID, id int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Sale{}).Error
}

func (r *saleRepo) List(ctx context.Context, userID int64) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SumByUser(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}
