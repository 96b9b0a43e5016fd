package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/francisconatale/easypay/internal/model"
)

// ==================== 接口定义 ====================

// TransferRepository 收款流水仓储接口
type TransferRepository interface {
	Create(ctx context.Context, transfer *model.Transfer) error
	BatchCreate(ctx context.Context, transfers []model.Transfer) error
	GetByID(ctx context.Context, userID, id int64) (*model.Transfer, error)
	Update(ctx context.Context, transfer *model.Transfer) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64) ([]model.Transfer, error)
	ListInvoiced(ctx context.Context, userID int64) ([]model.Transfer, error)
	// MarkInvoiced 把选中的流水批量标记到同一张发票号下
	MarkInvoiced(ctx context.Context, userID int64, ids []int64, invoiceNumber string) (int64, error)
}

// ==================== 仓储实现 ====================

type transferRepo struct {
	db *gorm.DB
}

// NewTransferRepository 创建流水仓储
func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepo{db: db}
}

func (r *transferRepo) Create(ctx context.Context, transfer *model.Transfer) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

func (r *transferRepo) BatchCreate(ctx context.Context, transfers []model.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&transfers).Error
}

func (r *transferRepo) GetByID(ctx context.Context, userID, id int64) (*model.Transfer, error) {
	var transfer model.Transfer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&transfer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepo) Update(ctx context.Context, transfer *model.Transfer) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", transfer.UserID).
		Save(transfer).Error
}

func (r *transferRepo) Delete(ctx context.Context, userID, id int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Transfer{}).Error
}

func (r *transferRepo) List(ctx context.Context, userID int64) ([]model.Transfer, error) {
	var transfers []model.Transfer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date DESC").
		Find(&transfers).Error
	return transfers, err
}

func (r *transferRepo) ListInvoiced(ctx context.Context, userID int64) ([]model.Transfer, error) {
	var transfers []model.Transfer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND invoiced = ?", userID, true).
		Order("updated_at DESC").
		Find(&transfers).Error
	return transfers, err
}

func (r *transferRepo) MarkInvoiced(ctx context.Context, userID int64, ids []int64, invoiceNumber string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Transfer{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Updates(map[string]interface{}{
			"invoiced":       true,
			"invoice_number": invoiceNumber,
		})
	return res.RowsAffected, res.Error
}
