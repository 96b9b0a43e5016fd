package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
)

// ==================== SaleService 销售记录服务 ====================

// SaleService 销售记录管理，客户信息以快照方式冗余在记录上
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService 创建销售服务
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// Create 新建销售记录，总额由数量 * 单价算出
func (s *SaleService) Create(ctx context.Context, userID int64, req *dto.SaleRequest) (*model.Sale, error) {
	sale := &model.Sale{
		UserID:      userID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Total:       float64(req.Quantity) * req.UnitPrice,
		Category:    req.Category,
		Notes:       req.Notes,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("创建销售记录失败: %w", err)
	}
	return sale, nil
}

// Get 查询单条销售记录
func (s *SaleService) Get(ctx context.Context, userID, id int64) (*model.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("查询销售记录失败: %w", err)
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

// Update 更新销售记录并重算总额
func (s *SaleService) Update(ctx context.Context, userID, id int64, req *dto.SaleRequest) (*model.Sale, error) {
	sale, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	sale.ClientName = req.ClientName
	sale.ClientEmail = req.ClientEmail
	sale.ClientPhone = req.ClientPhone
	sale.Description = req.Description
	sale.Quantity = req.Quantity
	sale.UnitPrice = req.UnitPrice
	sale.Total = float64(req.Quantity) * req.UnitPrice
	sale.Category = req.Category
	sale.Notes = req.Notes

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("更新销售记录失败: %w", err)
	}
	return sale, nil
}

// Delete 删除销售记录
func (s *SaleService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.saleRepo.Delete(ctx, userID, id)
}

// List 销售记录列表
func (s *SaleService) List(ctx context.Context, userID int64) ([]model.Sale, error) {
	return s.saleRepo.List(ctx, userID)
}

var ErrSaleNotFound = errors.New("销售记录不存在")
