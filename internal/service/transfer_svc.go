package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
)

// ==================== TransferService 收款流水服务 ====================

// TransferService 收款流水的录入、批量导入和开票管理
type TransferService struct {
	transferRepo repository.TransferRepository
}

// NewTransferService 创建流水服务
func NewTransferService(transferRepo repository.TransferRepository) *TransferService {
	return &TransferService{transferRepo: transferRepo}
}

// Create 手工录入一条流水
func (s *TransferService) Create(ctx context.Context, userID int64, req *dto.TransferRequest) (*model.Transfer, error) {
	transfer := s.fromRequest(userID, req, "")
	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("创建流水失败: %w", err)
	}
	return transfer, nil
}

// Import 批量导入流水，同一批次共享一个批次号，便于追溯和回滚
func (s *TransferService) Import(ctx context.Context, userID int64, req *dto.TransferImportRequest) (string, int, error) {
	batch := uuid.New().String()
	transfers := make([]model.Transfer, 0, len(req.Transfers))
	for i := range req.Transfers {
		transfers = append(transfers, *s.fromRequest(userID, &req.Transfers[i], batch))
	}
	if err := s.transferRepo.BatchCreate(ctx, transfers); err != nil {
		return "", 0, fmt.Errorf("批量导入流水失败: %w", err)
	}
	return batch, len(transfers), nil
}

// Get 查询单条流水
func (s *TransferService) Get(ctx context.Context, userID, id int64) (*model.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("查询流水失败: %w", err)
	}
	if transfer == nil {
		return nil, ErrTransferNotFound
	}
	return transfer, nil
}

// Update 更新流水，不触碰开票字段
func (s *TransferService) Update(ctx context.Context, userID, id int64, req *dto.TransferRequest) (*model.Transfer, error) {
	transfer, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	transfer.MPTransactionID = req.MPTransactionID
	transfer.Amount = req.Amount
	transfer.Description = req.Description
	transfer.PayerName = req.PayerName
	transfer.PaymentMethod = req.PaymentMethod
	transfer.TransactionDate = req.TransactionDate

	if err := s.transferRepo.Update(ctx, transfer); err != nil {
		return nil, fmt.Errorf("更新流水失败: %w", err)
	}
	return transfer, nil
}

// Delete 删除流水
func (s *TransferService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.transferRepo.Delete(ctx, userID, id)
}

// List 流水列表
func (s *TransferService) List(ctx context.Context, userID int64) ([]model.Transfer, error) {
	return s.transferRepo.List(ctx, userID)
}

// AssignInvoice 批量开票：把选中流水标记到同一张发票号下
func (s *TransferService) AssignInvoice(ctx context.Context, userID int64, req *dto.InvoiceAssignRequest) (int64, error) {
	affected, err := s.transferRepo.MarkInvoiced(ctx, userID, req.TransferIDs, req.InvoiceNumber)
	if err != nil {
		return 0, fmt.Errorf("标记开票失败: %w", err)
	}
	if affected == 0 {
		return 0, ErrTransferNotFound
	}
	return affected, nil
}

// ListInvoices 按发票号聚合已开票流水
func (s *TransferService) ListInvoices(ctx context.Context, userID int64) ([]dto.InvoiceGroup, error) {
	transfers, err := s.transferRepo.ListInvoiced(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询已开票流水失败: %w", err)
	}

	groups := make(map[string]*dto.InvoiceGroup)
	for i := range transfers {
		t := &transfers[i]
		g, ok := groups[t.InvoiceNumber]
		if !ok {
			g = &dto.InvoiceGroup{InvoiceNumber: t.InvoiceNumber}
			groups[t.InvoiceNumber] = g
		}
		g.Total += t.Amount
		g.Count++
		if t.UpdatedAt.After(g.Date) {
			g.Date = t.UpdatedAt
		}
	}

	out := make([]dto.InvoiceGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *TransferService) fromRequest(userID int64, req *dto.TransferRequest, batch string) *model.Transfer {
	return &model.Transfer{
		UserID:          userID,
		MPTransactionID: req.MPTransactionID,
		Amount:          req.Amount,
		Description:     req.Description,
		PayerName:       req.PayerName,
		PaymentMethod:   req.PaymentMethod,
		TransactionDate: req.TransactionDate,
		ImportBatch:     batch,
	}
}

var ErrTransferNotFound = errors.New("流水不存在")
