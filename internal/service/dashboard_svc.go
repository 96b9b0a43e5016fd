package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/repository"
)

// ==================== DashboardService 仪表盘服务 ====================

// DashboardService 汇总流水、销售、客户等经营指标
// 聚合在内存完成，单用户数据量级下足够
type DashboardService struct {
	transferRepo repository.TransferRepository
	saleRepo     repository.SaleRepository
	clientRepo   repository.ClientRepository
	credRepo     repository.CredentialRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	transferRepo repository.TransferRepository,
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	credRepo repository.CredentialRepository,
) *DashboardService {
	return &DashboardService{
		transferRepo: transferRepo,
		saleRepo:     saleRepo,
		clientRepo:   clientRepo,
		credRepo:     credRepo,
	}
}

// Stats 计算当前用户的全部仪表盘指标
func (s *DashboardService) Stats(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	transfers, err := s.transferRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询流水失败: %w", err)
	}

	resp := &dto.DashboardResponse{
		TotalTransfers: len(transfers),
		Monthly:        []dto.MonthlyPoint{},
		ByMethod:       []dto.MethodPoint{},
	}

	monthly := make(map[string]*dto.MonthlyPoint)
	byMethod := make(map[string]float64)
	for i := range transfers {
		t := &transfers[i]
		resp.TotalAmount += t.Amount
		if t.Invoiced {
			resp.InvoicedAmount += t.Amount
			resp.InvoicedCount++
		} else {
			resp.PendingAmount += t.Amount
		}

		month := t.TransactionDate.Format("2006-01")
		mp, ok := monthly[month]
		if !ok {
			mp = &dto.MonthlyPoint{Month: month}
			monthly[month] = mp
		}
		mp.Total += t.Amount
		if t.Invoiced {
			mp.Invoiced += t.Amount
		} else {
			mp.Pending += t.Amount
		}

		method := t.PaymentMethod
		if method == "" {
			method = "otro"
		}
		byMethod[method] += t.Amount
	}

	for _, mp := range monthly {
		resp.Monthly = append(resp.Monthly, *mp)
	}
	sort.Slice(resp.Monthly, func(i, j int) bool { return resp.Monthly[i].Month < resp.Monthly[j].Month })

	for method, total := range byMethod {
		resp.ByMethod = append(resp.ByMethod, dto.MethodPoint{Method: method, Total: total})
	}
	sort.Slice(resp.ByMethod, func(i, j int) bool { return resp.ByMethod[i].Total > resp.ByMethod[j].Total })

	clientCount, err := s.clientRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("统计客户数失败: %w", err)
	}
	resp.ClientCount = int(clientCount)

	if resp.SalesTotal, err = s.saleRepo.SumByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("统计销售总额失败: %w", err)
	}
	if resp.RecentSales, err = s.saleRepo.ListRecent(ctx, userID, 5); err != nil {
		return nil, fmt.Errorf("查询近期销售失败: %w", err)
	}

	cred, err := s.credRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询凭证失败: %w", err)
	}
	resp.MPLinked = cred != nil

	return resp, nil
}
