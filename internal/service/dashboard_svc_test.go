package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
)

// ==================== 测试辅助 ====================

func setupDashboardTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.Transfer{}, &model.Sale{}, &model.Client{}, &model.MPCredential{})
	return db
}

func newDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repository.NewTransferRepository(db),
		repository.NewSaleRepository(db),
		repository.NewClientRepository(db),
		repository.NewCredentialRepository(db),
	)
}

// ==================== 单元测试 ====================

func TestDashboardService_Stats(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc := newDashboardService(db)

	july := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	august := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)

	db.Create(&model.Transfer{UserID: 1, Amount: 1000, PaymentMethod: "qr", TransactionDate: july, Invoiced: true, InvoiceNumber: "FC-A-0001"})
	db.Create(&model.Transfer{UserID: 1, Amount: 2000, PaymentMethod: "qr", TransactionDate: july})
	db.Create(&model.Transfer{UserID: 1, Amount: 500, PaymentMethod: "transferencia", TransactionDate: august})
	// 别人的数据不计入
	db.Create(&model.Transfer{UserID: 2, Amount: 99999, PaymentMethod: "qr", TransactionDate: july})

	db.Create(&model.Client{UserID: 1, Name: "Juan"})
	db.Create(&model.Client{UserID: 1, Name: "Maria"})
	db.Create(&model.Sale{UserID: 1, Description: "Corte", Quantity: 2, UnitPrice: 500, Total: 1000})

	stats, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("Stats 失败: %v", err)
	}

	if stats.TotalAmount != 3500 {
		t.Errorf("total_amount = %v, want 3500", stats.TotalAmount)
	}
	if stats.InvoicedAmount != 1000 {
		t.Errorf("invoiced_amount = %v, want 1000", stats.InvoicedAmount)
	}
	if stats.PendingAmount != 2500 {
		t.Errorf("pending_amount = %v, want 2500", stats.PendingAmount)
	}
	if stats.TotalTransfers != 3 || stats.InvoicedCount != 1 {
		t.Errorf("transfers=%d invoiced=%d", stats.TotalTransfers, stats.InvoicedCount)
	}
	if stats.ClientCount != 2 {
		t.Errorf("client_count = %d, want 2", stats.ClientCount)
	}
	if stats.SalesTotal != 1000 {
		t.Errorf("sales_total = %v, want 1000", stats.SalesTotal)
	}
	if len(stats.RecentSales) != 1 {
		t.Errorf("recent_sales = %d, want 1", len(stats.RecentSales))
	}
	if stats.MPLinked {
		t.Errorf("未绑定用户 mp_linked = true")
	}

	// 月度序列按月份升序
	if len(stats.Monthly) != 2 {
		t.Fatalf("monthly 点数 = %d, want 2", len(stats.Monthly))
	}
	if stats.Monthly[0].Month != "2026-07" || stats.Monthly[1].Month != "2026-08" {
		t.Errorf("monthly 顺序错误: %+v", stats.Monthly)
	}
	if stats.Monthly[0].Total != 3000 || stats.Monthly[0].Invoiced != 1000 || stats.Monthly[0].Pending != 2000 {
		t.Errorf("2026-07 点位错误: %+v", stats.Monthly[0])
	}

	// 支付方式按金额降序
	if len(stats.ByMethod) != 2 {
		t.Fatalf("by_method 点数 = %d, want 2", len(stats.ByMethod))
	}
	if stats.ByMethod[0].Method != "qr" || stats.ByMethod[0].Total != 3000 {
		t.Errorf("by_method[0] = %+v", stats.ByMethod[0])
	}
}

func TestDashboardService_Stats_Empty(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc := newDashboardService(db)

	stats, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("空数据 Stats 失败: %v", err)
	}

	if stats.TotalAmount != 0 || stats.TotalTransfers != 0 {
		t.Errorf("空数据指标非零: %+v", stats)
	}
	if stats.Monthly == nil || stats.ByMethod == nil {
		t.Errorf("图表序列应为空数组而非 null")
	}
}

func TestDashboardService_Stats_MPLinked(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc := newDashboardService(db)

	db.Create(&model.MPCredential{UserID: 1, MPUserID: 123, AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})

	stats, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("Stats 失败: %v", err)
	}
	if !stats.MPLinked {
		t.Errorf("已绑定用户 mp_linked = false")
	}
}
