package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
)

// ==================== 测试辅助 ====================

func setupTransferTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.Transfer{})
	return db
}

func newTransferRequest(amount float64, method string) dto.TransferRequest {
	return dto.TransferRequest{
		Amount:          amount,
		Description:     "Pago de servicio",
		PayerName:       "Juan Perez",
		PaymentMethod:   method,
		TransactionDate: time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC),
	}
}

// ==================== 单元测试 ====================

func TestTransferService_CreateAndList(t *testing.T) {
	db := setupTransferTestDB(t)
	svc := NewTransferService(repository.NewTransferRepository(db))
	ctx := context.Background()

	req := newTransferRequest(2500, "qr")
	created, err := svc.Create(ctx, 1, &req)
	if err != nil {
		t.Fatalf("创建流水失败: %v", err)
	}
	if created.ImportBatch != "" {
		t.Errorf("手工录入不该有批次号: %s", created.ImportBatch)
	}

	// 用户隔离：别人的流水看不到
	other := newTransferRequest(999, "qr")
	svc.Create(ctx, 2, &other)

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("查询流水失败: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("流水数 = %d, want 1", len(list))
	}

	if _, err := svc.Get(ctx, 1, created.ID); err != nil {
		t.Errorf("查询单条失败: %v", err)
	}
	if _, err := svc.Get(ctx, 2, created.ID); err != ErrTransferNotFound {
		t.Errorf("跨用户查询 err = %v, want ErrTransferNotFound", err)
	}
}

func TestTransferService_Import(t *testing.T) {
	db := setupTransferTestDB(t)
	svc := NewTransferService(repository.NewTransferRepository(db))
	ctx := context.Background()

	batch, count, err := svc.Import(ctx, 1, &dto.TransferImportRequest{
		Transfers: []dto.TransferRequest{
			newTransferRequest(1000, "qr"),
			newTransferRequest(2000, "transferencia"),
			newTransferRequest(3000, "qr"),
		},
	})
	if err != nil {
		t.Fatalf("批量导入失败: %v", err)
	}
	if count != 3 {
		t.Errorf("导入条数 = %d, want 3", count)
	}
	if batch == "" {
		t.Fatalf("批次号为空")
	}

	// 同一批次共享批次号
	var sameBatch int64
	db.Model(&model.Transfer{}).Where("import_batch = ?", batch).Count(&sameBatch)
	if sameBatch != 3 {
		t.Errorf("批次内流水数 = %d, want 3", sameBatch)
	}
}

func TestTransferService_AssignInvoice(t *testing.T) {
	db := setupTransferTestDB(t)
	svc := NewTransferService(repository.NewTransferRepository(db))
	ctx := context.Background()

	var ids []int64
	for _, amount := range []float64{1000, 2000, 3000} {
		req := newTransferRequest(amount, "qr")
		tr, _ := svc.Create(ctx, 1, &req)
		ids = append(ids, tr.ID)
	}

	affected, err := svc.AssignInvoice(ctx, 1, &dto.InvoiceAssignRequest{
		TransferIDs:   ids[:2],
		InvoiceNumber: "FC-A-0001",
	})
	if err != nil {
		t.Fatalf("开票失败: %v", err)
	}
	if affected != 2 {
		t.Errorf("affected = %d, want 2", affected)
	}

	var invoiced int64
	db.Model(&model.Transfer{}).Where("invoiced = ? AND invoice_number = ?", true, "FC-A-0001").Count(&invoiced)
	if invoiced != 2 {
		t.Errorf("已开票流水数 = %d, want 2", invoiced)
	}

	// 别人的流水开不了票
	if _, err := svc.AssignInvoice(ctx, 2, &dto.InvoiceAssignRequest{
		TransferIDs:   ids,
		InvoiceNumber: "FC-A-0002",
	}); err != ErrTransferNotFound {
		t.Errorf("跨用户开票 err = %v, want ErrTransferNotFound", err)
	}
}

func TestTransferService_ListInvoices(t *testing.T) {
	db := setupTransferTestDB(t)
	svc := NewTransferService(repository.NewTransferRepository(db))
	ctx := context.Background()

	var ids []int64
	for _, amount := range []float64{1000, 2000, 5000} {
		req := newTransferRequest(amount, "qr")
		tr, _ := svc.Create(ctx, 1, &req)
		ids = append(ids, tr.ID)
	}
	svc.AssignInvoice(ctx, 1, &dto.InvoiceAssignRequest{TransferIDs: ids[:2], InvoiceNumber: "FC-A-0001"})
	svc.AssignInvoice(ctx, 1, &dto.InvoiceAssignRequest{TransferIDs: ids[2:], InvoiceNumber: "FC-A-0002"})

	groups, err := svc.ListInvoices(ctx, 1)
	if err != nil {
		t.Fatalf("查询发票分组失败: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("分组数 = %d, want 2", len(groups))
	}

	totals := map[string]float64{}
	counts := map[string]int{}
	for _, g := range groups {
		totals[g.InvoiceNumber] = g.Total
		counts[g.InvoiceNumber] = g.Count
	}
	if totals["FC-A-0001"] != 3000 || counts["FC-A-0001"] != 2 {
		t.Errorf("FC-A-0001 total=%v count=%d", totals["FC-A-0001"], counts["FC-A-0001"])
	}
	if totals["FC-A-0002"] != 5000 || counts["FC-A-0002"] != 1 {
		t.Errorf("FC-A-0002 total=%v count=%d", totals["FC-A-0002"], counts["FC-A-0002"])
	}
}
