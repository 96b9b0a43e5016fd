package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/francisconatale/easypay/internal/middleware"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
	"github.com/francisconatale/easypay/internal/service"
)

// ==================== 测试辅助 ====================

func setupTransferCtlTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&model.Transfer{})

	svc := service.NewTransferService(repository.NewTransferRepository(db))
	ctl := NewTransferController(svc)

	r := gin.New()
	r.Use(gin.Recovery())
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, int64(7))
		c.Next()
	})
	api.GET("/transfers", ctl.List)
	api.POST("/transfers", ctl.Create)
	api.POST("/transfers/import", ctl.Import)
	api.PUT("/transfers/:id", ctl.Update)
	api.DELETE("/transfers/:id", ctl.Delete)
	api.GET("/transfers/invoices", ctl.ListInvoices)
	api.POST("/transfers/invoices", ctl.AssignInvoice)

	return r, db
}

// ==================== 单元测试 ====================

func TestTransferController_Create_Validation(t *testing.T) {
	r, _ := setupTransferCtlTest(t)

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
	}{
		{
			name:       "正常创建",
			body:       gin.H{"amount": 1500.50, "description": "Pago consultoría", "transaction_date": "2026-08-01T10:00:00Z"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "金额为零",
			body:       gin.H{"amount": 0, "transaction_date": "2026-08-01T10:00:00Z"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "金额为负",
			body:       gin.H{"amount": -100, "transaction_date": "2026-08-01T10:00:00Z"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "缺少交易日期",
			body:       gin.H{"amount": 200},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/transfers", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTransferController_Import(t *testing.T) {
	r, db := setupTransferCtlTest(t)

	w := postJSON(r, "/api/transfers/import", gin.H{
		"transfers": []gin.H{
			{"amount": 100, "payer_name": "Juan", "transaction_date": "2026-08-01T10:00:00Z"},
			{"amount": 250, "payer_name": "Ana", "transaction_date": "2026-08-02T10:00:00Z"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(0), resp["code"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["count"])
	batch, _ := data["import_batch"].(string)
	assert.NotEmpty(t, batch)

	// 两条流水共享同一批次号
	var count int64
	db.Model(&model.Transfer{}).Where("import_batch = ?", batch).Count(&count)
	assert.Equal(t, int64(2), count)

	// 空列表拒绝
	w = postJSON(r, "/api/transfers/import", gin.H{"transfers": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransferController_AssignInvoice(t *testing.T) {
	r, db := setupTransferCtlTest(t)

	transfers := []model.Transfer{
		{UserID: 7, Amount: 100, TransactionDate: time.Now()},
		{UserID: 7, Amount: 200, TransactionDate: time.Now()},
		{UserID: 99, Amount: 300, TransactionDate: time.Now()}, // 别人的流水
	}
	db.Create(&transfers)

	w := postJSON(r, "/api/transfers/invoices", gin.H{
		"transfer_ids":   []int64{transfers[0].ID, transfers[1].ID, transfers[2].ID},
		"invoice_number": "FC-0001-00001234",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["affected"]) // 跨用户的那条不受影响

	var other model.Transfer
	db.First(&other, transfers[2].ID)
	assert.False(t, other.Invoiced)
	assert.Empty(t, other.InvoiceNumber)

	// 缺发票号
	w = postJSON(r, "/api/transfers/invoices", gin.H{"transfer_ids": []int64{transfers[0].ID}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransferController_ListInvoices(t *testing.T) {
	r, db := setupTransferCtlTest(t)

	db.Create(&[]model.Transfer{
		{UserID: 7, Amount: 100, Invoiced: true, InvoiceNumber: "FC-0001", TransactionDate: time.Now()},
		{UserID: 7, Amount: 200, Invoiced: true, InvoiceNumber: "FC-0001", TransactionDate: time.Now()},
		{UserID: 7, Amount: 500, Invoiced: true, InvoiceNumber: "FC-0002", TransactionDate: time.Now()},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/transfers/invoices", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	groups := resp["data"].([]interface{})
	assert.Len(t, groups, 2)
}

func TestTransferController_UpdateDelete(t *testing.T) {
	r, db := setupTransferCtlTest(t)

	transfer := model.Transfer{UserID: 7, Amount: 100, TransactionDate: time.Now()}
	db.Create(&transfer)

	w := putJSON(r, "/api/transfers/"+itoa(transfer.ID), gin.H{
		"amount":           180.0,
		"payer_name":       "Carlos",
		"transaction_date": "2026-08-05T10:00:00Z",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Transfer
	db.First(&updated, transfer.ID)
	assert.Equal(t, 180.0, updated.Amount)
	assert.Equal(t, "Carlos", updated.PayerName)

	// 不存在的 ID
	w = putJSON(r, "/api/transfers/999999", gin.H{
		"amount": 1.0, "transaction_date": "2026-08-05T10:00:00Z",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 删除
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/transfers/"+itoa(transfer.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&model.Transfer{}).Where("user_id = ?", 7).Count(&count)
	assert.Equal(t, int64(0), count)
}
