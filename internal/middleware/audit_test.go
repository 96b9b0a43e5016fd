package middleware

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/francisconatale/easypay/internal/model"
)

func TestAuditCallbacks(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&model.Client{})
	RegisterAuditCallbacks(db)

	ctx := WithAuditInfo(context.Background(), 42, "francisco")

	client := model.Client{UserID: 42, Name: "Juan Pérez"}
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	var saved model.Client
	db.First(&saved, client.ID)
	if saved.CreatedBy != 42 {
		t.Errorf("CreatedBy = %d, 期望 42", saved.CreatedBy)
	}
	if saved.UpdatedBy != 42 {
		t.Errorf("UpdatedBy = %d, 期望 42", saved.UpdatedBy)
	}

	// 换一个操作人更新，UpdatedBy 跟随，CreatedBy 不变
	ctx2 := WithAuditInfo(context.Background(), 99, "ana")
	saved.Name = "Juan P. García"
	saved.UpdatedBy = 0
	if err := db.WithContext(ctx2).Save(&saved).Error; err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	db.First(&saved, client.ID)
	if saved.CreatedBy != 42 {
		t.Errorf("更新后 CreatedBy = %d, 期望保持 42", saved.CreatedBy)
	}
	if saved.UpdatedBy != 99 {
		t.Errorf("更新后 UpdatedBy = %d, 期望 99", saved.UpdatedBy)
	}

	// 无审计上下文时不填充
	anon := model.Client{UserID: 1, Name: "Sin auditoría"}
	if err := db.Create(&anon).Error; err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	db.First(&anon, anon.ID)
	if anon.CreatedBy != 0 {
		t.Errorf("匿名写入 CreatedBy = %d, 期望 0", anon.CreatedBy)
	}
}
