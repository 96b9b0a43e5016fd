package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
)

func setupClientTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.Client{})
	return db
}

func TestClientService_CRUD(t *testing.T) {
	db := setupClientTestDB(t)
	svc := NewClientService(repository.NewClientRepository(db))
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &dto.ClientRequest{
		Name:  "Juan Perez",
		Email: "juan@example.com",
		DNI:   "30123456",
		CUIT:  "20-30123456-7",
	})
	if err != nil {
		t.Fatalf("创建客户失败: %v", err)
	}

	updated, err := svc.Update(ctx, 1, created.ID, &dto.ClientRequest{
		Name:  "Juan P. Perez",
		Phone: "+54 11 5555-0001",
	})
	if err != nil {
		t.Fatalf("更新客户失败: %v", err)
	}
	if updated.Name != "Juan P. Perez" {
		t.Errorf("name = %s", updated.Name)
	}
	// 全量更新：没传的字段清空
	if updated.Email != "" {
		t.Errorf("email 未清空: %s", updated.Email)
	}

	if err := svc.Delete(ctx, 1, created.ID); err != nil {
		t.Fatalf("删除客户失败: %v", err)
	}
	if _, err := svc.Get(ctx, 1, created.ID); err != ErrClientNotFound {
		t.Errorf("删除后查询 err = %v, want ErrClientNotFound", err)
	}
}

func TestClientService_List_Search(t *testing.T) {
	db := setupClientTestDB(t)
	svc := NewClientService(repository.NewClientRepository(db))
	ctx := context.Background()

	svc.Create(ctx, 1, &dto.ClientRequest{Name: "Juan Perez", Email: "juan@example.com"})
	svc.Create(ctx, 1, &dto.ClientRequest{Name: "Maria Lopez", Email: "maria@example.com", CUIT: "30-71234567-8"})
	svc.Create(ctx, 2, &dto.ClientRequest{Name: "Juan Ajeno"})

	all, err := svc.List(ctx, 1, "")
	if err != nil {
		t.Fatalf("列表失败: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("客户数 = %d, want 2", len(all))
	}

	found, err := svc.List(ctx, 1, "juan")
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Juan Perez" {
		t.Errorf("搜索结果 = %+v", found)
	}

	// 按税号搜索要命中 cuit 列
	byCUIT, err := svc.List(ctx, 1, "71234567")
	if err != nil {
		t.Fatalf("按税号搜索失败: %v", err)
	}
	if len(byCUIT) != 1 || byCUIT[0].Name != "Maria Lopez" {
		t.Errorf("税号搜索结果 = %+v", byCUIT)
	}
}
