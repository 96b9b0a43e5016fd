package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
)

// ==================== ClientService 客户档案服务 ====================

// ClientService 客户档案的增删改查，全部按当前用户隔离
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService 创建客户服务
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create 新建客户
func (s *ClientService) Create(ctx context.Context, userID int64, req *dto.ClientRequest) (*model.Client, error) {
	client := &model.Client{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		DNI:     req.DNI,
		CUIT:    req.CUIT,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("创建客户失败: %w", err)
	}
	return client, nil
}

// Get 查询单个客户
func (s *ClientService) Get(ctx context.Context, userID, id int64) (*model.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("查询客户失败: %w", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// Update 更新客户
func (s *ClientService) Update(ctx context.Context, userID, id int64, req *dto.ClientRequest) (*model.Client, error) {
	client, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.DNI = req.DNI
	client.CUIT = req.CUIT
	client.Address = req.Address
	client.Notes = req.Notes

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("更新客户失败: %w", err)
	}
	return client, nil
}

// Delete 删除客户
func (s *ClientService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, userID, id)
}

// List 客户列表，search 按名称/邮箱模糊过滤
func (s *ClientService) List(ctx context.Context, userID int64, search string) ([]model.Client, error) {
	return s.clientRepo.List(ctx, userID, search)
}

var ErrClientNotFound = errors.New("客户不存在")
