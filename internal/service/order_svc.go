package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/pkg/mercadopago"
)

// ==================== OrderService QR 收款订单服务 ====================

// OrderService 在已配置好的 POS 上挂载/撤销收款订单
type OrderService struct {
	terminalSvc *TerminalService
	mp          *mercadopago.Client
}

// NewOrderService 创建订单服务
func NewOrderService(terminalSvc *TerminalService, mp *mercadopago.Client) *OrderService {
	return &OrderService{terminalSvc: terminalSvc, mp: mp}
}

// CreateOrder 在 POS 上挂载收款订单
// PUT 语义：同一 POS 上后写覆盖先写。为避免 MP 侧偶发的旧订单残留，
// 先尽力删除旧订单再写入；删除失败只记软告警，不阻断收款
func (s *OrderService) CreateOrder(ctx context.Context, cred *model.MPCredential, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	// 金额校验在任何网络调用之前
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	storeExtID := req.ExternalStoreID
	posExtID := req.ExternalPosID
	var knownQR string

	// 前端未指定终端时走发现流程补齐
	if posExtID == "" || storeExtID == "" {
		term, err := s.terminalSvc.GetTerminalData(ctx, cred)
		if err != nil {
			return nil, err
		}
		if term.NeedsSetup {
			return nil, ErrTerminalNotReady
		}
		if storeExtID == "" {
			storeExtID = mercadopago.StoreExternalID(cred.MPUserID)
		}
		if posExtID == "" {
			posExtID = term.ExternalPosID
		}
		knownQR = term.QRImage
	}

	var warning string
	if err := s.mp.DeleteOrder(ctx, cred.AccessToken, cred.MPUserID, posExtID); err != nil {
		warning = "删除旧订单失败，新订单可能未立即生效"
		log.Printf("删除旧订单失败 (pos=%s): %v", posExtID, err)
	}

	extRef := orderReference()
	title := req.Description
	if title == "" {
		title = "Cobro Easypay"
	}

	orderResp, err := s.mp.PutOrder(ctx, cred.AccessToken, cred.MPUserID, storeExtID, posExtID, &mercadopago.OrderReq{
		ExternalReference: extRef,
		Title:             title,
		Description:       title,
		TotalAmount:       req.Amount,
		Items: []mercadopago.OrderItem{
			{
				ExternalCode: extRef,
				Category:     "general",
				Title:        title,
				Description:  title,
				UnitPrice:    req.Amount,
				Quantity:     1,
				UnitMeasure:  "unit",
				TotalAmount:  req.Amount,
				CurrencyID:   "ARS",
			},
		},
	})
	if err != nil {
		if mercadopago.IsUnauthorized(err) {
			return nil, ErrReauthRequired
		}
		return nil, err
	}

	resp := &dto.OrderResponse{
		Success:           true,
		ExternalReference: extRef,
		QRImage:           knownQR,
		Warning:           warning,
	}
	if orderResp != nil && orderResp.QRData != "" {
		resp.QRData = orderResp.QRData
	}
	return resp, nil
}

// DeleteOrder 撤销 POS 上挂载的订单，MP 侧不存在视为已撤销
func (s *OrderService) DeleteOrder(ctx context.Context, cred *model.MPCredential, posExtID string) error {
	if posExtID == "" {
		posExtID = mercadopago.PosExternalID(cred.MPUserID, "")
	}
	if err := s.mp.DeleteOrder(ctx, cred.AccessToken, cred.MPUserID, posExtID); err != nil {
		if mercadopago.IsUnauthorized(err) {
			return ErrReauthRequired
		}
		return err
	}
	return nil
}

// CreatePreference 创建线上支付链接 (Checkout Pro)
func (s *OrderService) CreatePreference(ctx context.Context, cred *model.MPCredential, req *dto.CreatePreferenceRequest) (*dto.PreferenceResponse, error) {
	pref, err := s.mp.CreatePreference(ctx, cred.AccessToken, &mercadopago.PreferenceReq{
		Items: []mercadopago.PrefItem{
			{
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  req.Price,
				CurrencyID: "ARS",
			},
		},
		BackURLs: mercadopago.PrefBackURLs{
			Success: "https://easypay.com/cobros",
			Failure: "https://easypay.com/cobros",
			Pending: "https://easypay.com/cobros",
		},
		AutoReturn: "approved",
	})
	if err != nil {
		if mercadopago.IsUnauthorized(err) {
			return nil, ErrReauthRequired
		}
		return nil, err
	}
	return &dto.PreferenceResponse{
		Success:          true,
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
	}, nil
}

// orderReference 外部参考号，毫秒时间戳保证单用户内唯一
var orderReference = func() string {
	return fmt.Sprintf("order_%d", time.Now().UnixMilli())
}

// ==================== 错误定义 ====================

var (
	ErrInvalidAmount    = errors.New("收款金额必须大于 0")
	ErrTerminalNotReady = errors.New("终端未配置，请先创建店铺")
)
