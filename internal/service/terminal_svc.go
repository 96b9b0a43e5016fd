package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
	"github.com/francisconatale/easypay/pkg/mercadopago"
)

// 建店默认值
// 坐标表单不采集，统一落在布宜诺斯艾利斯市中心
const (
	defaultPosName   = "Caja Principal"
	defaultLatitude  = -34.603722
	defaultLongitude = -58.381592
	defaultReference = "Easypay Store"
)

// ==================== TerminalService 终端配置服务 ====================

// TerminalService 店铺(Sucursal)与 POS(Caja) 的发现和配置
// 所有方法都显式接收凭证，不读任何全局会话状态
type TerminalService struct {
	credRepo repository.CredentialRepository
	mp       *mercadopago.Client
}

// NewTerminalService 创建终端服务
func NewTerminalService(credRepo repository.CredentialRepository, mp *mercadopago.Client) *TerminalService {
	return &TerminalService{credRepo: credRepo, mp: mp}
}

// LoadCredential 加载用户凭证，未绑定返回 ErrNotLinked
func (s *TerminalService) LoadCredential(ctx context.Context, userID int64) (*model.MPCredential, error) {
	cred, err := s.credRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询凭证失败: %w", err)
	}
	if cred == nil {
		return nil, ErrNotLinked
	}
	return cred, nil
}

// GetTerminalData 终端状态发现
// 按确定性外部 ID 查店铺和主 POS，推导状态后补齐缺口：
//   - 无店铺       -> needs_setup，引导用户走建店表单，不做任何创建
//   - 有店铺无 POS -> 就地补建主 POS
//   - 齐备         -> 直接复用
func (s *TerminalService) GetTerminalData(ctx context.Context, cred *model.MPCredential) (*dto.TerminalResponse, error) {
	storeExtID := mercadopago.StoreExternalID(cred.MPUserID)
	posExtID := mercadopago.PosExternalID(cred.MPUserID, "")

	store, err := s.mp.SearchStore(ctx, cred.AccessToken, cred.MPUserID, storeExtID)
	if err != nil {
		return nil, s.mapProviderErr(err)
	}
	if store == nil {
		return &dto.TerminalResponse{
			NeedsSetup: true,
			State:      mercadopago.StateNoStore.String(),
		}, nil
	}

	pos, err := s.mp.SearchPos(ctx, cred.AccessToken, posExtID)
	if err != nil {
		return nil, s.mapProviderErr(err)
	}

	state := mercadopago.ResolveTerminalState(store, pos)
	if state == mercadopago.StateStoreOnly {
		// 店在 POS 不在，就地补建
		pos, err = s.mp.CreatePos(ctx, cred.AccessToken, &mercadopago.PosCreateReq{
			Name:        defaultPosName,
			StoreID:     store.ID,
			ExternalID:  posExtID,
			FixedAmount: true,
		})
		if err != nil {
			return nil, s.mapProviderErr(err)
		}
		state = mercadopago.StateStoreWithPos
	}

	resp := &dto.TerminalResponse{
		Success:       true,
		State:         state.String(),
		StoreID:       store.ID.String(),
		StoreName:     store.Name,
		ExternalPosID: pos.ExternalID,
	}
	if pos.QR != nil {
		resp.QRImage = pos.QR.Image
	}
	return resp, nil
}

// CreateStoreAndPos 初始配置：创建店铺 + 主 POS
// POS external_id 在 MP 侧跨店铺唯一：店铺删了重建后，旧 POS 可能还挂在
// 已删除的 store 上，再建会撞 409。这里按冲突和解：查出旧 POS，把它的
// store 归属改到新店铺上，而不是让整个配置流程失败
func (s *TerminalService) CreateStoreAndPos(ctx context.Context, cred *model.MPCredential, req *dto.CreateStoreRequest) (*dto.TerminalResponse, error) {
	storeExtID := mercadopago.StoreExternalID(cred.MPUserID)
	posExtID := mercadopago.PosExternalID(cred.MPUserID, "")

	store, err := s.mp.CreateStore(ctx, cred.AccessToken, cred.MPUserID, &mercadopago.StoreCreateReq{
		Name:       req.Name,
		ExternalID: storeExtID,
		Location: mercadopago.StoreLocation{
			StreetName:   req.StreetName,
			StreetNumber: req.StreetNumber,
			CityName:     req.CityName,
			StateName:    req.StateName,
			Latitude:     defaultLatitude,
			Longitude:    defaultLongitude,
			Reference:    defaultReference,
		},
	})
	if err != nil {
		return nil, s.mapProviderErr(err)
	}

	pos, err := s.mp.CreatePos(ctx, cred.AccessToken, &mercadopago.PosCreateReq{
		Name:        defaultPosName,
		StoreID:     store.ID,
		ExternalID:  posExtID,
		FixedAmount: true,
	})
	if mercadopago.IsConflict(err) {
		pos, err = s.relinkExistingPos(ctx, cred, posExtID, store)
	}
	if err != nil {
		return nil, s.mapProviderErr(err)
	}

	resp := &dto.TerminalResponse{
		Success:       true,
		State:         mercadopago.StateStoreWithPos.String(),
		StoreID:       store.ID.String(),
		StoreName:     store.Name,
		ExternalPosID: pos.ExternalID,
	}
	if pos.QR != nil {
		resp.QRImage = pos.QR.Image
	}
	return resp, nil
}

// relinkExistingPos 409 和解分支：按 external_id 找回已存在的 POS，改挂到新店铺
func (s *TerminalService) relinkExistingPos(ctx context.Context, cred *model.MPCredential, posExtID string, store *mercadopago.StoreResp) (*mercadopago.PosResp, error) {
	existing, err := s.mp.SearchPos(ctx, cred.AccessToken, posExtID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// 409 却查不到：MP 侧数据不一致，只能报错让用户重试
		return nil, fmt.Errorf("POS external_id 冲突但搜索不到已有 POS (%s)", posExtID)
	}
	return s.mp.UpdatePos(ctx, cred.AccessToken, existing.ID, &mercadopago.PosUpdateReq{
		StoreID: store.ID,
	})
}

// CreateAdditionalPos 创建附加 POS
// 外部 ID 在确定性前缀后追加时间戳后 6 位，同一用户可开多个收银点
func (s *TerminalService) CreateAdditionalPos(ctx context.Context, cred *model.MPCredential, name string) (*dto.PosInfo, error) {
	storeExtID := mercadopago.StoreExternalID(cred.MPUserID)

	store, err := s.mp.SearchStore(ctx, cred.AccessToken, cred.MPUserID, storeExtID)
	if err != nil {
		return nil, s.mapProviderErr(err)
	}
	if store == nil {
		return nil, ErrPrimaryStoreMissing
	}

	suffix := uniqueSuffix()
	newPosExtID := mercadopago.PosExternalID(cred.MPUserID, suffix)

	pos, err := s.mp.CreatePos(ctx, cred.AccessToken, &mercadopago.PosCreateReq{
		Name:        name,
		StoreID:     store.ID,
		ExternalID:  newPosExtID,
		FixedAmount: true,
	})
	if err != nil {
		return nil, s.mapProviderErr(err)
	}

	info := &dto.PosInfo{
		ID:         pos.ID,
		Name:       pos.Name,
		ExternalID: pos.ExternalID,
	}
	if pos.QR != nil {
		info.QRImage = pos.QR.Image
	}
	return info, nil
}

// DeleteStore 删除店铺 (MP 内部数字 ID)
func (s *TerminalService) DeleteStore(ctx context.Context, cred *model.MPCredential, storeID string) error {
	if err := s.mp.DeleteStore(ctx, cred.AccessToken, cred.MPUserID, storeID); err != nil {
		return s.mapProviderErr(err)
	}
	return nil
}

// DeletePos 删除 POS
func (s *TerminalService) DeletePos(ctx context.Context, cred *model.MPCredential, posID int64) error {
	if err := s.mp.DeletePos(ctx, cred.AccessToken, posID); err != nil {
		return s.mapProviderErr(err)
	}
	return nil
}

// ListStores 列出店铺
func (s *TerminalService) ListStores(ctx context.Context, cred *model.MPCredential) ([]dto.StoreInfo, error) {
	stores, err := s.mp.ListStores(ctx, cred.AccessToken, cred.MPUserID)
	if err != nil {
		return nil, s.mapProviderErr(err)
	}
	out := make([]dto.StoreInfo, 0, len(stores))
	for _, st := range stores {
		out = append(out, dto.StoreInfo{
			ID:         st.ID.String(),
			Name:       st.Name,
			ExternalID: st.ExternalID,
		})
	}
	return out, nil
}

// ListPos 列出 POS
func (s *TerminalService) ListPos(ctx context.Context, cred *model.MPCredential) ([]dto.PosInfo, error) {
	posList, err := s.mp.ListPos(ctx, cred.AccessToken)
	if err != nil {
		return nil, s.mapProviderErr(err)
	}
	out := make([]dto.PosInfo, 0, len(posList))
	for _, p := range posList {
		info := dto.PosInfo{
			ID:         p.ID,
			Name:       p.Name,
			ExternalID: p.ExternalID,
		}
		if p.QR != nil {
			info.QRImage = p.QR.Image
		}
		out = append(out, info)
	}
	return out, nil
}

// ==================== 内部辅助 ====================

// mapProviderErr 统一错误口径：401/403 说明凭证失效，引导重新授权
func (s *TerminalService) mapProviderErr(err error) error {
	if mercadopago.IsUnauthorized(err) {
		return ErrReauthRequired
	}
	return err
}

// uniqueSuffix 时间戳毫秒后 6 位
var uniqueSuffix = func() string {
	ms := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ms) <= 6 {
		return ms
	}
	return ms[len(ms)-6:]
}

// ==================== 错误定义 ====================

var (
	ErrNotLinked           = errors.New("尚未绑定 Mercado Pago 账号")
	ErrReauthRequired      = errors.New("MP 凭证已失效，请重新授权")
	ErrPrimaryStoreMissing = errors.New("主店铺不存在，请先完成店铺配置")
)
