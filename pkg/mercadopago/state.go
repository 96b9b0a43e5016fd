package mercadopago

// TerminalState 终端配置状态
// 状态不落库，完全由 MP 侧的查询结果推导，避免本地/远端两份状态互相漂移
type TerminalState int

const (
	// StateNoStore 还没有店铺，需要走初始配置
	StateNoStore TerminalState = iota
	// StateStoreOnly 有店铺但主 POS 缺失 (店铺重建后的典型中间态)
	StateStoreOnly
	// StateStoreWithPos 店铺和主 POS 齐备，可以收款
	StateStoreWithPos
)

func (s TerminalState) String() string {
	switch s {
	case StateNoStore:
		return "no_store"
	case StateStoreOnly:
		return "store_only"
	case StateStoreWithPos:
		return "store_with_pos"
	default:
		return "unknown"
	}
}

// ResolveTerminalState 由查询结果推导状态 (纯函数)
func ResolveTerminalState(store *StoreResp, pos *PosResp) TerminalState {
	if store == nil {
		return StateNoStore
	}
	if pos == nil {
		return StateStoreOnly
	}
	return StateStoreWithPos
}
