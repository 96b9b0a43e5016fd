package dto

// ==================== 客户档案 ====================

// ClientRequest 新建/更新客户请求
// 只有 name 必填，其余都是选填 (与录入表单保持一致)
type ClientRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	DNI     string `json:"dni" binding:"max=20"`
	CUIT    string `json:"cuit" binding:"max=20"`
	Address string `json:"address" binding:"max=255"`
	Notes   string `json:"notes"`
}
