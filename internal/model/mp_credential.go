package model

import (
	"time"

	"gorm.io/datatypes"
)

// MPCredential Mercado Pago OAuth 凭证
// 每个用户最多一行 (user_id 唯一索引)，重新授权走 upsert 覆盖
type MPCredential struct {
	BaseModel
	UserID int64 `gorm:"uniqueIndex;not null"` // 本系统用户 ID
	// MPUserID 是 MP 侧的 collector id，所有 store/POS/order 调用都挂在它下面
	MPUserID int64 `gorm:"index;not null"`

	AccessToken  string `gorm:"size:255;not null"`
	RefreshToken string `gorm:"size:255"`
	PublicKey    string `gorm:"size:255"`
	Scope        string `gorm:"size:255"`
	LiveMode     bool   `gorm:"default:false"`

	ExpiresAt time.Time `gorm:"index"` // access_token 绝对过期时间

	// RawPayload 最近一次 token 响应原文，排查授权问题用
	RawPayload datatypes.JSON
}

func (MPCredential) TableName() string {
	return "mp_credentials"
}

// IsExpired access_token 是否已过期
func (c *MPCredential) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// ExpiresWithin access_token 是否将在 d 内过期
func (c *MPCredential) ExpiresWithin(d time.Duration) bool {
	return time.Now().Add(d).After(c.ExpiresAt)
}
