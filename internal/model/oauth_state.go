package model

import "time"

// OAuthStateTTL state 令牌有效期，授权跳转一个来回绰绰有余
const OAuthStateTTL = 10 * time.Minute

// OAuthState OAuth 回调防伪令牌
// 一次性使用：兑换成功即删除，过期由定时任务清理
type OAuthState struct {
	BaseModel
	State     string    `gorm:"size:128;uniqueIndex;not null"` // 高熵随机串
	UserID    int64     `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

func (OAuthState) TableName() string {
	return "oauth_states"
}

// IsExpired 是否已过期
func (s *OAuthState) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
