package model

import "time"

// 用户状态常量
// 禁用态不能用 0：gorm 对带 default 标签的字段会跳过零值，写入会被默认值顶掉
const (
	UserStatusActive   = 1 // 正常
	UserStatusDisabled = 2 // 已禁用
)

// 系统级角色
const (
	RoleAdmin = "admin" // 管理员
	RoleUser  = "user"  // 普通商户用户
)

// SysUser 系统用户 (商户账号)
type SysUser struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt 哈希
	Email    string `gorm:"size:100"`

	Role   string `gorm:"size:20;default:'user'"`
	Status int    `gorm:"default:1;comment:状态 1-正常 2-禁用"`

	LastLoginAt *time.Time

	// 关联关系
	Credential *MPCredential `gorm:"foreignKey:UserID"`
}

func (SysUser) TableName() string {
	return "sys_users"
}
