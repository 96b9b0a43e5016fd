package model

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AuditMixin 审计字段 (只记录，不参与查询条件)
// 由 middleware.RegisterAuditCallbacks 在写入时自动填充
type AuditMixin struct {
	CreatedBy int64 `gorm:"index" json:"-"`
	UpdatedBy int64 `gorm:"index" json:"-"`
}
