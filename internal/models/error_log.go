package models

import (
	"time"

	"gorm.io/gorm"
)

// ErrorLog keeps failed window operations for later inspection
type ErrorLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Operation string         `gorm:"not null;index" json:"operation"` // e.g. "resize_frontmost_window"
	AppName   string         `json:"app_name,omitempty"`
	ErrorMsg  string         `gorm:"not null" json:"error_msg"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
