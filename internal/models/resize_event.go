package models

import (
	"time"

	"gorm.io/gorm"
)

// ResizeEvent records one resize request made through FrameFit
type ResizeEvent struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Timestamp     time.Time      `gorm:"not null;index" json:"timestamp"`
	WindowID      uint32         `gorm:"not null" json:"window_id"`
	AppName       string         `gorm:"not null;index" json:"app_name"`
	WindowTitle   string         `gorm:"not null" json:"window_title"`
	Width         int            `gorm:"not null" json:"width"`
	Height        int            `gorm:"not null" json:"height"`
	Centered      bool           `gorm:"not null;default:false" json:"centered"`
	Success       bool           `gorm:"not null;default:false" json:"success"`
	ErrorMsg      string         `json:"error_msg,omitempty"`
	DisplayServer string         `gorm:"not null" json:"display_server"` // "quartz", "x11" or "unsupported"
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type AppSummary struct {
	AppName      string  `json:"app_name"`
	ResizeCount  int     `json:"resize_count"`
	FailureCount int     `json:"failure_count"`
	Percentage   float64 `json:"percentage,omitempty"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

type Report struct {
	Period        ReportPeriod `json:"period"`
	Apps          []AppSummary `json:"apps"`
	TotalResizes  int          `json:"total_resizes"`
	TotalFailures int          `json:"total_failures"`
	GeneratedAt   time.Time    `json:"generated_at"`
}
