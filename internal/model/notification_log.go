package model

import (
	"database/sql"
	"time"
)

// Delivery channels.
const (
	ChannelTelegram = "telegram"
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// Notification statuses.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// NotificationLog records one channel-send attempt. Rows are append-only and
// never read back by the scheduler; they exist for auditing.
type NotificationLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	TaskID      *uint          `gorm:"index" json:"task_id,omitempty"`
	AssistantID *uint          `gorm:"index" json:"assistant_id,omitempty"`
	Channel     string         `gorm:"type:varchar(20);not null" json:"channel"`
	Message     string         `gorm:"type:text;not null" json:"message"`
	Status      string         `gorm:"type:varchar(20);not null" json:"status"`
	Error       sql.NullString `gorm:"type:text" json:"error"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
