package model

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// Recurrence units accepted in Assistant.RunEvery.
const (
	RunEveryMinute  = "minute"
	RunEveryHourly  = "hourly"
	RunEveryDaily   = "daily"
	RunEveryWeekly  = "weekly"
	RunEveryMonthly = "monthly"
	RunEveryOnce    = "once"
)

type Assistant struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Name           string         `gorm:"type:varchar(200);not null" json:"name"`
	NotifyTelegram bool           `gorm:"default:true" json:"notify_telegram"`
	NotifyEmail    bool           `gorm:"default:false" json:"notify_email"`
	RunEvery       sql.NullString `gorm:"type:varchar(20)" json:"run_every"`
	CronExpr       sql.NullString `gorm:"type:varchar(100)" json:"cron_expr"`
	NextRunTime    sql.NullTime   `json:"next_run_time"`
	LastRunAt      sql.NullTime   `json:"last_run_at"`
	TemplateID     *uint          `json:"template_id,omitempty"`
	Settings       datatypes.JSON `gorm:"type:jsonb" json:"settings"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User     User             `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Template *MessageTemplate `gorm:"foreignKey:TemplateID;references:ID" json:"-"`
	Scripts  []Script         `gorm:"foreignKey:AssistantID;references:ID" json:"-"`
}

func (Assistant) TableName() string {
	return "assistants"
}

type MessageTemplate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AssistantID uint      `gorm:"not null;index" json:"assistant_id"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MessageTemplate) TableName() string {
	return "message_templates"
}
