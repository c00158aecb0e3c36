package model

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

type Task struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	AssistantID  *uint  `gorm:"index" json:"assistant_id,omitempty"`
	Name         string `gorm:"type:varchar(500);not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Time         sql.NullTime   `json:"time"`
	NotifySent   bool           `gorm:"default:false" json:"notify_sent"`
	CompleteTime sql.NullTime   `json:"complete_time"`
	CancelTime   sql.NullTime   `json:"cancel_time"`
	Tags         datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	ExtraData    datatypes.JSON `gorm:"type:jsonb" json:"extra_data"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User      User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Assistant *Assistant `gorm:"foreignKey:AssistantID;references:ID" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsActive reports whether the task is neither completed nor cancelled.
func (t *Task) IsActive() bool {
	return !t.CompleteTime.Valid && !t.CancelTime.Valid
}
