package model

import (
	"database/sql"
	"time"
)

const (
	ExecutionStateSuccess = "success"
	ExecutionStateFailed  = "failed"
)

// ScriptExecution is an append-only log row per script run.
type ScriptExecution struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ScriptID    uint           `gorm:"not null;index" json:"script_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	State       string         `gorm:"type:varchar(20);not null" json:"state"`
	Output      string         `gorm:"type:text" json:"output"`
	Error       sql.NullString `gorm:"type:text" json:"error"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt sql.NullTime   `json:"completed_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (ScriptExecution) TableName() string {
	return "script_executions"
}
