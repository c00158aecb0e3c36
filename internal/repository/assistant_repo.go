package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"task-assistant/internal/model"
	"task-assistant/pkg/utils"
)

type AssistantRepository interface {
	FindDueForRun(ctx context.Context, now time.Time, opts ...utils.DBOption) ([]model.Assistant, error)
	UpdateSchedule(ctx context.Context, assistantID uint, runEvery sql.NullString, nextRun sql.NullTime, lastRun time.Time, opts ...utils.DBOption) error
}

type assistantRepository struct {
	db *gorm.DB
}

func NewAssistantRepository(db *gorm.DB) AssistantRepository {
	return &assistantRepository{db: db}
}

// FindDueForRun returns assistants with a recurrence (unit or cron) whose
// next_run_time has been reached.
func (r *assistantRepository) FindDueForRun(ctx context.Context, now time.Time, opts ...utils.DBOption) ([]model.Assistant, error) {
	var assistants []model.Assistant
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("(run_every IS NOT NULL OR cron_expr IS NOT NULL)").
		Where("next_run_time IS NOT NULL AND next_run_time <= ?", now).
		Preload("User").
		Preload("Template").
		Preload("Scripts").
		Preload("Scripts.SSHServer").
		Find(&assistants).Error
	if err != nil {
		return nil, err
	}
	return assistants, nil
}

// UpdateSchedule persists the post-run schedule. A null runEvery together
// with a null nextRun clears a one-shot assistant.
func (r *assistantRepository) UpdateSchedule(ctx context.Context, assistantID uint, runEvery sql.NullString, nextRun sql.NullTime, lastRun time.Time, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&model.Assistant{}).
		Where("id = ?", assistantID).
		Updates(map[string]interface{}{
			"run_every":     runEvery,
			"next_run_time": nextRun,
			"last_run_at":   lastRun,
		}).Error
}
