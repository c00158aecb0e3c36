package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"task-assistant/internal/model"
	"task-assistant/pkg/utils"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, entry *model.NotificationLog, opts ...utils.DBOption) error
	DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error)
}

type notificationLogRepository struct {
	db *gorm.DB
}

func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

func (r *notificationLogRepository) Create(ctx context.Context, entry *model.NotificationLog, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(entry).Error
}

// DeleteOlderThan prunes old audit rows; used by housekeeping, never by the
// dispatch path.
func (r *notificationLogRepository) DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error) {
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("created_at < ?", date).
		Delete(&model.NotificationLog{})
	return result.RowsAffected, result.Error
}
