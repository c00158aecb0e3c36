package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"task-assistant/internal/model"
	"task-assistant/pkg/utils"
)

type TaskRepository interface {
	FindDueForReminder(ctx context.Context, windowStart, windowEnd time.Time, opts ...utils.DBOption) ([]model.Task, error)
	FindOverdue(ctx context.Context, now time.Time, opts ...utils.DBOption) ([]model.Task, error)
	FindActiveForUserBetween(ctx context.Context, userID uint, from, to time.Time, opts ...utils.DBOption) ([]model.Task, error)
	MarkNotifySent(ctx context.Context, taskID uint, opts ...utils.DBOption) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// FindDueForReminder returns active tasks with an unsent reminder whose due
// time falls inside the half-open window (windowStart, windowEnd].
func (r *taskRepository) FindDueForReminder(ctx context.Context, windowStart, windowEnd time.Time, opts ...utils.DBOption) ([]model.Task, error) {
	var tasks []model.Task
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("complete_time IS NULL AND cancel_time IS NULL").
		Where("notify_sent = ?", false).
		Where("time IS NOT NULL AND time > ? AND time <= ?", windowStart, windowEnd).
		Preload("User").
		Preload("Assistant").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindOverdue returns every active task whose due time is strictly before now,
// regardless of notify_sent.
func (r *taskRepository) FindOverdue(ctx context.Context, now time.Time, opts ...utils.DBOption) ([]model.Task, error) {
	var tasks []model.Task
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("complete_time IS NULL AND cancel_time IS NULL").
		Where("time IS NOT NULL AND time < ?", now).
		Order("time ASC").
		Preload("User").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindActiveForUserBetween(ctx context.Context, userID uint, from, to time.Time, opts ...utils.DBOption) ([]model.Task, error) {
	var tasks []model.Task
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("user_id = ?", userID).
		Where("complete_time IS NULL AND cancel_time IS NULL").
		Where("time IS NOT NULL AND time >= ? AND time < ?", from, to).
		Order("time ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) MarkNotifySent(ctx context.Context, taskID uint, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("notify_sent", true).Error
}
