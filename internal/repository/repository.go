package repository

import (
	"gorm.io/gorm"

	"task-assistant/config"
	"task-assistant/pkg/logger"
)

type Repository struct {
	UserRepo            UserRepository
	TaskRepo            TaskRepository
	AssistantRepo       AssistantRepository
	ScriptRepo          ScriptRepository
	NotificationLogRepo NotificationLogRepository
	UnitOfWork          UnitOfWork
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		UserRepo:            NewUserRepository(db),
		TaskRepo:            NewTaskRepository(db),
		AssistantRepo:       NewAssistantRepository(db),
		ScriptRepo:          NewScriptRepository(db),
		NotificationLogRepo: NewNotificationLogRepository(db),
		UnitOfWork:          NewUnitOfWork(db),
	}, nil
}
