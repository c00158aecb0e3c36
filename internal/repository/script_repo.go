package repository

import (
	"context"

	"gorm.io/gorm"

	"task-assistant/internal/model"
	"task-assistant/pkg/utils"
)

type ScriptRepository interface {
	FindByAssistant(ctx context.Context, assistantID uint, opts ...utils.DBOption) ([]model.Script, error)
	CreateExecution(ctx context.Context, execution *model.ScriptExecution, opts ...utils.DBOption) error
}

type scriptRepository struct {
	db *gorm.DB
}

func NewScriptRepository(db *gorm.DB) ScriptRepository {
	return &scriptRepository{db: db}
}

func (r *scriptRepository) FindByAssistant(ctx context.Context, assistantID uint, opts ...utils.DBOption) ([]model.Script, error) {
	var scripts []model.Script
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("assistant_id = ?", assistantID).
		Preload("SSHServer").
		Find(&scripts).Error
	if err != nil {
		return nil, err
	}
	return scripts, nil
}

func (r *scriptRepository) CreateExecution(ctx context.Context, execution *model.ScriptExecution, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(execution).Error
}
