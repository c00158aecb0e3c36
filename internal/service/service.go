package service

import (
	"task-assistant/config"
	"task-assistant/internal/channel"
	"task-assistant/internal/contract"
	"task-assistant/internal/i18n"
	"task-assistant/internal/repository"
	"task-assistant/pkg/cache"
	"task-assistant/pkg/logger"
)

type Service struct {
	SchedulerService SchedulerService
	Dispatcher       Dispatcher
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	senders []channel.Sender,
	executor contract.ScriptExecutor,
) *Service {
	localizer := i18n.NewLocalizer(cfg.App.DefaultLanguage)
	dispatcher := NewDispatcher(log, senders, repo.NotificationLogRepo)
	gate := NewOverdueGate(inmemoryCache)

	schedulerService := NewSchedulerService(
		cfg,
		log,
		repo,
		dispatcher,
		executor,
		newRenderer(cfg, localizer),
		gate,
	)

	return &Service{
		SchedulerService: schedulerService,
		Dispatcher:       dispatcher,
	}
}
