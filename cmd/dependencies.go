package cmd

import (
	"context"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/telebot.v3"

	"task-assistant/config"
	"task-assistant/internal/channel"
	"task-assistant/pkg/cache"
	"task-assistant/pkg/httpclient"
	"task-assistant/pkg/logger"
	"task-assistant/pkg/postgres"
	"task-assistant/pkg/telegram"
)

type AppDependency struct {
	db        *postgres.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	senders   []channel.Sender
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return logger.NewAlertCore(core, cfg.Telegram.BotToken, cfg.Telegram.AlertChatID, zapcore.ErrorLevel)
	}))
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(cfg.DB, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	pref := telebot.Settings{
		Token:  cfg.Telegram.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			log.Error("Telegram bot error", zap.Error(err))
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Error("Failed to create telegram bot", zap.Error(err))
		return nil, err
	}

	wahaClient := httpclient.New(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Timeout, "X-Api-Key", cfg.WhatsApp.APIKey)

	senders := []channel.Sender{
		channel.NewTelegramSender(telegram.NewNotifier(&cfg.Telegram, log, bot)),
		channel.NewWhatsAppSender(&cfg.WhatsApp, log, wahaClient),
		channel.NewEmailSender(&cfg.Email),
	}

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		db:        db,
		echo:      echo.New(),
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		senders:   senders,
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
