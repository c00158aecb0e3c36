package channel

import (
	"context"

	"task-assistant/internal/model"
	"task-assistant/pkg/telegram"
)

type telegramSender struct {
	notifier *telegram.Notifier
}

func NewTelegramSender(notifier *telegram.Notifier) Sender {
	return &telegramSender{notifier: notifier}
}

func (s *telegramSender) Name() string {
	return model.ChannelTelegram
}

func (s *telegramSender) Enabled(user *model.User) bool {
	return user.TelegramEnabled && user.HasDestination(model.ChannelTelegram)
}

func (s *telegramSender) Ready(ctx context.Context) bool {
	return s.notifier != nil
}

func (s *telegramSender) Send(ctx context.Context, user *model.User, msg Message) error {
	return s.notifier.SendMessage(ctx, user.TelegramChatID, msg.HTML)
}
