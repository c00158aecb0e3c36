package telegram

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"

	"task-assistant/config"
	"task-assistant/pkg/logger"
	"task-assistant/pkg/ratelimit"
)

// Notifier sends messages to Telegram chats, respecting the Bot API's global
// and per-chat rate limits.
type Notifier struct {
	cfg           *config.TelegramConfig
	log           *logger.Logger
	bot           *telebot.Bot
	globalLimiter *rate.Limiter
	chatLimiters  *ratelimit.LimiterStore
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *Notifier {
	return &Notifier{
		cfg:           cfg,
		log:           log,
		bot:           bot,
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.MaxGlobalRequestPerSecond), cfg.MaxGlobalRequestPerSecond),
		chatLimiters:  ratelimit.NewLimiterStore(rate.Limit(cfg.MaxChatRequestPerSecond), cfg.MaxChatRequestPerSecond),
	}
}

// SendMessage delivers an HTML-formatted message to the given chat.
func (n *Notifier) SendMessage(ctx context.Context, chatID int64, message string) error {
	if err := n.wait(ctx, chatID); err != nil {
		return err
	}

	_, err := n.bot.Send(&telebot.User{ID: chatID}, message, telebot.ModeHTML)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram message",
			logger.ErrorField(err),
			logger.StringField("chat_id", strconv.FormatInt(chatID, 10)),
		)
		return fmt.Errorf("telegram send to chat %d: %w", chatID, err)
	}
	return nil
}

func (n *Notifier) wait(ctx context.Context, chatID int64) error {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.TimeoutDuration)
	defer cancel()

	if err := n.globalLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram global rate limit: %w", err)
	}
	if err := n.chatLimiters.For(strconv.FormatInt(chatID, 10)).Wait(ctx); err != nil {
		return fmt.Errorf("telegram chat rate limit: %w", err)
	}
	return nil
}
