package service

import (
	"database/sql"

	"context"

	"task-assistant/internal/channel"
	"task-assistant/internal/model"
	"task-assistant/internal/repository"
	"task-assistant/pkg/logger"
	"task-assistant/pkg/utils"
)

// Ref attributes notification log rows to their source item.
type Ref struct {
	TaskID      *uint
	AssistantID *uint
}

// ChannelFilter narrows the channels attempted for one dispatch; nil allows
// every channel the user enabled. Used for assistant-level channel toggles.
type ChannelFilter func(channelName string) bool

type ChannelResult struct {
	Channel string
	Err     error
}

// AnySuccess reports whether at least one channel delivered.
func AnySuccess(results []ChannelResult) bool {
	for _, r := range results {
		if r.Err == nil {
			return true
		}
	}
	return false
}

type Dispatcher interface {
	// Dispatch renders once and sends to every eligible channel for the
	// user, persisting one NotificationLog row per attempted channel.
	// Failures are isolated per channel; the aggregate result lets the
	// caller decide whether any channel succeeded without reading storage.
	Dispatch(ctx context.Context, user *model.User, msg channel.Message, ref Ref, filter ChannelFilter, opts ...utils.DBOption) []ChannelResult
}

type dispatcher struct {
	log     *logger.Logger
	senders []channel.Sender
	logRepo repository.NotificationLogRepository
}

func NewDispatcher(log *logger.Logger, senders []channel.Sender, logRepo repository.NotificationLogRepository) Dispatcher {
	return &dispatcher{
		log:     log,
		senders: senders,
		logRepo: logRepo,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, user *model.User, msg channel.Message, ref Ref, filter ChannelFilter, opts ...utils.DBOption) []ChannelResult {
	var results []ChannelResult

	for _, sender := range d.senders {
		name := sender.Name()

		// Disabled channel, missing destination, or non-ready gateway is a
		// configuration absence: skipped silently, no log row.
		if !sender.Enabled(user) {
			continue
		}
		if filter != nil && !filter(name) {
			continue
		}
		if !sender.Ready(ctx) {
			continue
		}

		sendErr := utils.RunSafe(func() error {
			return sender.Send(ctx, user, msg)
		})
		results = append(results, ChannelResult{Channel: name, Err: sendErr})

		entry := &model.NotificationLog{
			UserID:      user.ID,
			TaskID:      ref.TaskID,
			AssistantID: ref.AssistantID,
			Channel:     name,
			Message:     msg.Text,
			Status:      model.NotificationSent,
		}
		if sendErr != nil {
			entry.Status = model.NotificationFailed
			entry.Error = sql.NullString{String: sendErr.Error(), Valid: true}
			d.log.WarnContext(ctx, "Channel delivery failed",
				logger.ErrorField(sendErr),
				logger.StringField("channel", name),
				logger.IntField("user_id", int(user.ID)),
			)
		}

		if err := d.logRepo.Create(ctx, entry, opts...); err != nil {
			d.log.ErrorContext(ctx, "Failed to write notification log",
				logger.ErrorField(err),
				logger.StringField("channel", name),
				logger.IntField("user_id", int(user.ID)),
			)
		}
	}

	return results
}
