package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"task-assistant/internal/channel"
	"task-assistant/internal/model"
	"task-assistant/pkg/logger"
	"task-assistant/pkg/utils"
)

type fakeSender struct {
	name    string
	enabled bool
	ready   bool
	sendErr error
	panics  bool
	sent    []channel.Message
}

func (s *fakeSender) Name() string { return s.name }

func (s *fakeSender) Enabled(user *model.User) bool { return s.enabled }

func (s *fakeSender) Ready(ctx context.Context) bool { return s.ready }

func (s *fakeSender) Send(ctx context.Context, user *model.User, msg channel.Message) error {
	if s.panics {
		panic("sender exploded")
	}
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeLogRepo struct {
	entries   []*model.NotificationLog
	createErr error
}

func (r *fakeLogRepo) Create(ctx context.Context, entry *model.NotificationLog, opts ...utils.DBOption) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeLogRepo) DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error) {
	return 0, nil
}

func nopLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func testUser() *model.User {
	return &model.User{
		ID:              7,
		Name:            "Sara",
		Language:        "en",
		TelegramChatID:  1234,
		TelegramEnabled: true,
		Email:           "sara@example.com",
		EmailEnabled:    true,
	}
}

func TestDispatcher_SendsToEveryEligibleChannel(t *testing.T) {
	tg := &fakeSender{name: model.ChannelTelegram, enabled: true, ready: true}
	email := &fakeSender{name: model.ChannelEmail, enabled: true, ready: true}
	logRepo := &fakeLogRepo{}
	d := NewDispatcher(nopLogger(), []channel.Sender{tg, email}, logRepo)

	msg := channel.Message{Subject: "hi", HTML: "<b>hi</b>", Text: "hi"}
	results := d.Dispatch(context.Background(), testUser(), msg, Ref{}, nil)

	assert.Len(t, results, 2)
	assert.True(t, AnySuccess(results))
	assert.Len(t, tg.sent, 1)
	assert.Len(t, email.sent, 1)
	assert.Len(t, logRepo.entries, 2)
	for _, entry := range logRepo.entries {
		assert.Equal(t, model.NotificationSent, entry.Status)
		assert.Equal(t, "hi", entry.Message)
		assert.Equal(t, uint(7), entry.UserID)
	}
}

func TestDispatcher_IsolatesChannelFailures(t *testing.T) {
	tg := &fakeSender{name: model.ChannelTelegram, enabled: true, ready: true, sendErr: errors.New("bot banned")}
	email := &fakeSender{name: model.ChannelEmail, enabled: true, ready: true}
	logRepo := &fakeLogRepo{}
	d := NewDispatcher(nopLogger(), []channel.Sender{tg, email}, logRepo)

	results := d.Dispatch(context.Background(), testUser(), channel.Message{Text: "x"}, Ref{}, nil)

	assert.Len(t, results, 2)
	assert.True(t, AnySuccess(results))
	assert.Len(t, email.sent, 1)

	assert.Len(t, logRepo.entries, 2)
	assert.Equal(t, model.NotificationFailed, logRepo.entries[0].Status)
	assert.True(t, logRepo.entries[0].Error.Valid)
	assert.Contains(t, logRepo.entries[0].Error.String, "bot banned")
	assert.Equal(t, model.NotificationSent, logRepo.entries[1].Status)
}

func TestDispatcher_PanicInOneSenderDoesNotStopOthers(t *testing.T) {
	tg := &fakeSender{name: model.ChannelTelegram, enabled: true, ready: true, panics: true}
	email := &fakeSender{name: model.ChannelEmail, enabled: true, ready: true}
	logRepo := &fakeLogRepo{}
	d := NewDispatcher(nopLogger(), []channel.Sender{tg, email}, logRepo)

	results := d.Dispatch(context.Background(), testUser(), channel.Message{Text: "x"}, Ref{}, nil)

	assert.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Len(t, email.sent, 1)
}

func TestDispatcher_SkipsDisabledAndNotReadySilently(t *testing.T) {
	disabled := &fakeSender{name: model.ChannelTelegram, enabled: false, ready: true}
	notReady := &fakeSender{name: model.ChannelWhatsApp, enabled: true, ready: false}
	email := &fakeSender{name: model.ChannelEmail, enabled: true, ready: true}
	logRepo := &fakeLogRepo{}
	d := NewDispatcher(nopLogger(), []channel.Sender{disabled, notReady, email}, logRepo)

	results := d.Dispatch(context.Background(), testUser(), channel.Message{Text: "x"}, Ref{}, nil)

	// Skipped channels produce neither a result nor a log row.
	assert.Len(t, results, 1)
	assert.Equal(t, model.ChannelEmail, results[0].Channel)
	assert.Len(t, logRepo.entries, 1)
}

func TestDispatcher_AppliesChannelFilter(t *testing.T) {
	tg := &fakeSender{name: model.ChannelTelegram, enabled: true, ready: true}
	email := &fakeSender{name: model.ChannelEmail, enabled: true, ready: true}
	logRepo := &fakeLogRepo{}
	d := NewDispatcher(nopLogger(), []channel.Sender{tg, email}, logRepo)

	onlyTelegram := func(name string) bool { return name == model.ChannelTelegram }
	results := d.Dispatch(context.Background(), testUser(), channel.Message{Text: "x"}, Ref{}, onlyTelegram)

	assert.Len(t, results, 1)
	assert.Equal(t, model.ChannelTelegram, results[0].Channel)
	assert.Empty(t, email.sent)
}

func TestDispatcher_AttributesLogRows(t *testing.T) {
	tg := &fakeSender{name: model.ChannelTelegram, enabled: true, ready: true}
	logRepo := &fakeLogRepo{}
	d := NewDispatcher(nopLogger(), []channel.Sender{tg}, logRepo)

	taskID := uint(31)
	d.Dispatch(context.Background(), testUser(), channel.Message{Text: "x"}, Ref{TaskID: &taskID}, nil)

	assert.Len(t, logRepo.entries, 1)
	assert.Equal(t, &taskID, logRepo.entries[0].TaskID)
	assert.Nil(t, logRepo.entries[0].AssistantID)
}

func TestAnySuccess(t *testing.T) {
	assert.False(t, AnySuccess(nil))
	assert.False(t, AnySuccess([]ChannelResult{{Channel: "telegram", Err: errors.New("x")}}))
	assert.True(t, AnySuccess([]ChannelResult{
		{Channel: "telegram", Err: errors.New("x")},
		{Channel: "email"},
	}))
}
