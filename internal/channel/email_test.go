package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gomail.v2"

	"task-assistant/config"
	"task-assistant/internal/model"
)

type fakeDialer struct {
	sent    []*gomail.Message
	dialErr error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.dialErr != nil {
		return d.dialErr
	}
	d.sent = append(d.sent, m...)
	return nil
}

func emailTestConfig() *config.EmailConfig {
	return &config.EmailConfig{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		SMTPUser:    "notifier",
		SMTPPass:    "secret",
		FromAddress: "noreply@example.com",
		FromName:    "Task Assistant",
	}
}

func TestEmailSender_Send(t *testing.T) {
	user := &model.User{ID: 7, Email: "sara@example.com", EmailEnabled: true}

	t.Run("builds a multipart message", func(t *testing.T) {
		dialer := &fakeDialer{}
		s := &emailSender{cfg: emailTestConfig(), dialer: dialer}

		err := s.Send(context.Background(), user, Message{
			Subject: "Reminder: pay rent",
			HTML:    "<b>pay rent</b>",
			Text:    "pay rent",
		})

		assert.NoError(t, err)
		assert.Len(t, dialer.sent, 1)
		m := dialer.sent[0]
		assert.Equal(t, []string{"sara@example.com"}, m.GetHeader("To"))
		assert.Equal(t, []string{"Reminder: pay rent"}, m.GetHeader("Subject"))
	})

	t.Run("dial failure surfaces as error", func(t *testing.T) {
		dialer := &fakeDialer{dialErr: errors.New("535 auth failed")}
		s := &emailSender{cfg: emailTestConfig(), dialer: dialer}

		err := s.Send(context.Background(), user, Message{Subject: "x"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "sara@example.com")
	})
}

func TestEmailSender_Ready(t *testing.T) {
	assert.True(t, (&emailSender{cfg: emailTestConfig()}).Ready(context.Background()))
	assert.False(t, (&emailSender{cfg: &config.EmailConfig{}}).Ready(context.Background()))
}

func TestEmailSender_Enabled(t *testing.T) {
	s := &emailSender{cfg: emailTestConfig()}

	assert.True(t, s.Enabled(&model.User{EmailEnabled: true, Email: "a@b.c"}))
	assert.False(t, s.Enabled(&model.User{EmailEnabled: true}))
	assert.False(t, s.Enabled(&model.User{Email: "a@b.c"}))
}
