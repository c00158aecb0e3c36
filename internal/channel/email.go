package channel

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"task-assistant/config"
	"task-assistant/internal/model"
)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailSender struct {
	cfg    *config.EmailConfig
	dialer mailDialer
}

func NewEmailSender(cfg *config.EmailConfig) Sender {
	return &emailSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

func (s *emailSender) Name() string {
	return model.ChannelEmail
}

func (s *emailSender) Enabled(user *model.User) bool {
	return user.EmailEnabled && user.HasDestination(model.ChannelEmail)
}

func (s *emailSender) Ready(ctx context.Context) bool {
	return s.cfg.SMTPHost != "" && s.cfg.SMTPUser != "" && s.cfg.FromAddress != ""
}

func (s *emailSender) Send(ctx context.Context, user *model.User, msg Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	m.AddAlternative("text/plain", msg.Text)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("email send to %s: %w", user.Email, err)
	}
	return nil
}
