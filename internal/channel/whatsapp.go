package channel

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"task-assistant/config"
	"task-assistant/internal/model"
	"task-assistant/pkg/httpclient"
	"task-assistant/pkg/logger"
)

// sessionWorking is the WAHA session state required before sends are
// attempted; any other state makes the channel not ready.
const sessionWorking = "WORKING"

type wahaSessionResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type wahaSendTextRequest struct {
	Session string `json:"session"`
	ChatID  string `json:"chatId"`
	Text    string `json:"text"`
}

type whatsappSender struct {
	cfg    *config.WhatsAppConfig
	log    *logger.Logger
	client httpclient.HTTPClient
}

// NewWhatsAppSender talks to a WAHA gateway. client should be built with the
// gateway base URL and X-Api-Key header.
func NewWhatsAppSender(cfg *config.WhatsAppConfig, log *logger.Logger, client httpclient.HTTPClient) Sender {
	return &whatsappSender{cfg: cfg, log: log, client: client}
}

func (s *whatsappSender) Name() string {
	return model.ChannelWhatsApp
}

func (s *whatsappSender) Enabled(user *model.User) bool {
	return user.WhatsAppEnabled && user.HasDestination(model.ChannelWhatsApp)
}

// Ready checks the gateway session state so a dead session does not burn a
// send attempt per user.
func (s *whatsappSender) Ready(ctx context.Context) bool {
	if s.cfg.BaseURL == "" {
		return false
	}

	var session wahaSessionResponse
	resp, err := s.client.Get(ctx, fmt.Sprintf("/api/sessions/%s", s.cfg.SessionName), nil, nil, &session)
	if err != nil {
		s.log.WarnContext(ctx, "WhatsApp session status check failed", logger.ErrorField(err))
		return false
	}
	if resp.StatusCode != http.StatusOK {
		s.log.WarnContext(ctx, "WhatsApp session status check returned non-200",
			logger.IntField("status_code", resp.StatusCode),
		)
		return false
	}
	return session.Status == sessionWorking
}

func (s *whatsappSender) Send(ctx context.Context, user *model.User, msg Message) error {
	payload := wahaSendTextRequest{
		Session: s.cfg.SessionName,
		ChatID:  chatID(user.WhatsAppNumber),
		Text:    msg.Text,
	}

	resp, err := s.client.Post(ctx, "/api/sendText", payload, nil, nil)
	if err != nil {
		return fmt.Errorf("whatsapp send to %s: %w", user.WhatsAppNumber, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d: %s", resp.StatusCode, string(resp.Body))
	}
	return nil
}

// chatID converts a phone number to WAHA's chat id format.
func chatID(phone string) string {
	cleaned := strings.TrimPrefix(phone, "+")
	return cleaned + "@c.us"
}
