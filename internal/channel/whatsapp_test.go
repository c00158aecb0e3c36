package channel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"task-assistant/config"
	"task-assistant/internal/model"
	"task-assistant/pkg/httpclient"
	"task-assistant/pkg/logger"
)

type fakeHTTPClient struct {
	getStatus  int
	getResult  string
	getErr     error
	postStatus int
	postBody   interface{}
	postErr    error
}

func (c *fakeHTTPClient) Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*httpclient.BaseResponse, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.getResult != "" && result != nil {
		if err := json.Unmarshal([]byte(c.getResult), result); err != nil {
			return nil, err
		}
	}
	return &httpclient.BaseResponse{StatusCode: c.getStatus}, nil
}

func (c *fakeHTTPClient) Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*httpclient.BaseResponse, error) {
	if c.postErr != nil {
		return nil, c.postErr
	}
	c.postBody = body
	return &httpclient.BaseResponse{StatusCode: c.postStatus}, nil
}

func whatsappTestConfig() *config.WhatsAppConfig {
	return &config.WhatsAppConfig{
		BaseURL:     "http://waha.local",
		SessionName: "default",
	}
}

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func TestWhatsAppSender_Ready(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *config.WhatsAppConfig
		client *fakeHTTPClient
		want   bool
	}{
		{
			name:   "working session is ready",
			cfg:    whatsappTestConfig(),
			client: &fakeHTTPClient{getStatus: http.StatusOK, getResult: `{"name":"default","status":"WORKING"}`},
			want:   true,
		},
		{
			name:   "starting session is not ready",
			cfg:    whatsappTestConfig(),
			client: &fakeHTTPClient{getStatus: http.StatusOK, getResult: `{"name":"default","status":"STARTING"}`},
			want:   false,
		},
		{
			name:   "gateway error is not ready",
			cfg:    whatsappTestConfig(),
			client: &fakeHTTPClient{getErr: errors.New("connection refused")},
			want:   false,
		},
		{
			name:   "non-200 status is not ready",
			cfg:    whatsappTestConfig(),
			client: &fakeHTTPClient{getStatus: http.StatusNotFound},
			want:   false,
		},
		{
			name:   "missing base url is not ready",
			cfg:    &config.WhatsAppConfig{},
			client: &fakeHTTPClient{},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWhatsAppSender(tt.cfg, testLogger(), tt.client)
			assert.Equal(t, tt.want, s.Ready(context.Background()))
		})
	}
}

func TestWhatsAppSender_Send(t *testing.T) {
	user := &model.User{ID: 7, WhatsAppNumber: "+201234567890", WhatsAppEnabled: true}

	t.Run("posts text to the gateway", func(t *testing.T) {
		client := &fakeHTTPClient{postStatus: http.StatusCreated}
		s := NewWhatsAppSender(whatsappTestConfig(), testLogger(), client)

		err := s.Send(context.Background(), user, Message{Text: "hello"})

		assert.NoError(t, err)
		payload, ok := client.postBody.(wahaSendTextRequest)
		assert.True(t, ok)
		assert.Equal(t, "default", payload.Session)
		assert.Equal(t, "201234567890@c.us", payload.ChatID)
		assert.Equal(t, "hello", payload.Text)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		client := &fakeHTTPClient{postStatus: http.StatusUnauthorized}
		s := NewWhatsAppSender(whatsappTestConfig(), testLogger(), client)

		err := s.Send(context.Background(), user, Message{Text: "hello"})

		assert.Error(t, err)
	})
}

func TestWhatsAppSender_Enabled(t *testing.T) {
	s := NewWhatsAppSender(whatsappTestConfig(), testLogger(), &fakeHTTPClient{})

	assert.True(t, s.Enabled(&model.User{WhatsAppEnabled: true, WhatsAppNumber: "+20123"}))
	assert.False(t, s.Enabled(&model.User{WhatsAppEnabled: true}))
	assert.False(t, s.Enabled(&model.User{WhatsAppNumber: "+20123"}))
}

func TestChatID(t *testing.T) {
	assert.Equal(t, "201234567890@c.us", chatID("+201234567890"))
	assert.Equal(t, "4915112345678@c.us", chatID("4915112345678"))
}
