package channel

import (
	"context"

	"task-assistant/internal/model"
)

// Message is one rendered notification, in the representations the different
// channels need. HTML is used by telegram and email, Text by whatsapp.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Sender is one independent delivery channel.
type Sender interface {
	// Name is the channel identifier recorded in notification logs.
	Name() string
	// Enabled reports whether the user opted into this channel and has a
	// destination configured for it.
	Enabled(user *model.User) bool
	// Ready reports whether the channel itself is usable (configured,
	// gateway session up). A non-ready channel is skipped silently.
	Ready(ctx context.Context) bool
	Send(ctx context.Context, user *model.User, msg Message) error
}
