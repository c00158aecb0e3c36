package model

import "time"

type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null" json:"name"`
	Language        string `gorm:"type:varchar(10);default:'en'" json:"language"`
	Timezone        string `gorm:"type:varchar(64)" json:"timezone"`
	TelegramChatID  int64  `json:"telegram_chat_id"`
	TelegramEnabled bool   `gorm:"default:false" json:"telegram_enabled"`
	WhatsAppNumber  string `gorm:"type:varchar(32)" json:"whatsapp_number"`
	WhatsAppEnabled bool   `gorm:"default:false" json:"whatsapp_enabled"`
	Email           string `gorm:"type:varchar(255)" json:"email"`
	EmailEnabled    bool   `gorm:"default:false" json:"email_enabled"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasDestination reports whether the user configured a destination for the
// given channel. A channel without a destination is silently skipped.
func (u *User) HasDestination(channel string) bool {
	switch channel {
	case ChannelTelegram:
		return u.TelegramChatID != 0
	case ChannelWhatsApp:
		return u.WhatsAppNumber != ""
	case ChannelEmail:
		return u.Email != ""
	}
	return false
}
