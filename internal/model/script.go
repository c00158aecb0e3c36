package model

import "time"

type Script struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	AssistantID *uint  `gorm:"index" json:"assistant_id,omitempty"`
	SSHServerID *uint  `json:"ssh_server_id,omitempty"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Language    string `gorm:"type:varchar(50);default:'bash'" json:"language"`
	Code        string `gorm:"type:text;not null" json:"code"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	SSHServer *SSHServer `gorm:"foreignKey:SSHServerID;references:ID" json:"-"`
}

func (Script) TableName() string {
	return "scripts"
}

type SSHServer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	Host       string `gorm:"type:varchar(255);not null" json:"host"`
	Port       int    `gorm:"default:22" json:"port"`
	Username   string `gorm:"type:varchar(100);not null" json:"username"`
	AuthType   string `gorm:"type:varchar(20);default:'key'" json:"auth_type"` // key or password
	PrivateKey string `gorm:"type:text" json:"-"`
	Password   string `gorm:"type:varchar(255)" json:"-"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SSHServer) TableName() string {
	return "ssh_servers"
}
