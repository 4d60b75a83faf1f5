package model

import "time"

// User stores account and profile data. PasswordHash never leaves the server.
type User struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex" json:"email"`
	DisplayName    string    `json:"displayName"`
	Avatar         string    `json:"avatar,omitempty"`
	PasswordHash   string    `json:"-"`
	TelegramChatID int64     `json:"telegramChatId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}
