// Package notify delivers digest messages to users.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends digests over the Telegram Bot API to users who have
// stored a chat id on their profile.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// NewTelegram authorizes against the Bot API with the given token.
func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Telegram{api: api}, nil
}

// Send delivers a plain-text message to the chat.
func (t *Telegram) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
