package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram delivers replies through the Telegram Bot API. It implements
// domain.Notifier.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

// NewTelegram connects to the Bot API with the given token.
func NewTelegram(token string, logger *slog.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	logger.Info("telegram bot connected", "username", bot.Self.UserName, "id", bot.Self.ID)
	return &Telegram{bot: bot, logger: logger}, nil
}

// SendText sends a plain-text reply referencing the original message, with
// link previews suppressed.
func (t *Telegram) SendText(_ context.Context, chatID int64, text string, replyTo int) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	return nil
}

// SendPhoto sends the artwork with the reply text as its caption.
func (t *Telegram) SendPhoto(_ context.Context, chatID int64, photoURL, caption string, replyTo int) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	msg.Caption = caption
	msg.ReplyToMessageID = replyTo
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}
