package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notify delivers a message to a user's private chat. For a Telegram user the
// private chat ID equals the user ID.
func (b *Bot) Notify(ctx context.Context, telegramID int64, message string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(telegramID, message)); err != nil {
		return fmt.Errorf("failed to notify user %d: %w", telegramID, err)
	}
	return nil
}

// Broadcast posts a message to the configured announcement chat. Without one
// the message goes to the admins instead so settlement results are never lost.
func (b *Bot) Broadcast(ctx context.Context, message string) error {
	if b.config.AnnounceChatID != 0 {
		if _, err := b.api.Send(tgbotapi.NewMessage(b.config.AnnounceChatID, message)); err != nil {
			return fmt.Errorf("failed to broadcast to chat %d: %w", b.config.AnnounceChatID, err)
		}
		return nil
	}

	for _, adminID := range b.config.AdminIDs {
		if err := b.Notify(ctx, adminID, message); err != nil {
			return err
		}
	}
	return nil
}
