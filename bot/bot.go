package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"lottobot/application"
	"lottobot/domain/interfaces"
)

// Config holds bot configuration
type Config struct {
	Token          string
	AdminIDs       []int64
	AnnounceChatID int64
}

const pollTimeoutSeconds = 30

// Bot manages the Telegram session. It owns the long-poll loop and delivers
// every incoming message to the command dispatcher.
type Bot struct {
	config     Config
	api        *tgbotapi.BotAPI
	dispatcher *application.Dispatcher

	stopped chan struct{}
}

// New creates a bot instance and wires the dispatcher to it. The bot itself is
// the notifier so replies and cross-party messages go out over one session.
func New(
	config Config,
	executor *application.LedgerExecutor,
	translator interfaces.Translator,
	startingBalance decimal.Decimal,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram session: %w", err)
	}

	b := &Bot{
		config:  config,
		api:     api,
		stopped: make(chan struct{}),
	}
	b.dispatcher = application.NewDispatcher(executor, b, translator, config.AdminIDs, startingBalance)

	log.WithField("username", api.Self.UserName).Info("Telegram session established")
	return b, nil
}

// Dispatcher exposes the wired dispatcher for workers that share it.
func (b *Bot) Dispatcher() *application.Dispatcher {
	return b.dispatcher
}

// Start begins long polling for updates. It blocks until the context is
// cancelled or Close is called.
func (b *Bot) Start(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeoutSeconds

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.stopped:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.From.IsBot || msg.Text == "" {
		return
	}

	sender := application.Sender{
		TelegramID:  msg.From.ID,
		DisplayName: displayName(msg.From),
		LanguageTag: msg.From.LanguageCode,
	}

	reply := b.dispatcher.HandleMessage(ctx, sender, msg.Text)
	if reply == "" {
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(out); err != nil {
		log.WithError(err).WithField("chat_id", msg.Chat.ID).Warn("Failed to send reply")
	}
}

func displayName(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return user.FirstName
}

// Close stops the poll loop and shuts down the session.
func (b *Bot) Close() error {
	close(b.stopped)
	b.api.StopReceivingUpdates()
	return nil
}
