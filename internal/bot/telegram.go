package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/infsectest/ist-detector/internal/flow"
	"github.com/infsectest/ist-detector/pkg/logger"
)

// Bot adapts Telegram updates to flow events and renders the engine's
// replies back into Telegram messages.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *flow.Engine
	log    *logger.Logger
	locks  sync.Map // user id -> *sync.Mutex
}

func New(token string, engine *flow.Engine, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	log.Infow("authorized on Telegram", "username", api.Self.UserName)

	return &Bot{api: api, engine: engine, log: log}, nil
}

// Start switches the bot to long polling and begins consuming updates.
func (b *Bot) Start(ctx context.Context) error {
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)
	b.log.Infow("started receiving Telegram updates")

	go b.handleUpdates(ctx, updates)
	return nil
}

func (b *Bot) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		go func(update tgbotapi.Update) {
			defer func() {
				if r := recover(); r != nil {
					b.log.Errorw("recovered from panic while processing update", "error", r)
				}
			}()
			b.handleUpdate(update)
		}(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	var (
		ev     flow.Event
		chatID int64
	)

	switch {
	case update.Message != nil:
		msg := update.Message
		chatID = msg.Chat.ID
		ev = flow.Event{
			UserID:   msg.From.ID,
			Username: fullName(msg.From),
			Text:     msg.Text,
		}
		if msg.IsCommand() {
			ev.Command = msg.Command()
			ev.Text = ""
		}
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			b.log.Errorw("failed to acknowledge callback", "error", err)
		}
		if cq.Message == nil {
			return
		}
		chatID = cq.Message.Chat.ID
		ev = flow.Event{
			UserID:   cq.From.ID,
			Username: fullName(cq.From),
			Callback: cq.Data,
		}
	default:
		return
	}

	// Steps of one user's conversation never run concurrently; other
	// users are unaffected.
	lock := b.userLock(ev.UserID)
	lock.Lock()
	defer lock.Unlock()

	for _, reply := range b.engine.Handle(ev) {
		b.send(chatID, reply)
	}
}

func (b *Bot) userLock(userID int64) *sync.Mutex {
	v, _ := b.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (b *Bot) send(chatID int64, reply flow.Reply) {
	if reply.PhotoPath != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(reply.PhotoPath))
		photo.Caption = reply.Text
		_, err := b.api.Send(photo)
		if err == nil {
			return
		}
		b.log.Errorw("failed to send photo, falling back to text", "error", err)
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if markup := renderKeyboard(reply.Keyboard); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorw("failed to send message", "chat_id", chatID, "error", err)
	}
}

func renderKeyboard(k *flow.Keyboard) interface{} {
	switch {
	case k == nil:
		return nil
	case k.Remove:
		return tgbotapi.NewRemoveKeyboard(true)
	case k.Inline:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(k.Rows))
		for _, row := range k.Rows {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, btn := range row {
				if btn.URL != "" {
					buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(btn.Label, btn.URL))
				} else {
					buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Callback))
				}
			}
			rows = append(rows, buttons)
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	default:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(k.Rows))
		for _, row := range k.Rows {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, btn := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(btn.Label))
			}
			rows = append(rows, buttons)
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.OneTimeKeyboard = true
		return markup
	}
}

func fullName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Stop shuts the update channel down and gives in-flight handlers a
// moment to finish.
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}
