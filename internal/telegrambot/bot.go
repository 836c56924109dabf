// Package telegrambot runs the Telegram bot: the long-polling update loop,
// the command handlers and the Instagram link flow.
package telegrambot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/muradovs/insta-saver-bot/internal/config"
	"github.com/muradovs/insta-saver-bot/internal/instagram"
	"github.com/muradovs/insta-saver-bot/internal/platform/observability"
	db "github.com/muradovs/insta-saver-bot/internal/storage"
)

const updateTimeoutSeconds = 60

type Bot struct {
	cfg      *config.Config
	database *db.DB
	resolver instagram.Resolver
	api      *tgbotapi.BotAPI
	logger   *zerolog.Logger
}

func New(cfg *config.Config, database *db.DB, resolver instagram.Resolver, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		cfg:      cfg,
		database: database,
		resolver: resolver,
		api:      api,
		logger:   logger,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.api.Self.UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil || update.Message.From == nil {
				continue
			}

			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.cfg.IsAdmin(userID)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.handleLink(ctx, msg)

		return
	}

	b.logger.Info().Str("command", msg.Command()).Int64("user_id", msg.From.ID).Msg("Handling command")
	observability.CommandsHandled.WithLabelValues(msg.Command()).Inc()

	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(msg)
	case "stats":
		b.handleStats(ctx, msg)
	case "logs":
		b.handleLogs(ctx, msg)
	case "links":
		b.handleLinks(ctx, msg)
	default:
		b.reply(msg, "Unknown command. See /help.")
	}
}

// requireAdmin replies with a refusal and returns false when the sender is
// not an admin.
func (b *Bot) requireAdmin(msg *tgbotapi.Message) bool {
	if b.isAdmin(msg.From.ID) {
		return true
	}

	b.logger.Warn().Int64("user_id", msg.From.ID).Str("command", msg.Command()).Msg("unauthorized admin command")
	b.reply(msg, "❌ This command is for admins only.")

	return false
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	for _, part := range SplitText(text, messageLimit) {
		reply := tgbotapi.NewMessage(msg.Chat.ID, part)
		if _, err := b.api.Send(reply); err != nil {
			b.logger.Error().Err(err).Msg("failed to send reply")
		}
	}

	observability.RepliesSent.WithLabelValues("text").Inc()
}
