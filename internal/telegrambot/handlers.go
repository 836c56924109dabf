package telegrambot

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/muradovs/insta-saver-bot/internal/extract"
	"github.com/muradovs/insta-saver-bot/internal/instagram"
	"github.com/muradovs/insta-saver-bot/internal/platform/observability"
	db "github.com/muradovs/insta-saver-bot/internal/storage"
)

const (
	logsDefaultLimit = 50
	logsMaxLimit     = 500
	linksLimit       = 200

	statusResolving = "🔎 Fetching Instagram media... please wait"
)

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	b.reply(msg, "👋 Hi! Send me an Instagram post or reel link and I will reply with the media first, then the caption.")
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	text := "/start - Start the bot\n/help - Show this help\n"

	if b.isAdmin(msg.From.ID) {
		text += "\n--- Admin commands ---\n" +
			"/stats - Usage statistics\n" +
			"/logs [limit] - Recent activity log\n" +
			"/links - Recent links\n"
	}

	b.reply(msg, text)
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}

	stats, err := b.database.GetStats(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to load stats")
		b.reply(msg, "❌ Error loading stats: "+err.Error())

		return
	}

	b.reply(msg, FormatStats(stats))
}

func (b *Bot) handleLogs(ctx context.Context, msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}

	limit := logsDefaultLimit
	if args := msg.CommandArguments(); args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			b.reply(msg, "Usage: /logs [limit]")

			return
		}

		limit = min(n, logsMaxLimit)
	}

	entries, err := b.database.GetRecentLogs(ctx, limit)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to load logs")
		b.reply(msg, "❌ Error loading logs: "+err.Error())

		return
	}

	if len(entries) == 0 {
		b.reply(msg, "No logs yet.")

		return
	}

	b.reply(msg, FormatLogs(entries))
}

func (b *Bot) handleLinks(ctx context.Context, msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}

	links, err := b.database.GetRecentLinks(ctx, linksLimit)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to load links")
		b.reply(msg, "❌ Error loading links: "+err.Error())

		return
	}

	if len(links) == 0 {
		b.reply(msg, "No links yet.")

		return
	}

	b.reply(msg, FormatLinks(links))
}

// handleLink drives the submission flow: extract the URL, resolve it, log the
// submission, send the media and finally the caption with its tags.
func (b *Bot) handleLink(ctx context.Context, msg *tgbotapi.Message) {
	logger := b.logger.With().
		Str("request_id", uuid.NewString()).
		Int64("user_id", msg.From.ID).
		Logger()

	link := extract.FirstURL(msg.Text)
	if link == "" {
		b.reply(msg, "Please send an Instagram post or reel link.")

		return
	}

	status, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, statusResolving))
	if err != nil {
		logger.Error().Err(err).Msg("failed to send status message")
	}

	start := time.Now()

	media, err := b.resolver.Resolve(ctx, link)

	observability.ResolveDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Warn().Err(err).Str("link", link).Msg("resolve failed")
		observability.LinksResolved.WithLabelValues("unknown", "error").Inc()
		b.editOrReply(msg, status, "❌ Error: "+err.Error())

		return
	}

	logger.Info().Str("link", link).Str("media_pk", media.PK).Str("media_type", string(media.Type)).Msg("resolved media")
	observability.LinksResolved.WithLabelValues(string(media.Type), "ok").Inc()

	entry := &db.LogEntry{
		UserID:    msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		Link:      link,
		MediaPK:   media.PK,
	}
	if err := b.database.AddLog(ctx, entry); err != nil {
		// The media is already resolved; keep serving the user.
		logger.Error().Err(err).Msg("failed to write activity log")
	}

	b.sendMedia(msg, media, &logger)
	b.reply(msg, FormatCaption(media))

	if status.MessageID != 0 {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, status.MessageID)); err != nil {
			logger.Debug().Err(err).Msg("failed to delete status message")
		}
	}
}

func (b *Bot) sendMedia(msg *tgbotapi.Message, media *instagram.Media, logger *zerolog.Logger) {
	switch media.Type {
	case instagram.MediaTypeVideo, instagram.MediaTypePhoto:
		b.sendItem(msg, instagram.MediaItem{Type: media.Type, URL: media.URL}, logger)
	case instagram.MediaTypeAlbum:
		for _, item := range media.Items {
			b.sendItem(msg, item, logger)
		}
	default:
		b.reply(msg, "❌ Unsupported media type. Only photos, videos and albums are handled.")
	}
}

func (b *Bot) sendItem(msg *tgbotapi.Message, item instagram.MediaItem, logger *zerolog.Logger) {
	var (
		send tgbotapi.Chattable
		kind string
	)

	switch item.Type {
	case instagram.MediaTypeVideo:
		send = tgbotapi.NewVideo(msg.Chat.ID, tgbotapi.FileURL(item.URL))
		kind = "video"
	default:
		send = tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileURL(item.URL))
		kind = "photo"
	}

	if _, err := b.api.Send(send); err != nil {
		logger.Error().Err(err).Str("kind", kind).Msg("failed to send media")

		return
	}

	observability.RepliesSent.WithLabelValues(kind).Inc()
}

// editOrReply edits the status message to show text, falling back to a plain
// reply when the edit fails or no status message was sent.
func (b *Bot) editOrReply(msg *tgbotapi.Message, status tgbotapi.Message, text string) {
	if status.MessageID != 0 {
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, status.MessageID, text)
		if _, err := b.api.Send(edit); err == nil {
			return
		}
	}

	b.reply(msg, text)
}
