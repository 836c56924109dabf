package telegrambot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/muradovs/insta-saver-bot/internal/extract"
	"github.com/muradovs/insta-saver-bot/internal/instagram"
	db "github.com/muradovs/insta-saver-bot/internal/storage"
)

// messageLimit is Telegram's maximum message length.
const messageLimit = 4096

var titleCaser = cases.Title(language.English)

// FormatStats renders the /stats reply.
func FormatStats(stats *db.Stats) string {
	var sb strings.Builder

	sb.WriteString("📊 Statistics\n")
	sb.WriteString(fmt.Sprintf("Total links: %d\n", stats.TotalLinks))
	sb.WriteString(fmt.Sprintf("Unique users: %d\n", stats.UniqueUsers))

	if len(stats.TopSubmitters) == 0 {
		return sb.String()
	}

	sb.WriteString("\nTop submitters:\n")

	for _, s := range stats.TopSubmitters {
		sb.WriteString(fmt.Sprintf("- %s (%s): %d\n", submitterName(s), s.Username, s.Count))
	}

	return sb.String()
}

func submitterName(s db.SubmitterStat) string {
	if s.FirstName != "" {
		return s.FirstName
	}

	if s.Username != "" {
		return s.Username
	}

	return fmt.Sprintf("%d", s.UserID)
}

// FormatLogs renders the /logs reply, one line per entry.
func FormatLogs(entries []db.LogEntry) string {
	lines := make([]string, 0, len(entries))

	for _, e := range entries {
		who := e.Username
		if who == "" {
			who = fmt.Sprintf("%d", e.UserID)
		}

		lines = append(lines, fmt.Sprintf("[%s] %s (%s) → %s", e.CreatedAt.Format("2006-01-02 15:04:05"), e.FirstName, who, e.Link))
	}

	return strings.Join(lines, "\n")
}

// FormatLinks renders the /links reply.
func FormatLinks(links []string) string {
	return strings.Join(links, "\n")
}

// FormatCaption renders the caption reply: media type, caption text, hashtag
// and mention lines.
func FormatCaption(media *instagram.Media) string {
	caption := media.Caption
	if caption == "" {
		caption = "(none)"
	}

	return fmt.Sprintf("🎬 %s by @%s\n\n📄 Caption:\n%s\n\n🏷 Hashtags: %s\n👤 Mentions: %s",
		titleCaser.String(string(media.Type)),
		media.Owner,
		caption,
		tokensOrNone(extract.Hashtags(media.Caption)),
		tokensOrNone(extract.Mentions(media.Caption)),
	)
}

func tokensOrNone(tokens []string) string {
	if len(tokens) == 0 {
		return "none"
	}

	return strings.Join(tokens, " ")
}

// SplitText splits text into chunks within Telegram's message length limit,
// preferring line breaks as split points.
func SplitText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string

	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}

		parts = append(parts, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}

	if text != "" {
		parts = append(parts, text)
	}

	return parts
}
