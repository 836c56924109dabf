package telegrambot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muradovs/insta-saver-bot/internal/instagram"
	db "github.com/muradovs/insta-saver-bot/internal/storage"
)

func TestFormatStats(t *testing.T) {
	stats := &db.Stats{
		TotalLinks:  42,
		UniqueUsers: 7,
		TopSubmitters: []db.SubmitterStat{
			{UserID: 1, Username: "alice", FirstName: "Alice", Count: 20},
			{UserID: 2, Username: "", FirstName: "", Count: 5},
		},
	}

	got := FormatStats(stats)

	assert.Contains(t, got, "Total links: 42")
	assert.Contains(t, got, "Unique users: 7")
	assert.Contains(t, got, "- Alice (alice): 20")
	// Falls back to the numeric id when no name is known.
	assert.Contains(t, got, "- 2 (): 5")
}

func TestFormatStatsNoSubmitters(t *testing.T) {
	got := FormatStats(&db.Stats{})

	assert.NotContains(t, got, "Top submitters")
}

func TestFormatLogs(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	entries := []db.LogEntry{
		{UserID: 1, Username: "alice", FirstName: "Alice", Link: "https://www.instagram.com/p/Cab12Xy/", CreatedAt: createdAt},
		{UserID: 2, Link: "https://www.instagram.com/reel/Cxy34Zz/", CreatedAt: createdAt},
	}

	got := FormatLogs(entries)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "[2026-03-14 15:09:26] Alice (alice) → https://www.instagram.com/p/Cab12Xy/", lines[0])
	assert.Equal(t, "[2026-03-14 15:09:26]  (2) → https://www.instagram.com/reel/Cxy34Zz/", lines[1])
}

func TestFormatCaption(t *testing.T) {
	media := &instagram.Media{
		Type:    instagram.MediaTypeVideo,
		Owner:   "someuser",
		Caption: "sunset run #beach #run with @friend",
	}

	got := FormatCaption(media)

	assert.Contains(t, got, "🎬 Video by @someuser")
	assert.Contains(t, got, "sunset run #beach #run with @friend")
	assert.Contains(t, got, "🏷 Hashtags: #beach #run")
	assert.Contains(t, got, "👤 Mentions: @friend")
}

func TestFormatCaptionEmpty(t *testing.T) {
	media := &instagram.Media{Type: instagram.MediaTypePhoto, Owner: "someuser"}

	got := FormatCaption(media)

	assert.Contains(t, got, "📄 Caption:\n(none)")
	assert.Contains(t, got, "🏷 Hashtags: none")
	assert.Contains(t, got, "👤 Mentions: none")
}

func TestSplitText(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		parts := SplitText("hello", 10)
		assert.Equal(t, []string{"hello"}, parts)
	})

	t.Run("splits at line breaks", func(t *testing.T) {
		text := strings.Repeat("line one\n", 3)
		parts := SplitText(text, 20)
		require.Len(t, parts, 2)
		assert.Equal(t, "line one\nline one", parts[0])
		assert.Equal(t, "line one\n", parts[1])
	})

	t.Run("hard split without line breaks", func(t *testing.T) {
		text := strings.Repeat("a", 25)
		parts := SplitText(text, 10)
		require.Len(t, parts, 3)
		assert.Equal(t, strings.Repeat("a", 10), parts[0])
		assert.Equal(t, strings.Repeat("a", 5), parts[2])
	})

	t.Run("never splits inside a rune", func(t *testing.T) {
		text := strings.Repeat("й", 30)
		for _, part := range SplitText(text, 11) {
			assert.True(t, strings.HasPrefix(text, part[:2]), "part should start with a whole rune")
			assert.Equal(t, 0, len(part)%2, "parts of 2-byte runes must have even length")
		}
	})
}
