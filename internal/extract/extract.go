// Package extract pulls URLs out of incoming messages and hashtag/mention
// tokens out of Instagram captions.
package extract

import (
	"regexp"
	"strings"
)

var (
	urlRegex     = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
	// \w in RE2 is ASCII-only; captions use hashtags in any script.
	hashtagRegex = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	mentionRegex = regexp.MustCompile(`@[\p{L}\p{N}_]+`)
)

// FirstURL returns the first HTTP(S) URL found in text, with trailing
// punctuation trimmed. Returns "" when text contains no URL.
func FirstURL(text string) string {
	match := urlRegex.FindString(text)
	if match == "" {
		return ""
	}

	return strings.TrimRight(match, ".,;:!?)")
}

// Hashtags returns the hashtag tokens of a caption, deduplicated, in order
// of first appearance.
func Hashtags(caption string) []string {
	return dedupe(hashtagRegex.FindAllString(caption, -1))
}

// Mentions returns the mention tokens of a caption, deduplicated, in order
// of first appearance.
func Mentions(caption string) []string {
	return dedupe(mentionRegex.FindAllString(caption, -1))
}

func dedupe(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tokens))
	result := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}

		seen[key] = true

		result = append(result, tok)
	}

	return result
}
