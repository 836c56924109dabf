package instagram

import (
	"net/url"
	"strings"
)

// shortcodeAlphabet is the base64url alphabet Instagram uses for web
// shortcodes. A shortcode is the media pk encoded in this alphabet.
const shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// maxShortcodeLen bounds the decodable portion of a shortcode. Codes longer
// than 11 characters embed the owner id after the media pk.
const maxShortcodeLen = 11

var shortcodeIndex = func() map[rune]uint64 {
	m := make(map[rune]uint64, len(shortcodeAlphabet))
	for i, r := range shortcodeAlphabet {
		m[r] = uint64(i)
	}

	return m
}()

// ShortcodeFromURL extracts the media shortcode from an Instagram post, reel
// or IGTV URL. Returns "" when the URL does not address a single media item.
func ShortcodeFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host != "instagram.com" && !strings.HasSuffix(host, ".instagram.com") {
		return ""
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	for i, part := range parts {
		switch part {
		case "p", "reel", "reels", "tv":
			if i+1 < len(parts) && isShortcode(parts[i+1]) {
				return parts[i+1]
			}
		}
	}

	return ""
}

func isShortcode(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if _, ok := shortcodeIndex[r]; !ok {
			return false
		}
	}

	return true
}

// PKFromShortcode decodes a shortcode into the numeric media pk. Returns 0
// for an invalid shortcode.
func PKFromShortcode(code string) uint64 {
	if len(code) > maxShortcodeLen {
		code = code[:maxShortcodeLen]
	}

	var pk uint64

	for _, r := range code {
		idx, ok := shortcodeIndex[r]
		if !ok {
			return 0
		}

		pk = pk<<6 | idx
	}

	return pk
}

// ShortcodeFromPK encodes a media pk back into its web shortcode.
func ShortcodeFromPK(pk uint64) string {
	if pk == 0 {
		return string(shortcodeAlphabet[0])
	}

	var sb []byte
	for pk > 0 {
		sb = append([]byte{shortcodeAlphabet[pk&0x3f]}, sb...)
		pk >>= 6
	}

	return string(sb)
}
