package extract

import (
	"reflect"
	"testing"
)

func TestFirstURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain url",
			text: "https://www.instagram.com/p/CxyzAbc1234/",
			want: "https://www.instagram.com/p/CxyzAbc1234/",
		},
		{
			name: "url inside text",
			text: "check this out https://www.instagram.com/reel/Cab12Xy/ please",
			want: "https://www.instagram.com/reel/Cab12Xy/",
		},
		{
			name: "first of several",
			text: "https://a.example/one and https://b.example/two",
			want: "https://a.example/one",
		},
		{
			name: "trailing punctuation trimmed",
			text: "look: https://www.instagram.com/p/Cab12Xy.",
			want: "https://www.instagram.com/p/Cab12Xy",
		},
		{
			name: "http scheme",
			text: "http://example.com/x",
			want: "http://example.com/x",
		},
		{
			name: "no url",
			text: "just some words",
			want: "",
		},
		{
			name: "bare domain is not a url",
			text: "instagram.com/p/Cab12Xy",
			want: "",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstURL(tt.text); got != tt.want {
				t.Errorf("FirstURL(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestHashtags(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		want    []string
	}{
		{
			name:    "several tags",
			caption: "sunset vibes #sunset #beach #travel",
			want:    []string{"#sunset", "#beach", "#travel"},
		},
		{
			name:    "duplicates removed",
			caption: "#go #Go #go",
			want:    []string{"#go"},
		},
		{
			name:    "unicode word characters",
			caption: "#привет world",
			want:    []string{"#привет"},
		},
		{
			name:    "no tags",
			caption: "nothing here",
			want:    nil,
		},
		{
			name:    "empty caption",
			caption: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hashtags(tt.caption); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Hashtags(%q) = %v, want %v", tt.caption, got, tt.want)
			}
		})
	}
}

func TestMentions(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		want    []string
	}{
		{
			name:    "single mention",
			caption: "photo by @someone",
			want:    []string{"@someone"},
		},
		{
			name:    "mixed with hashtags",
			caption: "@a and @b at #place",
			want:    []string{"@a", "@b"},
		},
		{
			name:    "duplicates removed",
			caption: "@x @x",
			want:    []string{"@x"},
		},
		{
			name:    "none",
			caption: "nobody",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mentions(tt.caption); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Mentions(%q) = %v, want %v", tt.caption, got, tt.want)
			}
		})
	}
}
