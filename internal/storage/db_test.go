package db

import "testing"

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"valid ascii", "hello", "hello"},
		{"valid unicode", "привет 🌅", "привет 🌅"},
		{"invalid sequence removed", "ok\xff\xfeok", "okok"},
		{"lone continuation byte", "\x80", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeUTF8(tt.input); got != tt.want {
				t.Errorf("SanitizeUTF8(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
