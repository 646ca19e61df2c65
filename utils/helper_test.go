package utils

import (
	"testing"
	"time"
)

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2025, 8, 30, 17, 45, 12, 999, time.Local)
	got := TruncateToDay(in)
	want := time.Date(2025, 8, 30, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.Local)
	got := WindowStart(now, 7)
	want := time.Date(2025, 8, 23, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	// non-positive falls back to the default window
	if got := WindowStart(now, 0); !got.Equal(time.Date(2025, 7, 31, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("default window start = %v", got)
	}
}

func TestTruncateClientIP(t *testing.T) {
	cases := map[string]string{
		"203.0.113.87":          "203.0.113.0",
		"203.0.113.87:51234":    "203.0.113.0",
		"2001:db8:abcd:12::1":   "2001:db8:abcd::",
		"[2001:db8::1]:443":     "2001:db8::",
		"not-an-ip":             "",
		"":                      "",
	}
	for in, want := range cases {
		if got := TruncateClientIP(in); got != want {
			t.Errorf("TruncateClientIP(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"en-US": "en",
		"IT":    "it",
		" de ":  "de",
		"pt_BR": "pt",
		"":      "",
	}
	for in, want := range cases {
		if got := NormalizeLanguage(in); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsValidLanguage(t *testing.T) {
	for _, lang := range []string{"en", "it", "deu"} {
		if !IsValidLanguage(lang) {
			t.Errorf("IsValidLanguage(%q) = false", lang)
		}
	}
	for _, lang := range []string{"", "e", "english", "e1", "EN"} {
		if IsValidLanguage(lang) {
			t.Errorf("IsValidLanguage(%q) = true", lang)
		}
	}
}
