package utils

import (
	"net"
	"strings"
	"time"
)

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	if ptr != nil {
		return *ptr
	}
	if len(defaults) > 0 {
		return defaults[0]
	}
	var zero T
	return zero
}

func UniqueSlice[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	out := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// TruncateToDay drops the time-of-day in server-local time.
// All tenants share one clock; there is no per-restaurant timezone.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// WindowStart returns the first day included in a rolling window of the given
// day count, ending today. days <= 0 falls back to 30.
func WindowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		days = 30
	}
	return TruncateToDay(now).AddDate(0, 0, -days)
}

// TruncateClientIP coarsens a client address before storage: IPv4 keeps the /24,
// IPv6 keeps the /48. Unparseable input is stored empty rather than raw.
func TruncateClientIP(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	// strip a port if present
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	ip := net.ParseIP(raw)
	if ip == nil {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.Mask(net.CIDRMask(24, 32)).String()
	}
	return ip.Mask(net.CIDRMask(48, 128)).String()
}

// NormalizeLanguage lowercases and trims a client-supplied language tag,
// keeping only the primary subtag ("en-US" -> "en").
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

// IsValidLanguage accepts 2-3 letter primary language subtags.
func IsValidLanguage(lang string) bool {
	if len(lang) < 2 || len(lang) > 3 {
		return false
	}
	for _, r := range lang {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
