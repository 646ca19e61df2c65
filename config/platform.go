package config

import (
	"os"
	"strings"
	"time"
)

// DefaultTemplateId is the template served when a restaurant has no template assigned.
//
// Set via env:
// - DEFAULT_TEMPLATE_ID=1
func DefaultTemplateId() int {
	return intFromEnv("DEFAULT_TEMPLATE_ID", 1)
}

// DefaultSourceLanguage is the language menu content is authored in.
//
// Set via env:
// - MENU_SOURCE_LANGUAGE=it
func DefaultSourceLanguage() string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("MENU_SOURCE_LANGUAGE")))
	if v == "" {
		return "it"
	}
	return v
}

// TranslationEnabled reports whether an external translation provider is configured.
// When false, translation is a passthrough (fail-open).
func TranslationEnabled() bool {
	return strings.TrimSpace(os.Getenv("TRANSLATION_API_KEY")) != ""
}

// TranslationCacheSize bounds the in-process translation LRU.
//
// Set via env:
// - TRANSLATION_CACHE_SIZE=4096
func TranslationCacheSize() int {
	n := intFromEnv("TRANSLATION_CACHE_SIZE", 4096)
	if n <= 0 {
		n = 4096
	}
	return n
}

// TranslationTimeout bounds a single provider call.
//
// Set via env:
// - TRANSLATION_TIMEOUT_SECONDS=3
func TranslationTimeout() time.Duration {
	return time.Duration(intFromEnv("TRANSLATION_TIMEOUT_SECONDS", 3)) * time.Second
}

// TenantCacheTTL is how long resolved tenants stay in redis before re-reading the DB.
//
// Set via env:
// - TENANT_CACHE_TTL_SECONDS=60
func TenantCacheTTL() time.Duration {
	return time.Duration(intFromEnv("TENANT_CACHE_TTL_SECONDS", 60)) * time.Second
}
