package translation

import "testing"

func TestNewProviderFromEnvUnconfigured(t *testing.T) {
	t.Setenv("TRANSLATION_API_KEY", "")
	if p := NewProviderFromEnv(); p != nil {
		t.Fatalf("expected nil provider without an API key, got %T", p)
	}
}

func TestNewProviderFromEnvConfigured(t *testing.T) {
	t.Setenv("TRANSLATION_API_KEY", "test-key")
	t.Setenv("TRANSLATION_API_BASE_URL", "https://translate.example.com/")

	p, ok := NewProviderFromEnv().(*httpProvider)
	if !ok {
		t.Fatalf("expected httpProvider, got %T", p)
	}
	if p.baseURL != "https://translate.example.com" {
		t.Fatalf("trailing slash not stripped: %q", p.baseURL)
	}
	if p.apiKeyHdr != "X-API-Key" {
		t.Fatalf("default key header = %q", p.apiKeyHdr)
	}
}
