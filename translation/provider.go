package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/menu_backend/config"
)

// Provider is the external text-translation collaborator. It is optional:
// a nil Provider makes Translate a passthrough.
type Provider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

type httpProvider struct {
	baseURL   string
	apiKey    string
	apiKeyHdr string
	http      *http.Client
}

// NewProviderFromEnv builds the HTTP provider, or nil when no
// TRANSLATION_API_KEY is configured.
func NewProviderFromEnv() Provider {
	if !config.TranslationEnabled() {
		return nil
	}
	apiKey := strings.TrimSpace(os.Getenv("TRANSLATION_API_KEY"))
	baseURL := strings.TrimSpace(os.Getenv("TRANSLATION_API_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://translate.mmdatafocus.com"
	}
	apiKeyHeader := strings.TrimSpace(os.Getenv("TRANSLATION_API_KEY_HEADER"))
	if apiKeyHeader == "" {
		apiKeyHeader = "X-API-Key"
	}
	return &httpProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiKeyHdr: apiKeyHeader,
		http:      &http.Client{Timeout: config.TranslationTimeout()},
	}
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	Text string `json:"text"`
}

func (p *httpProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/translate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set(p.apiKeyHdr, p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("translation api error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed translateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("translation api returned empty text")
	}
	return parsed.Text, nil
}
