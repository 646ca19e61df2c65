package provisioning

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client is the DNS/subdomain collaborator. Failures here never roll back the
// operation that triggered them; callers log and continue.
type Client interface {
	CreateSubdomain(ctx context.Context, name string) (bool, error)
	SubdomainExists(ctx context.Context, name string) (bool, error)
}

type dnsClient struct {
	baseURL   string
	apiKey    string
	apiKeyHdr string
	http      *http.Client
}

// NewClient builds the HTTP collaborator from env. With no DNS_API_KEY the
// returned client is disabled: Exists reports false and Create is a no-op, so
// a restaurant can exist with a non-provisioned subdomain.
func NewClient() Client {
	apiKey := strings.TrimSpace(os.Getenv("DNS_API_KEY"))
	if apiKey == "" {
		return disabledClient{}
	}
	baseURL := strings.TrimSpace(os.Getenv("DNS_API_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://dns.mmdatafocus.com"
	}
	apiKeyHeader := strings.TrimSpace(os.Getenv("DNS_API_KEY_HEADER"))
	if apiKeyHeader == "" {
		apiKeyHeader = "X-API-Key"
	}
	return &dnsClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiKeyHdr: apiKeyHeader,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type subdomainResponse struct {
	Exists  bool `json:"exists"`
	Created bool `json:"created"`
}

func (c *dnsClient) do(ctx context.Context, method, path string, body io.Reader) (subdomainResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return subdomainResponse{}, err
	}
	req.Header.Set(c.apiKeyHdr, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return subdomainResponse{}, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return subdomainResponse{}, fmt.Errorf("dns api error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed subdomainResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return subdomainResponse{}, err
	}
	return parsed, nil
}

func (c *dnsClient) CreateSubdomain(ctx context.Context, name string) (bool, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/subdomains/"+name, nil)
	if err != nil {
		return false, err
	}
	return resp.Created, nil
}

func (c *dnsClient) SubdomainExists(ctx context.Context, name string) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/subdomains/"+name, nil)
	if err != nil {
		return false, err
	}
	return resp.Exists, nil
}

type disabledClient struct{}

func (disabledClient) CreateSubdomain(ctx context.Context, name string) (bool, error) {
	return false, nil
}

func (disabledClient) SubdomainExists(ctx context.Context, name string) (bool, error) {
	return false, nil
}
