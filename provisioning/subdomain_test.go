package provisioning

import (
	"context"
	"strconv"
	"strings"
	"testing"
)

type fakeClient struct {
	taken map[string]bool
}

func (f *fakeClient) CreateSubdomain(ctx context.Context, name string) (bool, error) {
	f.taken[name] = true
	return true, nil
}

func (f *fakeClient) SubdomainExists(ctx context.Context, name string) (bool, error) {
	return f.taken[name], nil
}

func TestFindAvailableSubdomainFreeBase(t *testing.T) {
	c := &fakeClient{taken: map[string]bool{}}
	got, err := FindAvailableSubdomain(context.Background(), c, "Trattoria Roma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "trattoria-roma" {
		t.Fatalf("got %q", got)
	}
}

func TestFindAvailableSubdomainNumericSuffix(t *testing.T) {
	c := &fakeClient{taken: map[string]bool{"demo": true, "demo-1": true}}
	got, err := FindAvailableSubdomain(context.Background(), c, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "demo-2" {
		t.Fatalf("got %q", got)
	}
}

func TestFindAvailableSubdomainTimestampAfterCollisions(t *testing.T) {
	taken := map[string]bool{"demo": true}
	for i := 1; i <= 100; i++ {
		taken["demo-"+strconv.Itoa(i)] = true
	}
	c := &fakeClient{taken: taken}
	got, err := FindAvailableSubdomain(context.Background(), c, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "demo-") {
		t.Fatalf("expected timestamp suffix, got %q", got)
	}
	suffix := strings.TrimPrefix(got, "demo-")
	if ts, err := strconv.ParseInt(suffix, 10, 64); err != nil || ts <= 100 {
		t.Fatalf("expected a unix-timestamp suffix, got %q", got)
	}
}

func TestSanitizeSubdomain(t *testing.T) {
	cases := map[string]string{
		"Trattoria Da Mario": "trattoria-da-mario",
		"Café München!":      "caf-mnchen",
		"  demo  ":           "demo",
		"--demo--":           "demo",
		"":                   "",
	}
	for in, want := range cases {
		if got := SanitizeSubdomain(in); got != want {
			t.Errorf("SanitizeSubdomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsValidSubdomain(t *testing.T) {
	valid := []string{"demo", "demo-1", "a1", "trattoria-roma"}
	invalid := []string{"", "-demo", "demo-", "Demo", "de mo", "café", strings.Repeat("a", 64)}
	for _, s := range valid {
		if !IsValidSubdomain(s) {
			t.Errorf("IsValidSubdomain(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSubdomain(s) {
			t.Errorf("IsValidSubdomain(%q) = true, want false", s)
		}
	}
}

func TestDisabledClientNeverBlocksCreation(t *testing.T) {
	c := disabledClient{}
	got, err := FindAvailableSubdomain(context.Background(), c, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "demo" {
		t.Fatalf("got %q", got)
	}
}
