package provisioning

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// IsValidSubdomain reports whether a name satisfies the platform charset:
// lowercase [a-z0-9-], non-empty, no leading/trailing dash.
func IsValidSubdomain(name string) bool {
	if name == "" || len(name) > 63 {
		return false
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return false
	}
	return subdomainPattern.MatchString(name)
}

// SanitizeSubdomain lowercases a proposed name and strips everything outside
// the allowed charset. Spaces collapse to single dashes.
func SanitizeSubdomain(base string) string {
	base = strings.ToLower(strings.TrimSpace(base))
	base = strings.Join(strings.Fields(base), "-")
	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

// FindAvailableSubdomain picks a free subdomain for a proposed base name:
// the base itself, then base-1 .. base-100, then a timestamp suffix.
func FindAvailableSubdomain(ctx context.Context, client Client, base string) (string, error) {
	base = SanitizeSubdomain(base)
	if base == "" {
		base = "restaurant"
	}

	exists, err := client.SubdomainExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	for i := 1; i <= 100; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		exists, err := client.SubdomainExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return fmt.Sprintf("%s-%d", base, time.Now().Unix()), nil
}
