package middlewares

import (
	"strings"

	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/gin-gonic/gin"
)

// TenantHostMiddleware extracts the tenant subdomain from the request host
// (X-Forwarded-Host behind the proxy, Host otherwise), lowercased. A bare
// platform domain leaves the context without a subdomain; that is a valid,
// distinct case from a missing tenant.
func TenantHostMiddleware(platformDomain string) gin.HandlerFunc {
	platformDomain = strings.ToLower(strings.TrimSpace(platformDomain))
	return func(c *gin.Context) {
		host := c.Request.Header.Get("X-Forwarded-Host")
		if host == "" {
			host = c.Request.Host
		}
		if sub := SubdomainFromHost(host, platformDomain); sub != "" {
			c.Request = c.Request.WithContext(utils.SetSubdomainInContext(c.Request.Context(), sub))
		}
		c.Next()
	}
}

// SubdomainFromHost pulls the leftmost label out of "sub.platform.tld".
// Hosts that are the bare platform domain, a www alias, an IP or something
// outside the platform domain yield "".
func SubdomainFromHost(host, platformDomain string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if host == "" || platformDomain == "" {
		return ""
	}
	if host == platformDomain {
		return ""
	}
	suffix := "." + platformDomain
	if !strings.HasSuffix(host, suffix) {
		return ""
	}
	sub := strings.TrimSuffix(host, suffix)
	if sub == "" || sub == "www" || strings.Contains(sub, ".") {
		return ""
	}
	return sub
}
