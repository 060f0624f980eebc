package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, Accept-Language"
	corsMaxAge       = "600"
)

// corsPolicy answers which Origin value to echo back. An empty allow list or
// a "*" entry admits every origin.
type corsPolicy struct {
	any     bool
	origins map[string]struct{}
}

func newCORSPolicy(allowed []string) corsPolicy {
	policy := corsPolicy{origins: make(map[string]struct{}, len(allowed))}
	if len(allowed) == 0 {
		policy.any = true
	}
	for _, origin := range allowed {
		origin = strings.ToLower(strings.TrimSpace(origin))
		if origin == "*" {
			policy.any = true
			continue
		}
		if origin != "" {
			policy.origins[origin] = struct{}{}
		}
	}
	return policy
}

// allowOrigin returns the Access-Control-Allow-Origin value, or "" when the
// origin is not admitted.
func (p corsPolicy) allowOrigin(origin string) string {
	if p.any {
		return "*"
	}
	if _, ok := p.origins[strings.ToLower(origin)]; ok {
		return origin
	}
	return ""
}

// corsMiddleware lets the mobile web build and admin tools call the API.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	policy := newCORSPolicy(allowed)
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		headers.Add("Vary", "Origin")
		if origin := policy.allowOrigin(c.GetHeader("Origin")); origin != "" {
			headers.Set("Access-Control-Allow-Origin", origin)
		}

		if c.Request.Method == http.MethodOptions {
			headers.Set("Access-Control-Allow-Methods", corsAllowMethods)
			headers.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			headers.Set("Access-Control-Max-Age", corsMaxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		headers.Set("Access-Control-Expose-Headers", "Retry-After")
		c.Next()
	}
}
