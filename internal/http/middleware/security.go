package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultHSTSMaxAge = 180 * 24 * time.Hour

// SecurityOptions selects which hardening headers SecurityHeaders emits.
//
// EnableHSTS must only be set when traffic is HTTPS end to end, proxy leg
// included; the header is withheld on plain-HTTP requests regardless.
// HSTSMaxAge falls back to 180 days when unset. NoStore marks responses
// uncacheable, for routes carrying tenant or landlord PII. EnablePolicy adds
// the browser feature-policy headers, which non-browser clients ignore.
type SecurityOptions struct {
	EnableHSTS   bool
	HSTSMaxAge   time.Duration
	NoStore      bool
	EnablePolicy bool
}

// SecurityHeaders hardens every response with a conservative header set for
// a JSON API behind a reverse proxy. Always sent: nosniff, X-Frame-Options
// DENY and Referrer-Policy no-referrer. The rest follows opt: feature
// policies, no-store cache controls, and HSTS on HTTPS requests only. When a
// correlation ID is on the response it is also listed in
// Access-Control-Expose-Headers so browsers can read it.
//
// No Content-Security-Policy is set here; it only matters for HTML and this
// service serves none.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hstsValue := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hstsValue)
		}

		if h.Get(requestIDHeader) != "" {
			exposeHeader(h, requestIDHeader)
		}

		c.Next()
	}
}

// exposeHeader appends name to Access-Control-Expose-Headers without
// clobbering values some other middleware already put there.
func exposeHeader(h http.Header, name string) {
	const expose = "Access-Control-Expose-Headers"
	cur := h.Get(expose)
	switch {
	case cur == "":
		h.Set(expose, name)
	case !strings.Contains(cur, name):
		h.Set(expose, cur+", "+name)
	}
}

// isHTTPS reports whether the request arrived over TLS, either directly or
// via a proxy that set X-Forwarded-Proto.
func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
