package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Patterns scrubbed from query strings and header values before logging.
// UUIDs must be rewritten before phone numbers; the loose phone pattern
// would otherwise eat the digit runs inside a UUID.
var (
	idPattern    = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits only, so hex segments of ids never match.
	// Covers "+1 212-555-1212", "212 555 1212", "(212) 555-1212".
	phonePattern = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// scrubText replaces identifiers, email addresses and phone numbers with
// typed placeholder tokens, loosest pattern last.
func scrubText(s string) string {
	if s == "" {
		return s
	}
	s = idPattern.ReplaceAllString(s, "[REDACTED:id]")
	s = emailPattern.ReplaceAllString(s, "[REDACTED:email]")
	s = phonePattern.ReplaceAllString(s, "[REDACTED:phone]")
	return s
}

// maskSet lowercases and merges extra header names into the built-in set of
// headers whose values are never logged at all.
func maskSet(extra []string) map[string]struct{} {
	masked := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range extra {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			masked[h] = struct{}{}
		}
	}
	return masked
}

// scrubHeaders renders request headers for logging: masked headers collapse
// to "[REDACTED]", everything else passes through scrubText.
func scrubHeaders(h http.Header, masked map[string]struct{}) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, hide := masked[strings.ToLower(k)]; hide {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = scrubText(strings.Join(vv, ", "))
	}
	return out
}

// RedactOptions configures RedactingLogger. MaskHeaders lists additional
// header names (case-insensitive) whose values are fully masked, on top of
// Authorization, Cookie and Set-Cookie.
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger logs one "http_request" line per request with PII scrubbed
// first: emails, phone numbers and UUID-shaped ids are replaced with typed
// tokens in the query string and header values, and masked headers are
// hidden outright. Bodies are never logged. Severity follows the response
// status (info, warn for 4xx, error for 5xx).
//
// The registry and match routes carry user email and phone in profile
// payloads, so this stays in front of every /api route:
//
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-API-Key"},
//	}))
//
// Scrubbing is best effort. Clients should still keep PII out of query
// strings and headers wherever they can.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := maskSet(opts.MaskHeaders)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		query := scrubText(c.Request.URL.RawQuery)
		headers := scrubHeaders(c.Request.Header, masked)

		c.Next()

		status := c.Writer.Status()

		reqID := c.Writer.Header().Get(requestIDHeader)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		evt := log.Info()
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		}

		evt.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
