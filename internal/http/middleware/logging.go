// Package middleware holds the Gin middleware chain shared by every route:
// request correlation, access logging, panic recovery, security headers,
// PII-redacting request logs, Prometheus instrumentation, token-bucket rate
// limiting and Idempotency-Key validation.
//
// This file covers request correlation and access logging:
//
//   - RequestID() tags every request with a correlation ID, reusing the
//     client-supplied X-Request-ID when present and minting a UUIDv4 otherwise.
//   - Logger() emits one structured access line per request and parks a
//     request-scoped zerolog.Logger in the context for downstream enrichment.
//   - Recovery() turns panics into JSON 500 responses that still carry the
//     correlation ID, and logs the stack.
//   - LoggerFrom() hands the request-scoped logger to handlers and services.
//
// Install RequestID first, then a logger, then Recovery, so every log line and
// every error body can be tied back to the same correlation ID. The
// request-scoped logger lives under the "logger" context key; the ID under
// "requestID".
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key holding the correlation ID.
	requestIDKey = "requestID"
	// requestIDHeader carries the correlation ID on the wire, both directions.
	requestIDHeader = "X-Request-ID"
	// queryLogCap bounds how many bytes of a raw query string reach the logs.
	queryLogCap = 2048
)

// RequestID reuses or mints a correlation ID for the request.
//
// The ID is stored in the Gin context under "requestID" and mirrored onto the
// response X-Request-ID header so clients can quote it when reporting issues.
// Header lookup is case-insensitive per net/http semantics.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// Logger writes one structured access-log line per request.
//
// The line records method, matched route (falling back to the raw path on
// 404s), client IP, user agent, referer, capped query string, request and
// response sizes, status and latency, plus the correlation and user IDs when
// available. A request-scoped logger carrying the request fields is stored
// under the "logger" context key for LoggerFrom.
//
// Level selection: error when Gin accumulated errors or the status is 5xx,
// warn on 4xx, info otherwise.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		scoped := log.With().
			Str("request_id", ctxString(c, requestIDKey)).
			Str("user_id", ctxString(c, "userID")).
			Str("method", c.Request.Method).
			Str("path", route).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("referer", c.Request.Referer()).
			Str("query", clip(c.Request.URL.RawQuery, queryLogCap)).
			Int64("bytes_in", c.Request.ContentLength).
			Logger()
		c.Set("logger", &scoped)

		c.Next()

		outcome := scoped.With().
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		switch {
		case len(c.Errors) > 0:
			outcome.Error().Str("errors", c.Errors.String()).Msg("request")
		case c.Writer.Status() >= http.StatusInternalServerError:
			outcome.Error().Msg("request")
		case c.Writer.Status() >= http.StatusBadRequest:
			outcome.Warn().Msg("request")
		default:
			outcome.Info().Msg("request")
		}
	}
}

// Recovery converts panics into JSON 500 responses.
//
// The panic value and stack are logged with the correlation ID. When nothing
// has been written yet the standard error envelope is emitted; otherwise only
// the status is forced, since the body is already on the wire.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			rid := ctxString(c, requestIDKey)
			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("request_id", rid).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header("Content-Type", "application/json")
			c.Header(requestIDHeader, rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": rid,
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger attached by Logger or
// RedactingLogger. When none was attached it falls back to the global logger,
// so callers never need a nil check.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	fallback := log.With().Logger()
	return &fallback
}

// ctxString reads a string context value, returning "" for absent or
// non-string entries.
func ctxString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// clip caps s at max bytes, marking truncation with an ASCII ellipsis.
// max <= 0 disables the cap. Byte truncation is fine for log output.
func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
