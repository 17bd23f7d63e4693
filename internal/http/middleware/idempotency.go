package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey carries the client-chosen dedup key on unsafe
// requests. A client retrying a confirm or message POST sends the same key
// so the operation applies once no matter how many attempts arrive.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys for idempotency state. Unexported; read them through
// GetIdempotencyKey, IsReplay and IsRateBypass.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

const defaultKeyMaxLen = 200

// Conservative token alphabet, close to an RFC 7230 token.
var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stashed by
// IdempotencyValidator, if the request carried one. Handlers should use
// this rather than re-reading the header; the stashed value has already
// passed validation.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the lookup recognised this request as a repeat
// of an already completed operation. Handlers then serve the persisted
// outcome instead of re-executing.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions tunes header validation. MaxLen caps the accepted key
// length (default 200). Pattern restricts the alphabet and defaults to
// ^[A-Za-z0-9._~\-:]+$. TTL is not a validation concern; the lookup decides
// whether a stored key is still live.
type IdempotencyOptions struct {
	MaxLen  int
	Pattern *regexp.Regexp
}

// IdempotencyLookup reports whether a completed, unexpired operation is
// already recorded for (userID, scopeID, key) as of now. Errors mean the
// lookup itself failed and must not block the request; the middleware
// treats them as "no replay".
type IdempotencyLookup func(ctx context.Context, userID, scopeID, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header on unsafe
// routes and stashes the result in the request context. Requests without
// the header pass through untouched. A malformed key is rejected with 400
// before any handler runs. When a lookup is supplied and finds a prior
// completion, the request is flagged as a replay and as exempt from rate
// limiting, so a client retrying for a lost response is not throttled away
// from it.
//
// The middleware never serves the cached payload itself. Handlers check
// IsReplay and decide what a replayed response looks like, since that
// differs per operation.
//
// The dedup scope is the ":id" route parameter, which on every idempotent
// route here is the resource the POST addresses.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = defaultKeyMaxLen
	}
	pattern := opts.Pattern
	if pattern == nil {
		pattern = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}

		if len(key) > maxLen || !pattern.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			scopeID := c.Param("id")
			now := time.Now().UTC()
			if exists, _ := lookup(c.Request.Context(), userIDFromCtx(c), scopeID, key, now); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}

// userIDFromCtx reads the identity set by the auth shim, falling back to
// the demo identity used throughout local development.
func userIDFromCtx(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "demo-user"
}
