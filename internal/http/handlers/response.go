// Package handlers implements the public HTTP API: property registry
// endpoints, interest expression and listing, match confirmation and the
// per-match messaging and rating surface.
//
// Every failure path goes through fail(), so each error body is the same
// envelope with a stable machine-readable code:
//
//	HTTP/1.1 409 Conflict
//	{"request_id": "6e9ac1e8-9c2a-4b77-8f2d-3a5b3f9e77b1",
//	 "code": "conflict",
//	 "message": "property already claimed by another landlord"}
//
// Success bodies are plain JSON of the handler's response type, written via
// ok() and noContent().
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/http/middleware"
)

// ErrorResponse is the error envelope shared by every endpoint. Code is one
// of the constants in errors.go and is safe to branch on; Message is for
// humans. RequestID echoes X-Request-ID so a client report can be matched
// to server logs.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"6e9ac1e8-9c2a-4b77-8f2d-3a5b3f9e77b1"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"resource not found"`
}

// fail aborts the request with the standard envelope. Server-side failures
// (5xx) are also logged through the request-scoped logger so the access
// line and the error detail share a request_id.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail exposes fail to the router for its NoRoute and NoMethod handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes body as JSON with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes 204 for operations with nothing to return.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
