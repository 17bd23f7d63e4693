package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// envelopeRouter builds a router that stamps a known request id and parks a
// buffer-backed request logger, standing in for the real middleware chain.
func envelopeRouter(rid string, buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zerolog.New(buf)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Set("logger", &logger)
		c.Next()
	})
	return r
}

func Test_fail_ServerErrorLogsAndAborts(t *testing.T) {
	var buf bytes.Buffer
	r := envelopeRouter("rid-500", &buf)

	afterRan := false
	r.GET("/boom",
		func(c *gin.Context) { fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom") },
		func(c *gin.Context) { afterRan = true },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("envelope not json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeInternal || resp.Message != "kaboom" {
		t.Fatalf("envelope = %+v", resp)
	}
	if afterRan {
		t.Fatalf("fail must abort the handler chain")
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"error"`) || !strings.Contains(logs, `"code":"internal_error"`) {
		t.Fatalf("5xx not logged with detail: %s", logs)
	}
}

func Test_Fail_ClientErrorSkipsLogging(t *testing.T) {
	var buf bytes.Buffer
	r := envelopeRouter("rid-404", &buf)

	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "no such listing")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("envelope not json: %v", err)
	}
	if resp.RequestID != "rid-404" || resp.Code != ErrCodeNotFound || resp.Message != "no such listing" {
		t.Fatalf("envelope = %+v", resp)
	}
	// Client errors are visible in the access log already; fail stays quiet.
	if buf.Len() != 0 {
		t.Fatalf("4xx should not emit an api error line: %s", buf.String())
	}
}

func Test_ok_and_noContent(t *testing.T) {
	var buf bytes.Buffer
	r := envelopeRouter("rid-2xx", &buf)

	r.POST("/made", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"id": "p1"}) })
	r.DELETE("/gone", func(c *gin.Context) { noContent(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/made", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("ok status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["id"] != "p1" {
		t.Fatalf("ok body = %s (err %v)", w.Body.String(), err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/gone", nil))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("noContent wrote %d with %q", w.Code, w.Body.String())
	}
}
