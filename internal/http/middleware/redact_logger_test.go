package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestScrubText(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"email", "reach me at jo.bloggs+lets@example.co.uk please", "reach me at [REDACTED:email] please"},
		{"phone dashed", "call +1-555-123-4567 now", "call [REDACTED:phone] now"},
		{"phone spaced", "212 555 1212", "[REDACTED:phone]"},
		{"uuid", "id=123e4567-e89b-12d3-a456-426614174000", "id=[REDACTED:id]"},
		{
			// The id pattern must win before the phone pattern sees the digits.
			"uuid not split as phone",
			"ref 123e4567-e89b-12d3-a456-426614174000 end",
			"ref [REDACTED:id] end",
		},
		{"untouched", "just a plain sentence", "just a plain sentence"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scrubText(tc.in); got != tc.want {
				t.Fatalf("scrubText(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMaskSet_NormalizesExtras(t *testing.T) {
	masked := maskSet([]string{" X-Api-Key ", "", "X-SIGNATURE"})

	for _, want := range []string{"authorization", "cookie", "set-cookie", "x-api-key", "x-signature"} {
		if _, ok := masked[want]; !ok {
			t.Fatalf("mask set missing %q: %v", want, masked)
		}
	}
	if _, ok := masked[""]; ok {
		t.Fatalf("blank entries must be dropped")
	}
}

func TestRedactingLogger_ScrubsQueryAndHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureGlobalLog(t)

	r := gin.New()
	// Stand-in for RequestID upstream: the response header should win over
	// the inbound one.
	r.Use(func(c *gin.Context) {
		c.Header(requestIDHeader, "rid-resp")
		c.Next()
	})
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}}))
	r.GET("/users/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	q := "email=a.b+tag@example.com&phone=+1-555-123-4567&id=123e4567-e89b-12d3-a456-426614174000"
	req := httptest.NewRequest(http.MethodGet, "/users/123?"+q, nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Cookie", "sid=topsecret")
	req.Header.Set("X-Api-Key", "shhh")
	req.Header.Set("X-Custom", "email a@b.com id=123e4567-e89b-12d3-a456-426614174000 phone 555-123-4567")
	req.Header.Set(requestIDHeader, "rid-req")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"info"`) {
		t.Fatalf("2xx should log info: %s", logs)
	}
	if !strings.Contains(logs, `"path":"/users/:id"`) {
		t.Fatalf("path should be the route template: %s", logs)
	}
	if !strings.Contains(logs, `"request_id":"rid-resp"`) {
		t.Fatalf("request_id should come from the response header: %s", logs)
	}
	for _, token := range []string{"[REDACTED:email]", "[REDACTED:phone]", "[REDACTED:id]"} {
		if !strings.Contains(logs, token) {
			t.Fatalf("query missing %s: %s", token, logs)
		}
	}
	for _, h := range []string{"Authorization", "Cookie", "X-Api-Key"} {
		if !strings.Contains(logs, `"`+h+`":"[REDACTED]"`) {
			t.Fatalf("%s must be fully masked: %s", h, logs)
		}
	}
	if !strings.Contains(logs, `"X-Custom":"email [REDACTED:email] id=[REDACTED:id] phone [REDACTED:phone]"`) {
		t.Fatalf("unmasked header should be pattern-scrubbed: %s", logs)
	}
	if strings.Contains(logs, "a@b.com") || strings.Contains(logs, "topsecret") {
		t.Fatalf("raw PII leaked into logs: %s", logs)
	}
}

func TestRedactingLogger_LevelsAndRequestIDFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureGlobalLog(t)

	r := gin.New()
	// No RequestID middleware here, so the inbound header is the fallback.
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/warn", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/error", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for path, rid := range map[string]string{"/warn": "rid-warn", "/error": "rid-err"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(requestIDHeader, rid)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"warn"`) || !strings.Contains(logs, `"request_id":"rid-warn"`) {
		t.Fatalf("4xx line wrong: %s", logs)
	}
	if !strings.Contains(logs, `"level":"error"`) || !strings.Contains(logs, `"request_id":"rid-err"`) {
		t.Fatalf("5xx line wrong: %s", logs)
	}
}
