package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, GetCorrelationID(c))
	})

	cases := []struct {
		name   string
		header string
		keep   bool
	}{
		{"propagates client id", "req-123", true},
		{"generates when missing", "", false},
		{"replaces invalid id", "bad id\n", false},
		{"replaces oversized id", strings.Repeat("a", 200), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set(CorrelationIDHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(CorrelationIDHeader)
			if got == "" || got != w.Body.String() {
				t.Fatalf("header %q body %q", got, w.Body.String())
			}
			if tc.keep != (got == tc.header) {
				t.Fatalf("header=%q got=%q", tc.header, got)
			}
		})
	}
}

func TestSlogLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	r := gin.New()
	r.Use(CorrelationIDMiddleware(), SlogLoggerMiddleware(logger, "/health"))
	r.GET("/sessions/:id", func(c *gin.Context) {
		LoggerFromContext(c).Info("inside handler")
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/sessions/abc", nil)
	req.Header.Set(CorrelationIDHeader, "corr-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"inside handler", "request completed", "correlation_id=corr-1", "session_id=abc", "path=/sessions/:id"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if strings.Contains(buf.String(), "request completed") {
		t.Fatalf("health check logged at info level: %s", buf.String())
	}
}
