package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func serveRequestID(t *testing.T, inbound string) (header, inContext string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		inContext = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if inbound != "" {
		req.Header.Set("X-Request-Id", inbound)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp.Header().Get("X-Request-Id"), inContext
}

func TestRequestIDKeepsInbound(t *testing.T) {
	header, ctxID := serveRequestID(t, "req-123")
	if header != "req-123" || ctxID != "req-123" {
		t.Fatalf("expected inbound id to be kept, got header=%q ctx=%q", header, ctxID)
	}
}

func TestRequestIDGeneratesWhenMissingOrInvalid(t *testing.T) {
	for _, inbound := range []string{"", "has space", strings.Repeat("a", 200)} {
		header, ctxID := serveRequestID(t, inbound)
		if _, err := uuid.Parse(header); err != nil {
			t.Fatalf("inbound %q: expected generated uuid, got %q", inbound, header)
		}
		if header != ctxID {
			t.Fatalf("header %q and context %q differ", header, ctxID)
		}
	}
}
