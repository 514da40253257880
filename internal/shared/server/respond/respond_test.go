package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorWritesFlatBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)

	Error(c, http.StatusTooManyRequests, "rate_limited", "Rate limit exceeded. Please try again later.", nil)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Rate limit exceeded. Please try again later." {
		t.Fatalf("unexpected error field: %v", body["error"])
	}
	if body["code"] != "rate_limited" {
		t.Fatalf("unexpected code field: %v", body["code"])
	}
	if _, ok := body["details"]; ok {
		t.Fatalf("details should be omitted")
	}
	if !c.IsAborted() {
		t.Fatalf("expected context to be aborted")
	}
}

func TestNoContentHasEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/x", nil)

	NoContent(c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestCreatedWritesJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)

	Created(c, gin.H{"id": "a"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec.Body.String() != `{"id":"a"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
