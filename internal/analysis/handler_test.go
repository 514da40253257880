package analysis

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-backend/internal/llm/gateway"
)

func newTestRouter(g *Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(g).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, r http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-resume", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return rec, payload
}

func TestHandlerPDFModeTakesPrecedence(t *testing.T) {
	stub := &stubClient{content: "Extracted resume"}
	r := newTestRouter(newTestGateway(stub))

	body, _ := json.Marshal(Request{
		Action:         ActionParsePDF,
		PDFBase64:      base64.StdEncoding.EncodeToString(minimalPDF),
		ResumeText:     "ignored",
		JobDescription: "ignored",
	})
	rec, payload := postJSON(t, r, string(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Extracted resume", payload["text"])
	require.Len(t, stub.requests, 1)
	assert.Len(t, stub.requests[0].Messages, 1, "extraction sends a single user message")
}

func TestHandlerActionWithoutPDFFallsBackToMatch(t *testing.T) {
	stub := &stubClient{content: `{"matchScore": 40}`}
	r := newTestRouter(newTestGateway(stub))

	rec, payload := postJSON(t, r, `{"action":"parse-pdf","resumeText":"r","jobDescription":"jd"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(40), payload["matchScore"])
}

func TestHandlerRequiresInput(t *testing.T) {
	stub := &stubClient{content: "{}"}
	r := newTestRouter(newTestGateway(stub))

	for _, body := range []string{`{}`, `{"resumeText":"r"}`, `{"jobDescription":"jd"}`, `{"action":"parse-pdf"}`} {
		rec, payload := postJSON(t, r, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Resume text and job description are required", payload["error"], body)
		assert.Equal(t, "validation_error", payload["code"], body)
	}
	assert.Empty(t, stub.requests)
}

func TestHandlerMalformedBody(t *testing.T) {
	r := newTestRouter(newTestGateway(&stubClient{}))
	rec, payload := postJSON(t, r, `{"resumeText":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", payload["error"])
}

func TestHandlerNotConfigured(t *testing.T) {
	r := newTestRouter(nil)
	rec, payload := postJSON(t, r, `{"resumeText":"r","jobDescription":"jd"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "AI service not configured", payload["error"])
}

func TestHandlerFallbackKeepsShape(t *testing.T) {
	r := newTestRouter(newTestGateway(&stubClient{content: "no json here"}))
	rec, payload := postJSON(t, r, `{"resumeText":"r","jobDescription":"jd"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(50), payload["matchScore"])
	assert.Equal(t, "no json here", payload["summary"])
	for _, key := range []string{"strengths", "weaknesses", "missingKeywords", "keySkillsMatch"} {
		assert.Equal(t, []any{}, payload[key], key)
	}
	assert.Equal(t, []any{"Unable to parse detailed analysis. Please try again."}, payload["suggestions"])
}

func TestHandlerUpstreamRateLimit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client, err := gateway.NewClient(gateway.Options{URL: upstream.URL, APIKey: "k", Model: "m"})
	require.NoError(t, err)
	g, err := NewGateway(client)
	require.NoError(t, err)

	rec, payload := postJSON(t, newTestRouter(g), `{"resumeText":"r","jobDescription":"jd"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", payload["error"])
}

func TestEndToEndMatchAgainstStubUpstream(t *testing.T) {
	answer := "```json\n" + `{
  "matchScore": 38,
  "summary": "Backend API experience in Node.js but none of the requested infrastructure skills.",
  "strengths": ["Built REST APIs"],
  "weaknesses": ["No Docker, SQL, or AWS experience listed"],
  "missingKeywords": ["Docker", "SQL", "AWS"],
  "suggestions": ["Deploy a Node.js API in a Docker container on AWS backed by a SQL database"],
  "keySkillsMatch": [
    {"skill": "REST APIs", "status": "strong", "note": "Built REST APIs in Node.js"},
    {"skill": "Docker", "status": "missing", "note": "Not mentioned"}
  ]
}` + "\n```"

	var upstreamBody map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &upstreamBody)
		resp, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": answer}}},
		})
		_, _ = w.Write(resp)
	}))
	defer upstream.Close()

	client, err := gateway.NewClient(gateway.Options{URL: upstream.URL, APIKey: "test-key", Model: "google/gemini-2.5-flash"})
	require.NoError(t, err)
	g, err := NewGateway(client)
	require.NoError(t, err)

	body := `{"resumeText":"Built REST APIs in Node.js","jobDescription":"Seeking intern skilled in Docker, SQL, AWS"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-resume", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestRouter(g).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 38, result.MatchScore)
	assert.NotEmpty(t, result.Weaknesses)
	assert.Equal(t, []string{"Docker", "SQL", "AWS"}, result.MissingKeywords)
	require.Len(t, result.KeySkillsMatch, 2)
	assert.Equal(t, SkillMissing, result.KeySkillsMatch[1].Status)

	assert.Equal(t, "google/gemini-2.5-flash", upstreamBody["model"])
	messages := upstreamBody["messages"].([]any)
	require.Len(t, messages, 2)
	user := messages[1].(map[string]any)
	assert.Equal(t, "## Resume:\nBuilt REST APIs in Node.js\n\n## Job Description:\nSeeking intern skilled in Docker, SQL, AWS", user["content"])
}

func TestHandlerOptionsIsEmpty(t *testing.T) {
	r := newTestRouter(newTestGateway(&stubClient{}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze-resume", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, rec.Body.Len())
}
