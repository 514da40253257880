package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"internship-backend/internal/llm"
	"internship-backend/internal/shared/telemetry"
)

const (
	// DefaultURL is the hosted OpenAI-compatible chat-completions endpoint.
	DefaultURL = "https://ai.gateway.lovable.dev/v1/chat/completions"

	providerName = "gateway"
	maxErrorBody = 2048
)

// Client implements llm.Client against an OpenAI-compatible chat completions endpoint.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

// Options configures a Client.
type Options struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// NewClient constructs a chat-completions client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		url = DefaultURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		url:        url,
		apiKey:     opts.APIKey,
		model:      opts.Model,
		httpClient: httpClient,
	}, nil
}

func (c *Client) Provider() string { return providerName }
func (c *Client) Model() string    { return c.model }

type chatMessage struct {
	Role    string      `json:"role"`
	Content chatContent `json:"content"`
}

// chatContent marshals as a plain string for single text parts and as a part array otherwise.
type chatContent struct {
	text  string
	parts []contentPart
}

func (c chatContent) MarshalJSON() ([]byte, error) {
	if c.parts == nil {
		return json.Marshal(c.text)
	}
	return json.Marshal(c.parts)
}

func (c *chatContent) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &c.parts)
	}
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &c.text)
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat exchange and returns the first choice.
func (c *Client) Complete(ctx context.Context, in llm.Request) (llm.Completion, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: toChatMessages(in.Messages),
	})
	if err != nil {
		return llm.Completion{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return llm.Completion{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.Completion{}, fmt.Errorf("gateway request timeout: %w", err)
		}
		return llm.Completion{}, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Completion{}, fmt.Errorf("gateway response read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return llm.Completion{}, &llm.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       telemetry.TruncateForLog(string(body), maxErrorBody),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return llm.Completion{}, fmt.Errorf("gateway response parse: %w", err)
	}
	if parsed.Error != nil {
		return llm.Completion{}, fmt.Errorf("gateway error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return llm.Completion{}, fmt.Errorf("gateway response missing choices: %w", llm.ErrEmptyContent)
	}

	content := parsed.Choices[0].Message.Content.text
	if strings.TrimSpace(content) == "" {
		return llm.Completion{}, llm.ErrEmptyContent
	}

	out := llm.Completion{Content: content, Model: parsed.Model}
	if parsed.Usage != nil {
		out.Usage = &llm.Usage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		}
	}
	logUsage(c.model, out.Usage)
	return out, nil
}

func toChatMessages(in []llm.Message) []chatMessage {
	out := make([]chatMessage, 0, len(in))
	for _, m := range in {
		out = append(out, chatMessage{Role: m.Role, Content: toContent(m.Parts)})
	}
	return out
}

func toContent(parts []llm.Part) chatContent {
	if len(parts) == 1 && parts[0].Document == nil {
		return chatContent{text: parts[0].Text}
	}
	out := make([]contentPart, 0, len(parts))
	for _, p := range parts {
		if p.Document != nil {
			out = append(out, contentPart{
				Type:     "image_url",
				ImageURL: &imageURL{URL: DataURL(p.Document.MIMEType, p.Document.Data)},
			})
			continue
		}
		out = append(out, contentPart{Type: "text", Text: p.Text})
	}
	return chatContent{parts: out}
}

// DataURL encodes data as a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func logUsage(model string, usage *llm.Usage) {
	fields := map[string]any{"provider": providerName, "model": model}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
