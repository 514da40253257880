package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"internship-backend/internal/llm"
	"internship-backend/internal/shared/telemetry"
)

const (
	defaultModel = "gemini-2.5-flash"
	providerName = "gemini"
)

// Client implements llm.Client on top of the Google GenAI SDK.
type Client struct {
	client    *genai.Client
	modelName string
}

// Options configures a Client.
type Options struct {
	APIKey string
	Model  string
	// BaseURL and HTTPClient override the Gemini API endpoint, mostly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	// Gateway-style names ("google/gemini-2.5-flash") are accepted for parity.
	model = strings.TrimPrefix(model, "google/")

	return &Client{client: client, modelName: model}, nil
}

func (c *Client) Provider() string { return providerName }

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

// Complete maps the exchange onto GenerateContent. System messages become the system instruction.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Completion, error) {
	if c == nil || c.client == nil {
		return llm.Completion{}, errors.New("gemini client is not initialized")
	}

	contents, system := toContents(req.Messages)
	if len(contents) == 0 {
		return llm.Completion{}, errors.New("gemini request has no user content")
	}
	var cfg *genai.GenerateContentConfig
	if system != nil {
		cfg = &genai.GenerateContentConfig{SystemInstruction: system}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, cfg)
	if err != nil {
		return llm.Completion{}, mapError(err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" || part.Thought {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
		break
	}

	content := builder.String()
	if strings.TrimSpace(content) == "" {
		return llm.Completion{}, llm.ErrEmptyContent
	}

	out := llm.Completion{Content: content, Model: resp.ModelVersion}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &llm.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	fields := map[string]any{"provider": providerName, "model": c.modelName}
	if out.Usage != nil {
		fields["total_tokens"] = out.Usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
	return out, nil
}

func toContents(messages []llm.Message) ([]*genai.Content, *genai.Content) {
	var system *genai.Content
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		parts := toParts(m.Parts)
		if len(parts) == 0 {
			continue
		}
		switch m.Role {
		case llm.RoleSystem:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, parts...)
		case llm.RoleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: parts})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: parts})
		}
	}
	return contents, system
}

func toParts(in []llm.Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(in))
	for _, p := range in {
		if p.Document != nil {
			out = append(out, &genai.Part{InlineData: &genai.Blob{
				MIMEType: p.Document.MIMEType,
				Data:     p.Document.Data,
			}})
			continue
		}
		if p.Text == "" {
			continue
		}
		out = append(out, &genai.Part{Text: p.Text})
	}
	return out
}

// mapError turns SDK API errors into *llm.StatusError so callers classify them like any HTTP upstream.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("generate content: %w", &llm.StatusError{
			Provider:   providerName,
			StatusCode: apiErr.Code,
			Body:       apiErr.Message,
		})
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return fmt.Errorf("generate content: %w", &llm.StatusError{
			Provider:   providerName,
			StatusCode: apiErrPtr.Code,
			Body:       apiErrPtr.Message,
		})
	}
	return fmt.Errorf("generate content: %w", err)
}

var _ llm.Client = (*Client)(nil)
