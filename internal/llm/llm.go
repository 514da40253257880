package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client abstracts the chat-completion upstream used by the analysis gateway.
type Client interface {
	Complete(ctx context.Context, req Request) (Completion, error)
	Provider() string
	Model() string
}

// Request is a single chat exchange.
type Request struct {
	Messages []Message
}

// Message is one chat turn made of ordered parts.
type Message struct {
	Role  string
	Parts []Part
}

// Part is either text or an inline document. Exactly one field is set.
type Part struct {
	Text     string
	Document *Document
}

// Document is binary content embedded in a message, e.g. a PDF.
type Document struct {
	MIMEType string
	Data     []byte
}

// Completion is the first choice returned by the upstream.
type Completion struct {
	Content string
	Model   string
	Usage   *Usage
}

// Usage reports token accounting when the upstream provides it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ErrEmptyContent is returned when the upstream answers without any content.
var ErrEmptyContent = errors.New("llm response empty content")

// StatusError is a non-success HTTP answer from the upstream.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s http status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s http status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// StatusCode extracts the upstream HTTP status from err, if any.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// TextMessage builds a single-part text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Parts: []Part{{Text: text}}}
}

// Text returns the concatenated text parts of m.
func (m Message) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Text
	}
	var out string
	for _, p := range m.Parts {
		if p.Document != nil {
			continue
		}
		if out != "" && p.Text != "" {
			out += "\n"
		}
		out += p.Text
	}
	return out
}
