package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusCodeUnwraps(t *testing.T) {
	err := fmt.Errorf("analyze: %w", &StatusError{Provider: "gateway", StatusCode: 429, Body: "slow down"})
	code, ok := StatusCode(err)
	if !ok || code != 429 {
		t.Fatalf("expected 429, got %d (ok=%v)", code, ok)
	}
	if _, ok := StatusCode(errors.New("plain")); ok {
		t.Fatalf("expected no status for plain error")
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Provider: "gateway", StatusCode: 500}
	if err.Error() != "gateway http status 500" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestMessageText(t *testing.T) {
	m := Message{Role: RoleUser, Parts: []Part{
		{Text: "first"},
		{Document: &Document{MIMEType: "application/pdf", Data: []byte("%PDF-")}},
		{Text: "second"},
	}}
	if got := m.Text(); got != "first\nsecond" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := TextMessage(RoleSystem, "only").Text(); got != "only" {
		t.Fatalf("unexpected text %q", got)
	}
}
