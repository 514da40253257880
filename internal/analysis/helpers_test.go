package analysis

import (
	"context"
	"sync"

	"internship-backend/internal/llm"
)

type stubClient struct {
	mu       sync.Mutex
	content  string
	err      error
	requests []llm.Request
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (llm.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return llm.Completion{}, s.err
	}
	return llm.Completion{Content: s.content}, nil
}

func (s *stubClient) Provider() string { return "stub" }
func (s *stubClient) Model() string    { return "stub-model" }

func (s *stubClient) lastRequest() llm.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return llm.Request{}
	}
	return s.requests[len(s.requests)-1]
}

func newTestGateway(c *stubClient) *Gateway {
	g, err := NewGateway(c)
	if err != nil {
		panic(err)
	}
	return g
}

var minimalPDF = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
