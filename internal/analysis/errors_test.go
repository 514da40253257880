package analysis

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{status: 429, want: KindRateLimited},
		{status: 402, want: KindQuotaExhausted},
		{status: 400, want: KindUpstream},
		{status: 401, want: KindUpstream},
		{status: 500, want: KindUpstream},
		{status: 503, want: KindUpstream},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStatus(tt.status), "status %d", tt.status)
	}
}

func TestErrorResponseMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		status  int
		message string
	}{
		{name: "validation", err: validationError("match", "Resume text and job description are required"), status: 400, message: "Resume text and job description are required"},
		{name: "configuration", err: &Error{Kind: KindConfiguration}, status: 500, message: "AI service not configured"},
		{name: "rate limited", err: &Error{Kind: KindRateLimited, Status: 429}, status: 429, message: "Rate limit exceeded. Please try again later."},
		{name: "quota", err: &Error{Kind: KindQuotaExhausted, Status: 402}, status: 402, message: "AI credits exhausted. Please add credits to continue."},
		{name: "upstream match", err: &Error{Kind: KindUpstream, Op: "match", Status: 500}, status: 500, message: "AI analysis failed"},
		{name: "upstream extract", err: &Error{Kind: KindUpstream, Op: "extract", Status: 503}, status: 500, message: "Failed to extract text from PDF"},
		{name: "no analysis", err: &Error{Kind: KindUpstream, Op: "match", Detail: "Failed to generate analysis"}, status: 500, message: "Failed to generate analysis"},
		{name: "empty extraction", err: &Error{Kind: KindEmptyExtraction, Op: "extract"}, status: 400, message: "Could not extract text from PDF"},
		{name: "internal", err: &Error{Kind: KindInternal, Err: errors.New("boom")}, status: 500, message: "boom"},
		{name: "internal unknown", err: &Error{Kind: KindInternal}, status: 500, message: "Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
			assert.Equal(t, tt.message, tt.err.PublicMessage())
		})
	}
}

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := error(&Error{Kind: KindUpstream, Op: "match", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "dial tcp")

	ae := AsError(err)
	assert.Equal(t, KindUpstream, ae.Kind)

	wrapped := AsError(errors.New("plain"))
	assert.Equal(t, KindInternal, wrapped.Kind)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus())
	assert.Nil(t, AsError(nil))
}
