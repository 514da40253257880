package analysis

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies gateway failures.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConfiguration
	KindRateLimited
	KindQuotaExhausted
	KindUpstream
	KindEmptyExtraction
)

const (
	msgNotConfigured    = "AI service not configured"
	msgRateLimited      = "Rate limit exceeded. Please try again later."
	msgQuotaExhausted   = "AI credits exhausted. Please add credits to continue."
	msgAnalysisFailed   = "AI analysis failed"
	msgExtractFailed    = "Failed to extract text from PDF"
	msgNoAnalysis       = "Failed to generate analysis"
	msgEmptyExtraction  = "Could not extract text from PDF"
	msgUnknown          = "Unknown error"
	fallbackSuggestion  = "Unable to parse detailed analysis. Please try again."
	fallbackSummaryRune = 200
)

// String returns the stable error code sent to clients.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindConfiguration:
		return "not_configured"
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExhausted:
		return "quota_exhausted"
	case KindUpstream:
		return "upstream_error"
	case KindEmptyExtraction:
		return "empty_extraction"
	default:
		return "internal_error"
	}
}

// HTTPStatus maps a kind to the response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindEmptyExtraction:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindQuotaExhausted:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// ClassifyStatus maps an upstream HTTP status to a Kind.
func ClassifyStatus(status int) Kind {
	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusPaymentRequired:
		return KindQuotaExhausted
	default:
		return KindUpstream
	}
}

// Error is a classified gateway failure.
// Detail is safe to return to clients; Err and Status stay in logs.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.PublicMessage()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (upstream status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("analysis %s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("analysis %s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus is the status the handler responds with.
func (e *Error) HTTPStatus() int { return e.Kind.HTTPStatus() }

// PublicMessage is the client-facing message for e.
func (e *Error) PublicMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	switch e.Kind {
	case KindConfiguration:
		return msgNotConfigured
	case KindRateLimited:
		return msgRateLimited
	case KindQuotaExhausted:
		return msgQuotaExhausted
	case KindEmptyExtraction:
		return msgEmptyExtraction
	case KindUpstream:
		if e.Op == string(ModeExtract) {
			return msgExtractFailed
		}
		return msgAnalysisFailed
	case KindValidation:
		return "invalid request"
	default:
		if e.Err != nil && e.Err.Error() != "" {
			return e.Err.Error()
		}
		return msgUnknown
	}
}

// AsError returns err as *Error, wrapping anything unclassified as KindInternal.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: KindInternal, Err: err}
}

func validationError(op, detail string) *Error {
	return &Error{Kind: KindValidation, Op: op, Detail: detail}
}
