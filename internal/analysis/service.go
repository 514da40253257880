package analysis

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"internship-backend/internal/llm"
	"internship-backend/internal/shared/metrics"
	"internship-backend/internal/shared/telemetry"
)

const logPreviewRunes = 500

// Gateway proxies extraction and match analysis to the model. It keeps no
// per-call state, so one Gateway serves concurrent requests.
type Gateway struct {
	client llm.Client
}

// NewGateway builds a Gateway. A nil client is a configuration error.
func NewGateway(client llm.Client) (*Gateway, error) {
	if client == nil {
		return nil, &Error{Kind: KindConfiguration, Op: "init", Err: errors.New("llm client is nil")}
	}
	return &Gateway{client: client}, nil
}

// ExtractText asks the model for the plain text of a PDF.
func (g *Gateway) ExtractText(ctx context.Context, document []byte) (ExtractedText, error) {
	op := string(ModeExtract)
	if g == nil || g.client == nil {
		return ExtractedText{}, &Error{Kind: KindConfiguration, Op: op}
	}
	if !bytes.HasPrefix(document, []byte(pdfMagic)) {
		return ExtractedText{}, validationError(op, "Payload is not a PDF document")
	}

	fields := g.baseFields(ctx)
	fields["bytes"] = len(document)
	if pages, err := PageCount(document); err != nil {
		fields["pdf_parse_error"] = err
	} else {
		fields["pages"] = pages
	}
	telemetry.Info("extraction.start", fields)
	metrics.IncExtraction()

	completion, err := g.client.Complete(ctx, buildExtractRequest(document))
	if err != nil {
		var ae *Error
		if errors.Is(err, llm.ErrEmptyContent) {
			ae = &Error{Kind: KindEmptyExtraction, Op: op, Err: err}
		} else {
			ae = classify(op, err)
		}
		g.logFailure(ctx, "extraction.failed", ae)
		metrics.IncExtractionFailed()
		return ExtractedText{}, ae
	}

	done := g.baseFields(ctx)
	done["chars"] = len([]rune(completion.Content))
	telemetry.Info("extraction.complete", done)
	return ExtractedText{Text: completion.Content}, nil
}

// AnalyzeMatch compares a resume with a job description and returns the repaired result.
func (g *Gateway) AnalyzeMatch(ctx context.Context, resumeText, jobDescription string) (Result, error) {
	outcome, err := g.Match(ctx, resumeText, jobDescription)
	if err != nil {
		return Result{}, err
	}
	return outcome.Result, nil
}

// Match is AnalyzeMatch with the full parse outcome, for callers that report the repair path.
func (g *Gateway) Match(ctx context.Context, resumeText, jobDescription string) (ParseOutcome, error) {
	op := string(ModeMatch)
	if g == nil || g.client == nil {
		return ParseOutcome{}, &Error{Kind: KindConfiguration, Op: op}
	}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return ParseOutcome{}, validationError(op, "Resume text and job description are required")
	}

	start := time.Now()
	fields := g.baseFields(ctx)
	fields["resume_chars"] = len([]rune(resumeText))
	fields["job_description_chars"] = len([]rune(jobDescription))
	telemetry.Info("analysis.start", fields)
	metrics.IncAnalysisStarted()

	completion, err := g.client.Complete(ctx, buildMatchRequest(resumeText, jobDescription))
	if err != nil {
		var ae *Error
		if errors.Is(err, llm.ErrEmptyContent) {
			ae = &Error{Kind: KindUpstream, Op: op, Detail: msgNoAnalysis, Err: err}
		} else {
			ae = classify(op, err)
		}
		g.logFailure(ctx, "analysis.failed", ae)
		metrics.IncAnalysisFailed()
		return ParseOutcome{}, ae
	}

	outcome := ParseAnalysis(completion.Content)
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveAnalysisDurationMs(durationMs)

	done := g.baseFields(ctx)
	done["match_score"] = outcome.Result.MatchScore
	done["path"] = outcome.Kind.String()
	done["duration_ms"] = durationMs
	if len(outcome.Violations) > 0 {
		done["schema_violations"] = outcome.Violations
	}
	if outcome.Kind == OutcomeFallback {
		metrics.IncAnalysisFallback()
		done["parse_error"] = outcome.Cause
		done["content_preview"] = telemetry.TruncateForLog(completion.Content, logPreviewRunes)
		telemetry.Warn("analysis.complete", done)
	} else {
		telemetry.Info("analysis.complete", done)
	}
	metrics.IncAnalysisCompleted()
	return outcome, nil
}

// classify turns an upstream failure into a typed error using the upstream status, if any.
func classify(op string, err error) *Error {
	var se *llm.StatusError
	if errors.As(err, &se) {
		return &Error{Kind: ClassifyStatus(se.StatusCode), Op: op, Status: se.StatusCode, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindInternal, Op: op, Detail: "request canceled", Err: err}
	}
	return &Error{Kind: KindUpstream, Op: op, Err: err}
}

func (g *Gateway) baseFields(ctx context.Context) map[string]any {
	return map[string]any{
		"request_id": requestIDFromContext(ctx),
		"provider":   g.client.Provider(),
		"model":      g.client.Model(),
	}
}

func (g *Gateway) logFailure(ctx context.Context, msg string, ae *Error) {
	fields := g.baseFields(ctx)
	fields["kind"] = ae.Kind.String()
	fields["status"] = ae.HTTPStatus()
	if ae.Status != 0 {
		fields["upstream_status"] = ae.Status
	}
	if ae.Err != nil {
		fields["error"] = ae.Err
	}
	telemetry.Error(msg, fields)
	metrics.IncAnalysisError(ae.Kind.String())
}
