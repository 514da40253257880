package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var (
	jsonFence    = regexp.MustCompile("(?s)```json\\n?(.*?)\\n?```")
	genericFence = regexp.MustCompile("(?s)```\\n?(.*?)\\n?```")
)

// OutcomeKind tells how a model answer was turned into a Result.
type OutcomeKind int

const (
	OutcomeStructured OutcomeKind = iota
	OutcomeFallback
)

func (k OutcomeKind) String() string {
	if k == OutcomeFallback {
		return "fallback"
	}
	return "structured"
}

// ParseOutcome is the repaired model answer. Result is always usable.
type ParseOutcome struct {
	Kind       OutcomeKind
	Result     Result
	Cause      error
	Violations []string
}

// errNotObject is the fallback cause for JSON that is not an object.
var errNotObject = errors.New("analysis payload is not a JSON object")

// StripFences returns the interior of the first ```json block, else of the first
// generic ``` block, else content unchanged. An empty interior yields content.
func StripFences(content string) string {
	m := jsonFence.FindStringSubmatch(content)
	if m == nil {
		m = genericFence.FindStringSubmatch(content)
	}
	if m == nil || m[1] == "" {
		return content
	}
	return m[1]
}

// ParseAnalysis repairs a model answer into a Result. It never fails: anything
// that is not a JSON object becomes the fallback result.
func ParseAnalysis(content string) ParseOutcome {
	payload := StripFences(content)

	var raw any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return fallbackOutcome(content, fmt.Errorf("parse analysis json: %w", err))
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return fallbackOutcome(content, errNotObject)
	}

	violations := validateSchema(payload)
	result, repairs := normalizeResult(obj)
	return ParseOutcome{
		Kind:       OutcomeStructured,
		Result:     result,
		Violations: append(violations, repairs...),
	}
}

// FallbackResult is the neutral answer used when the model output is unusable.
func FallbackResult(content string) Result {
	r := Result{
		MatchScore:  neutralScore,
		Summary:     truncateRunes(content, fallbackSummaryRune),
		Suggestions: []string{fallbackSuggestion},
	}
	r.ensureLists()
	return r
}

func fallbackOutcome(content string, cause error) ParseOutcome {
	return ParseOutcome{Kind: OutcomeFallback, Result: FallbackResult(content), Cause: cause}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
