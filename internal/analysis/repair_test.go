package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "json fence", content: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "json fence without newlines", content: "```json{\"a\":1}```", want: `{"a":1}`},
		{name: "generic fence", content: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around fence", content: "Here you go:\n```json\n{\"a\":1}\n```\nThanks", want: `{"a":1}`},
		{name: "json fence preferred over earlier generic", content: "```\nnotes\n```\n```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "first json fence wins", content: "```json\n{\"a\":1}\n```\n```json\n{\"a\":2}\n```", want: `{"a":1}`},
		{name: "no fence", content: `{"a":1}`, want: `{"a":1}`},
		{name: "empty interior falls back to raw", content: "``````", want: "``````"},
		{name: "unterminated fence", content: "```json\n{\"a\":1}", want: "```json\n{\"a\":1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.content))
		})
	}
}

func TestStripFencesOnlyOnce(t *testing.T) {
	payload := `{"a":1}`
	stripped := StripFences("```json\n" + payload + "\n```")
	assert.Equal(t, payload, stripped)
	assert.Equal(t, stripped, StripFences(stripped))

	// A doubly fenced answer is not unwrapped twice; it degrades to the fallback.
	double := "```\n```\n" + payload + "\n```\n```"
	assert.NotEqual(t, payload, StripFences(double))
	assert.Equal(t, OutcomeFallback, ParseAnalysis(double).Kind)
}

func TestParseAnalysisStructured(t *testing.T) {
	content := "```json\n" + `{
  "matchScore": 82,
  "summary": "Strong backend fit.",
  "strengths": ["Go", "PostgreSQL"],
  "weaknesses": ["No cloud experience"],
  "missingKeywords": ["AWS"],
  "suggestions": ["Add a cloud project"],
  "keySkillsMatch": [{"skill": "Go", "status": "strong", "note": "3 projects"}]
}` + "\n```"

	out := ParseAnalysis(content)
	require.Equal(t, OutcomeStructured, out.Kind)
	assert.NoError(t, out.Cause)
	assert.Empty(t, out.Violations)
	assert.Equal(t, 82, out.Result.MatchScore)
	assert.Equal(t, "Strong backend fit.", out.Result.Summary)
	assert.Equal(t, []string{"AWS"}, out.Result.MissingKeywords)
	require.Len(t, out.Result.KeySkillsMatch, 1)
	assert.Equal(t, SkillStrong, out.Result.KeySkillsMatch[0].Status)
}

func TestParseAnalysisFallbackIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"I'm sorry, I can't help with that.",
		"```json\n{not json}\n```",
		"null",
		"[1,2,3]",
		"42",
		`"just a string"`,
		"{\"matchScore\": 90",
		"```\n\n```",
		strings.Repeat("é", 500),
	}
	for _, in := range inputs {
		out := ParseAnalysis(in)
		require.Equal(t, OutcomeFallback, out.Kind, "input %q", in)
		assert.Error(t, out.Cause)
		r := out.Result
		assert.Equal(t, 50, r.MatchScore)
		assert.Equal(t, []string{"Unable to parse detailed analysis. Please try again."}, r.Suggestions)
		assert.NotNil(t, r.Strengths)
		assert.NotNil(t, r.Weaknesses)
		assert.NotNil(t, r.MissingKeywords)
		assert.NotNil(t, r.KeySkillsMatch)
		assert.LessOrEqual(t, len([]rune(r.Summary)), 200)
	}
}

func TestFallbackSummaryIsPrefixOfRawContent(t *testing.T) {
	content := strings.Repeat("abcdefghij", 30)
	r := FallbackResult(content)
	assert.Equal(t, content[:200], r.Summary)

	short := "model said no"
	assert.Equal(t, short, FallbackResult(short).Summary)

	multibyte := strings.Repeat("日本", 150)
	assert.Equal(t, string([]rune(multibyte)[:200]), FallbackResult(multibyte).Summary)
}
