package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const (
	minScore     = 0
	maxScore     = 100
	neutralScore = 50
)

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(resultSchema))
	})
	return compiledSchema, schemaErr
}

// validateSchema reports where payload deviates from the AnalysisResult schema.
// Deviations are informational; normalizeResult repairs them.
func validateSchema(payload string) []string {
	schema, err := loadSchema()
	if err != nil {
		return []string{fmt.Sprintf("schema unavailable: %v", err)}
	}
	res, err := schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return []string{fmt.Sprintf("schema validation: %v", err)}
	}
	if res.Valid() {
		return nil
	}
	out := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		out = append(out, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return out
}

// normalizeResult coerces a decoded object into a Result, returning what it had to repair.
func normalizeResult(obj map[string]any) (Result, []string) {
	var repairs []string
	note := func(format string, args ...any) {
		repairs = append(repairs, fmt.Sprintf(format, args...))
	}

	score, ok := coerceScore(obj["matchScore"])
	switch {
	case !ok:
		note("matchScore %v replaced with %d", obj["matchScore"], neutralScore)
		score = neutralScore
	case score < minScore || score > maxScore:
		note("matchScore %d clamped", score)
		score = clampScore(score)
	}

	r := Result{
		MatchScore:      score,
		Summary:         coerceString(obj["summary"]),
		Strengths:       coerceStringList("strengths", obj["strengths"], note),
		Weaknesses:      coerceStringList("weaknesses", obj["weaknesses"], note),
		MissingKeywords: coerceStringList("missingKeywords", obj["missingKeywords"], note),
		Suggestions:     coerceStringList("suggestions", obj["suggestions"], note),
		KeySkillsMatch:  coerceSkills(obj["keySkillsMatch"], note),
	}
	r.ensureLists()
	return r, repairs
}

// coerceScore accepts numbers and numeric strings, rounding fractions.
func coerceScore(v any) (int, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		parsed, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Round(f)
	if f > math.MaxInt32 {
		return maxScore + 1, true
	}
	if f < math.MinInt32 {
		return minScore - 1, true
	}
	return int(f), true
}

func clampScore(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func coerceStringList(field string, v any, note func(string, ...any)) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if _, isObj := item.(map[string]any); isObj {
				note("%s: dropped non-string item", field)
				continue
			}
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		note("%s: wrapped string in list", field)
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return []string{}
	default:
		note("%s: dropped %T", field, v)
		return []string{}
	}
}

func coerceSkills(v any, note func(string, ...any)) []SkillMatch {
	items, ok := v.([]any)
	if !ok {
		if v != nil {
			note("keySkillsMatch: dropped %T", v)
		}
		return []SkillMatch{}
	}
	out := make([]SkillMatch, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			note("keySkillsMatch: dropped non-object item")
			continue
		}
		skill := coerceString(m["skill"])
		if skill == "" {
			note("keySkillsMatch: dropped item without skill")
			continue
		}
		status := SkillStatus(strings.ToLower(coerceString(m["status"])))
		switch status {
		case SkillStrong, SkillPartial, SkillMissing:
		default:
			note("keySkillsMatch: %q status %q treated as partial", skill, status)
			status = SkillPartial
		}
		out = append(out, SkillMatch{Skill: skill, Status: status, Note: coerceString(m["note"])})
	}
	return out
}
