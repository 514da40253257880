package analysis

import (
	"strings"
)

// ActionParsePDF selects text extraction when sent with a PDF payload.
const ActionParsePDF = "parse-pdf"

// Mode identifies which operation a request asks for.
type Mode string

const (
	ModeExtract Mode = "extract"
	ModeMatch   Mode = "match"
)

// SkillStatus grades how well the resume covers a skill.
type SkillStatus string

const (
	SkillStrong  SkillStatus = "strong"
	SkillPartial SkillStatus = "partial"
	SkillMissing SkillStatus = "missing"
)

// Request is the JSON body accepted by the analyze endpoint.
type Request struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	PDFBase64      string `json:"pdfBase64"`
	Action         string `json:"action"`
}

// Mode reports the requested operation. The PDF path wins when both are present.
func (r Request) Mode() (Mode, error) {
	if r.Action == ActionParsePDF && r.PDFBase64 != "" {
		return ModeExtract, nil
	}
	if strings.TrimSpace(r.ResumeText) == "" || strings.TrimSpace(r.JobDescription) == "" {
		return "", validationError(string(ModeMatch), "Resume text and job description are required")
	}
	return ModeMatch, nil
}

// SkillMatch is one graded skill from the job description.
type SkillMatch struct {
	Skill  string      `json:"skill"`
	Status SkillStatus `json:"status"`
	Note   string      `json:"note"`
}

// Result is the structured match analysis.
type Result struct {
	MatchScore      int          `json:"matchScore"`
	Summary         string       `json:"summary"`
	Strengths       []string     `json:"strengths"`
	Weaknesses      []string     `json:"weaknesses"`
	MissingKeywords []string     `json:"missingKeywords"`
	Suggestions     []string     `json:"suggestions"`
	KeySkillsMatch  []SkillMatch `json:"keySkillsMatch"`
}

// ensureLists replaces nil slices so they serialize as [].
func (r *Result) ensureLists() {
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Weaknesses == nil {
		r.Weaknesses = []string{}
	}
	if r.MissingKeywords == nil {
		r.MissingKeywords = []string{}
	}
	if r.Suggestions == nil {
		r.Suggestions = []string{}
	}
	if r.KeySkillsMatch == nil {
		r.KeySkillsMatch = []SkillMatch{}
	}
}

// ExtractedText is the response body of a parse-pdf request.
type ExtractedText struct {
	Text string `json:"text"`
}
