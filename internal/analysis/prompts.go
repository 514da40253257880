package analysis

import (
	_ "embed"
	"strings"

	"internship-backend/internal/llm"
)

var (
	//go:embed prompts/match_system.txt
	matchSystemPrompt string
	//go:embed prompts/extract_pdf.txt
	extractPrompt string
	//go:embed prompts/result.schema.json
	resultSchema string
)

const pdfMIMEType = "application/pdf"

// buildExtractRequest asks the model to transcribe the attached PDF.
func buildExtractRequest(document []byte) llm.Request {
	return llm.Request{Messages: []llm.Message{{
		Role: llm.RoleUser,
		Parts: []llm.Part{
			{Text: extractPrompt},
			{Document: &llm.Document{MIMEType: pdfMIMEType, Data: document}},
		},
	}}}
}

// buildMatchRequest pairs the fixed system instruction with the resume and job description.
func buildMatchRequest(resumeText, jobDescription string) llm.Request {
	var b strings.Builder
	b.WriteString("## Resume:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\n## Job Description:\n")
	b.WriteString(jobDescription)
	return llm.Request{Messages: []llm.Message{
		llm.TextMessage(llm.RoleSystem, strings.TrimSpace(matchSystemPrompt)),
		llm.TextMessage(llm.RoleUser, b.String()),
	}}
}
