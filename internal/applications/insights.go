package applications

// InsightType drives how an insight is presented.
type InsightType string

const (
	InsightInfo    InsightType = "info"
	InsightWarning InsightType = "warning"
	InsightTip     InsightType = "tip"
	InsightSuccess InsightType = "success"
)

// Insight is one piece of advice derived from the application history.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// BuildInsights applies the advice rules in order. At least one insight is always returned.
func BuildInsights(apps []Application) []Insight {
	total := len(apps)
	var rejections, ghosted, interviews int
	for _, a := range apps {
		switch a.Status {
		case StatusRejected:
			rejections++
		case StatusGhosted:
			ghosted++
		case StatusInterview, StatusOffer:
			interviews++
		}
	}
	rejectionRate := percent(rejections, total)
	ghostRate := percent(ghosted, total)

	var out []Insight
	if total < 10 {
		out = append(out, Insight{
			Type:        InsightInfo,
			Title:       "Apply to more positions",
			Description: "Industry data shows that most candidates need 30-50 applications to land an internship. Keep applying!",
		})
	}
	if rejectionRate > 50 && total >= 10 {
		out = append(out, Insight{
			Type:        InsightWarning,
			Title:       "High rejection rate detected",
			Description: "Consider tailoring your resume more specifically to each role. Generic resumes often get filtered out by ATS systems.",
		})
	}
	if ghostRate > 40 && total >= 5 {
		out = append(out, Insight{
			Type:        InsightWarning,
			Title:       "Many applications going unanswered",
			Description: "Try applying through referrals or reaching out to recruiters on LinkedIn. Direct connections improve response rates significantly.",
		})
	}
	if interviews > 0 && float64(interviews)/float64(total) < 0.1 {
		out = append(out, Insight{
			Type:        InsightTip,
			Title:       "Improve your resume keywords",
			Description: "Use the job description to identify key skills and include them naturally in your resume. ATS systems scan for keyword matches.",
		})
	}
	if total >= 20 && interviews >= 3 {
		out = append(out, Insight{
			Type:        InsightSuccess,
			Title:       "Great progress!",
			Description: "You're getting interview callbacks. Focus on practicing behavioral and technical questions for your upcoming interviews.",
		})
	}
	if len(out) == 0 {
		out = append(out, Insight{
			Type:        InsightInfo,
			Title:       "Build your application history",
			Description: "As you add more applications, AI insights will analyze your patterns and provide personalized recommendations.",
		})
	}
	return out
}
