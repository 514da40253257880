package applications

import (
	"math"
	"sort"
	"time"
)

const (
	monthBuckets = 6
	recentCount  = 5
)

// MonthBucket counts applications sent in one calendar month.
type MonthBucket struct {
	Month     string `json:"month"`
	Label     string `json:"label"`
	Applied   int    `json:"applied"`
	Responses int    `json:"responses"`
}

// Analytics is the funnel overview shown on the dashboard.
type Analytics struct {
	Total            int            `json:"total"`
	StatusCounts     map[Status]int `json:"statusCounts"`
	ResponseRate     int            `json:"responseRate"`
	InterviewRate    int            `json:"interviewRate"`
	OfferRate        int            `json:"offerRate"`
	ThisWeek         int            `json:"thisWeek"`
	PendingResponses int            `json:"pendingResponses"`
	ActiveInterviews int            `json:"activeInterviews"`
	Monthly          []MonthBucket  `json:"monthly"`
	Recent           []Application  `json:"recent"`
}

// ComputeAnalytics derives the overview from apps as of now. Rates are rounded percentages.
func ComputeAnalytics(apps []Application, now time.Time) Analytics {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, a := range apps {
		counts[a.Status]++
	}
	total := len(apps)

	out := Analytics{
		Total:            total,
		StatusCounts:     counts,
		ResponseRate:     percent(counts[StatusOA]+counts[StatusInterview]+counts[StatusOffer], total),
		InterviewRate:    percent(counts[StatusInterview]+counts[StatusOffer], total),
		OfferRate:        percent(counts[StatusOffer], total),
		PendingResponses: counts[StatusApplied] + counts[StatusOA],
		ActiveInterviews: counts[StatusInterview],
		Monthly:          monthly(apps, now),
		Recent:           recent(apps),
	}

	weekAgo := now.AddDate(0, 0, -7)
	for _, a := range apps {
		if !a.activityTime().Before(weekAgo) {
			out.ThisWeek++
		}
	}
	return out
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func isResponse(s Status) bool {
	return s == StatusOA || s == StatusInterview || s == StatusOffer
}

// monthly returns the last six calendar months, oldest first, including empty months.
func monthly(apps []Application, now time.Time) []MonthBucket {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthBuckets - 1), 0)

	buckets := make([]MonthBucket, monthBuckets)
	index := make(map[string]int, monthBuckets)
	for i := range buckets {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		buckets[i] = MonthBucket{Month: key, Label: m.Format("Jan")}
		index[key] = i
	}
	for _, a := range apps {
		i, ok := index[a.activityTime().UTC().Format("2006-01")]
		if !ok {
			continue
		}
		buckets[i].Applied++
		if isResponse(a.Status) {
			buckets[i].Responses++
		}
	}
	return buckets
}

func recent(apps []Application) []Application {
	sorted := make([]Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentCount {
		sorted = sorted[:recentCount]
	}
	return sorted
}
