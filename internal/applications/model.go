package applications

import "time"

// Status is the pipeline stage of an application.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusOA        Status = "oa"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusGhosted   Status = "ghosted"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{StatusApplied, StatusOA, StatusInterview, StatusOffer, StatusRejected, StatusGhosted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Application is one tracked internship application.
type Application struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	Location    string     `json:"location,omitempty"`
	Deadline    string     `json:"deadline,omitempty"`
	Status      Status     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	JobURL      string     `json:"job_url,omitempty"`
	SalaryRange string     `json:"salary_range,omitempty"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// activityTime is when the application was sent, falling back to when it was recorded.
func (a Application) activityTime() time.Time {
	if a.AppliedAt != nil {
		return *a.AppliedAt
	}
	return a.CreatedAt
}

// ListFilter narrows List results.
type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}
