package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"internship-backend/internal/shared/telemetry"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Service contains business logic for applications.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service backed by repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

// Create validates and stores a new application for userID.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Application, error) {
	if userID == "" {
		return Application{}, errors.New("userID is required")
	}
	req.Company = strings.TrimSpace(req.Company)
	req.Role = strings.TrimSpace(req.Role)
	req.Deadline = strings.TrimSpace(req.Deadline)
	req.JobURL = strings.TrimSpace(req.JobURL)
	if err := validateStruct(req); err != nil {
		return Application{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusApplied
	}
	now := s.now()
	app := Application{
		ID:          uuid.NewString(),
		UserID:      userID,
		Company:     req.Company,
		Role:        req.Role,
		Location:    strings.TrimSpace(req.Location),
		Deadline:    req.Deadline,
		Status:      status,
		Notes:       req.Notes,
		JobURL:      req.JobURL,
		SalaryRange: strings.TrimSpace(req.SalaryRange),
		AppliedAt:   req.AppliedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	telemetry.Info("application.created", map[string]any{
		"user_id":        userID,
		"application_id": app.ID,
		"status":         string(app.Status),
	})
	return app, nil
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, userID, id string) (Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Application{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's applications newest first.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, &ValidationError{Fields: []FieldError{{Field: "status", Issue: "oneof"}}}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.Repo.ListByUser(ctx, userID, filter)
}

// Update applies a partial update and returns the stored application.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (Application, error) {
	req.Company = trimPtr(req.Company)
	req.Role = trimPtr(req.Role)
	req.Deadline = trimPtr(req.Deadline)
	req.JobURL = trimPtr(req.JobURL)
	if err := validateStruct(req); err != nil {
		return Application{}, err
	}

	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return Application{}, err
	}
	prevStatus := app.Status

	if req.Company != nil {
		app.Company = *req.Company
	}
	if req.Role != nil {
		app.Role = *req.Role
	}
	if req.Location != nil {
		app.Location = strings.TrimSpace(*req.Location)
	}
	if req.Deadline != nil {
		app.Deadline = *req.Deadline
	}
	if req.Status != nil {
		app.Status = *req.Status
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	if req.JobURL != nil {
		app.JobURL = *req.JobURL
	}
	if req.SalaryRange != nil {
		app.SalaryRange = strings.TrimSpace(*req.SalaryRange)
	}
	if req.AppliedAt != nil {
		app.AppliedAt = req.AppliedAt
	}
	app.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	if prevStatus != app.Status {
		telemetry.Info("application.status_changed", map[string]any{
			"user_id":        userID,
			"application_id": app.ID,
			"from":           string(prevStatus),
			"to":             string(app.Status),
		})
	}
	return app, nil
}

// Delete removes one application.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, id)
}

// Analytics summarizes every application of the user.
func (s *Service) Analytics(ctx context.Context, userID string) (Analytics, error) {
	apps, err := s.Repo.ListByUser(ctx, userID, ListFilter{})
	if err != nil {
		return Analytics{}, err
	}
	return ComputeAnalytics(apps, s.now()), nil
}

// Insights returns rule-based advice for the user's application history.
func (s *Service) Insights(ctx context.Context, userID string) ([]Insight, error) {
	apps, err := s.Repo.ListByUser(ctx, userID, ListFilter{})
	if err != nil {
		return nil, err
	}
	return BuildInsights(apps), nil
}
