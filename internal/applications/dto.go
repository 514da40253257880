package applications

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// CreateRequest is the body for creating an application.
type CreateRequest struct {
	Company     string     `json:"company" validate:"required,max=100"`
	Role        string     `json:"role" validate:"required,max=100"`
	Location    string     `json:"location" validate:"omitempty,max=100"`
	Deadline    string     `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Status      Status     `json:"status" validate:"omitempty,oneof=applied oa interview offer rejected ghosted"`
	Notes       string     `json:"notes" validate:"omitempty,max=1000"`
	JobURL      string     `json:"job_url" validate:"omitempty,url,max=2048"`
	SalaryRange string     `json:"salary_range" validate:"omitempty,max=50"`
	AppliedAt   *time.Time `json:"applied_at"`
}

// UpdateRequest is a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Company     *string    `json:"company" validate:"omitnil,min=1,max=100"`
	Role        *string    `json:"role" validate:"omitnil,min=1,max=100"`
	Location    *string    `json:"location" validate:"omitempty,max=100"`
	Deadline    *string    `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Status      *Status    `json:"status" validate:"omitempty,oneof=applied oa interview offer rejected ghosted"`
	Notes       *string    `json:"notes" validate:"omitempty,max=1000"`
	JobURL      *string    `json:"job_url" validate:"omitempty,url,max=2048"`
	SalaryRange *string    `json:"salary_range" validate:"omitempty,max=50"`
	AppliedAt   *time.Time `json:"applied_at"`
}

// FieldError names one invalid request field.
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationError carries per-field failures and matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Issue)
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: jsonFieldName(fe.Field()), Issue: fe.Tag()})
	}
	return out
}

func jsonFieldName(goName string) string {
	switch goName {
	case "JobURL":
		return "job_url"
	case "SalaryRange":
		return "salary_range"
	case "AppliedAt":
		return "applied_at"
	default:
		return strings.ToLower(goName)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
