package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, company, role, location, deadline, status, notes, job_url, salary_range, applied_at, created_at, updated_at`

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
    id,
    user_id,
    company,
    role,
    location,
    deadline,
    status,
    notes,
    job_url,
    salary_range,
    applied_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		app.UserID,
		app.Company,
		app.Role,
		nullString(app.Location),
		nullString(app.Deadline),
		string(app.Status),
		nullString(app.Notes),
		nullString(app.JobURL),
		nullString(app.SalaryRange),
		nullTime(app.AppliedAt),
		app.CreatedAt,
		app.UpdatedAt,
	)
	return err
}

// GetByID fetches an application by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Application, error) {
	query := `
SELECT ` + selectColumns + `
FROM applications
WHERE user_id = $1 AND id = $2
LIMIT 1`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// ListByUser returns applications for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	var b strings.Builder
	b.WriteString("\nSELECT " + selectColumns + "\nFROM applications\nWHERE user_id = $1")
	args := []any{userID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		fmt.Fprintf(&b, " AND status = $%d", len(args))
	}
	b.WriteString("\nORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, "\nLIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// Update writes every mutable column of app.
func (r *PGRepo) Update(ctx context.Context, app Application) error {
	const query = `
UPDATE applications
SET company = $3,
    role = $4,
    location = $5,
    deadline = $6,
    status = $7,
    notes = $8,
    job_url = $9,
    salary_range = $10,
    applied_at = $11,
    updated_at = $12
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(
		ctx,
		query,
		app.UserID,
		app.ID,
		app.Company,
		app.Role,
		nullString(app.Location),
		nullString(app.Deadline),
		string(app.Status),
		nullString(app.Notes),
		nullString(app.JobURL),
		nullString(app.SalaryRange),
		nullTime(app.AppliedAt),
		app.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes an application.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM applications WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var status string
	var location, notes, jobURL, salaryRange sql.NullString
	var deadline, appliedAt sql.NullTime
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.Company,
		&app.Role,
		&location,
		&deadline,
		&status,
		&notes,
		&jobURL,
		&salaryRange,
		&appliedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	app.Status = Status(status)
	app.Location = location.String
	app.Notes = notes.String
	app.JobURL = jobURL.String
	app.SalaryRange = salaryRange.String
	if deadline.Valid {
		app.Deadline = deadline.Time.Format(dateLayout)
	}
	if appliedAt.Valid {
		t := appliedAt.Time
		app.AppliedAt = &t
	}
	return app, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
