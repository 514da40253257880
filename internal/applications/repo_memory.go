package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Application // userID -> id -> application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]map[string]Application),
	}
}

// Create stores a new application.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps, ok := r.data[app.UserID]
	if !ok {
		apps = make(map[string]Application)
		r.data[app.UserID] = apps
	}
	apps[app.ID] = app
	return nil
}

// GetByID returns an application by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.data[userID][id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

// ListByUser returns applications for a user, newest first, honoring the filter.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]Application, 0, len(r.data[userID]))
	for _, app := range r.data[userID] {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		out = append(out, app)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []Application{}, nil
	}
	end := len(out)
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return out[offset:end], nil
}

// Update replaces a stored application.
func (r *MemoryRepo) Update(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := r.data[app.UserID]
	if _, ok := apps[app.ID]; !ok {
		return ErrNotFound
	}
	apps[app.ID] = app
	return nil
}

// Delete removes an application.
func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := r.data[userID]
	if _, ok := apps[id]; !ok {
		return ErrNotFound
	}
	delete(apps, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
