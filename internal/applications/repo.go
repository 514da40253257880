package applications

import "context"

// Repo defines persistence operations for applications. Every call is scoped to a user.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, userID, id string) (Application, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Application, error)
	Update(ctx context.Context, app Application) error
	Delete(ctx context.Context, userID, id string) error
}
