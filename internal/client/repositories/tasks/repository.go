// Package tasks implements the CLI's local task repository on top of the
// offline collection store.
package tasks

import (
	"context"

	"github.com/mpetrov/taskkeeper/internal/api"
)

// Repository provides CRUD access to locally stored tasks. All reads and
// writes are scoped to a single owner; a task belonging to another user is
// indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, task *api.Task) error
	List(ctx context.Context, userID string, filter api.Filter) ([]api.Task, error)
	GetByID(ctx context.Context, userID string, id string) (*api.Task, error)
	Update(ctx context.Context, task *api.Task) error
	Delete(ctx context.Context, userID string, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	CountByStatus(ctx context.Context, userID string) (api.Stats, error)
}
