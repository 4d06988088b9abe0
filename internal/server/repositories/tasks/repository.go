package tasks

import (
	"context"

	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/server/models"
)

// Repository persists tasks. Every operation is scoped to the owning user:
// a task id belonging to someone else behaves exactly like a missing id.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	List(ctx context.Context, userID string, filter api.Filter) ([]models.Task, error)
	GetByID(ctx context.Context, userID, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
	CountByStatus(ctx context.Context, userID string) (api.Stats, error)
}
