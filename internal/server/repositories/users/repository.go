package users

import (
	"context"

	"github.com/mpetrov/taskkeeper/internal/server/models"
)

// Repository persists user accounts. Email uniqueness is enforced at this
// layer: Create returns common.ErrConflict for a duplicate email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
