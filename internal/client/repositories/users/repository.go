// Package users implements the CLI's local account repository on top of the
// offline collection store.
package users

import (
	"context"

	"github.com/mpetrov/taskkeeper/internal/client/models"
)

// Repository provides access to locally registered accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
