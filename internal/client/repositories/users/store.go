package users

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mpetrov/taskkeeper/internal/client/models"
	"github.com/mpetrov/taskkeeper/internal/client/store"
	"github.com/mpetrov/taskkeeper/internal/common"
)

// StoreRepository keeps all accounts as a single JSON array in the "users"
// collection.
type StoreRepository struct {
	store store.Store
}

func NewStoreRepository(s store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) loadAll(ctx context.Context) ([]models.User, error) {
	data, err := r.store.Load(ctx, store.CollectionUsers)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users collection: %w", err)
	}
	return users, nil
}

func (r *StoreRepository) saveAll(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users collection: %w", err)
	}
	return r.store.Save(ctx, store.CollectionUsers, data)
}

// Create registers a new account. The email must be unique among local
// accounts; on conflict nothing is written and common.ErrConflict is
// returned.
func (r *StoreRepository) Create(ctx context.Context, user *models.User) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Email == user.Email {
			return common.ErrConflict
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	users = append(users, *user)
	return r.saveAll(ctx, users)
}

func (r *StoreRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *StoreRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

// Update overwrites the stored record matching user.ID.
func (r *StoreRepository) Update(ctx context.Context, user *models.User) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].ID == user.ID {
			user.CreatedAt = users[i].CreatedAt
			users[i] = *user
			return r.saveAll(ctx, users)
		}
	}
	return common.ErrNotFound
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].ID == id {
			users = append(users[:i], users[i+1:]...)
			return r.saveAll(ctx, users)
		}
	}
	return common.ErrNotFound
}
