package users

import (
	"context"
	"testing"

	"github.com/mpetrov/taskkeeper/internal/client/models"
	"github.com/mpetrov/taskkeeper/internal/client/store"
	"github.com/mpetrov/taskkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *StoreRepository {
	t.Helper()
	return NewStoreRepository(store.NewMemoryStore())
}

func TestCreate_AssignsIDAndCreatedAt(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@x.com", EncodedCredential: "v1:abc"}
	require.NoError(t, r.Create(ctx, u))

	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := r.GetByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "v1:abc", got.EncodedCredential)
}

func TestCreate_DuplicateEmail_NoMutation(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &models.User{Name: "Ada", Email: "ada@x.com", EncodedCredential: "one"}))

	err := r.Create(ctx, &models.User{Name: "Imposter", Email: "ada@x.com", EncodedCredential: "two"})
	require.ErrorIs(t, err, common.ErrConflict)

	// the original record is untouched
	got, err := r.GetByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "one", got.EncodedCredential)
}

func TestGetByID_AndNotFound(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@x.com"}
	require.NoError(t, r.Create(ctx, u))

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", got.Email)

	_, err = r.GetByID(ctx, "missing")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = r.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate_OverwritesRecordKeepsCreatedAt(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@x.com", EncodedCredential: "old"}
	require.NoError(t, r.Create(ctx, u))
	created := u.CreatedAt

	updated := &models.User{ID: u.ID, Name: "Ada L.", Email: "ada@new.com", EncodedCredential: "new"}
	require.NoError(t, r.Update(ctx, updated))

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, "ada@new.com", got.Email)
	assert.Equal(t, "new", got.EncodedCredential)
	assert.Equal(t, created, got.CreatedAt)
}

func TestUpdate_MissingUser(t *testing.T) {
	r := newRepo(t)

	err := r.Update(context.Background(), &models.User{ID: "missing"})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_RemovesAccount(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@x.com"}
	require.NoError(t, r.Create(ctx, u))

	require.NoError(t, r.Delete(ctx, u.ID))
	require.ErrorIs(t, r.Delete(ctx, u.ID), common.ErrNotFound)

	_, err := r.GetByEmail(ctx, "ada@x.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}
