// Package backend defines the operation surface shared by every client
// backend. The remote implementation talks to the REST API; the local one
// works against the offline store; the dispatcher routes between the two.
package backend

import (
	"context"

	"github.com/mpetrov/taskkeeper/internal/api"
)

// Backend is the full client-side API: authentication, profile maintenance
// and task CRUD. Operations that need an authenticated identity return
// common.ErrUnauthorized when no login is active.
type Backend interface {
	Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, patch api.UpdateProfileRequest) (*api.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context) error

	ListTasks(ctx context.Context, filter api.Filter) ([]api.Task, error)
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error)
	GetTask(ctx context.Context, id string) (*api.Task, error)
	UpdateTask(ctx context.Context, id string, patch api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(ctx context.Context, id string) error
	TaskStats(ctx context.Context) (api.Stats, error)

	// Ping reports whether the backend is reachable. The local backend
	// always is; the remote one probes the server's health endpoint.
	Ping(ctx context.Context) error
}
