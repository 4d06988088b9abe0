// Package dispatcher routes every client operation to the remote backend
// when the server is reachable and to the local one otherwise.
//
// Reachability is decided by probing the server's health endpoint on first
// use and caching the outcome. The cache is not permanent: a run of
// consecutive transport failures from the remote backend invalidates it, so
// the next operation probes again instead of failing forever against a
// server that went away mid-session.
package dispatcher

import (
	"context"
	"errors"
	"sync"

	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/client/backend"
	"github.com/mpetrov/taskkeeper/internal/common"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// failureThreshold is how many consecutive remote transport failures it
// takes before the cached probe result is discarded.
const failureThreshold = 3

type Dispatcher struct {
	remote backend.Backend
	local  backend.Backend

	mu       sync.Mutex
	mode     Mode
	failures int
}

func New(remote, local backend.Backend) *Dispatcher {
	return &Dispatcher{remote: remote, local: local}
}

// Mode reports the cached routing decision without probing.
func (d *Dispatcher) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Probe discards the cached state, probes the server, and returns the fresh
// mode. The CLI's status watcher calls this periodically.
func (d *Dispatcher) Probe(ctx context.Context) Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.probeLocked(ctx)
	return d.mode
}

func (d *Dispatcher) probeLocked(ctx context.Context) {
	if err := d.remote.Ping(ctx); err != nil {
		d.mode = ModeOffline
	} else {
		d.mode = ModeOnline
	}
	d.failures = 0
}

// pick returns the backend for the next operation, probing if no decision
// is cached yet.
func (d *Dispatcher) pick(ctx context.Context) backend.Backend {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.mode == ModeUnknown {
		d.probeLocked(ctx)
	}
	if d.mode == ModeOnline {
		return d.remote
	}
	return d.local
}

// observe tracks transport failures from the remote backend. Errors from the
// local backend, and domain errors from either, leave the cache alone.
func (d *Dispatcher) observe(b backend.Backend, err error) {
	if b != d.remote {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil && errors.Is(err, common.ErrUnavailable) {
		d.failures++
		if d.failures >= failureThreshold {
			d.mode = ModeUnknown
			d.failures = 0
		}
		return
	}
	d.failures = 0
}

func call[T any](ctx context.Context, d *Dispatcher, op func(backend.Backend) (T, error)) (T, error) {
	b := d.pick(ctx)
	v, err := op(b)
	d.observe(b, err)
	return v, err
}

func callErr(ctx context.Context, d *Dispatcher, op func(backend.Backend) error) error {
	b := d.pick(ctx)
	err := op(b)
	d.observe(b, err)
	return err
}

func (d *Dispatcher) Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	return call(ctx, d, func(b backend.Backend) (*api.AuthResponse, error) {
		return b.Signup(ctx, name, email, password)
	})
}

func (d *Dispatcher) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return call(ctx, d, func(b backend.Backend) (*api.AuthResponse, error) {
		return b.Login(ctx, email, password)
	})
}

func (d *Dispatcher) Logout(ctx context.Context) error {
	return callErr(ctx, d, func(b backend.Backend) error { return b.Logout(ctx) })
}

func (d *Dispatcher) Me(ctx context.Context) (*api.User, error) {
	return call(ctx, d, func(b backend.Backend) (*api.User, error) { return b.Me(ctx) })
}

func (d *Dispatcher) UpdateProfile(ctx context.Context, patch api.UpdateProfileRequest) (*api.User, error) {
	return call(ctx, d, func(b backend.Backend) (*api.User, error) { return b.UpdateProfile(ctx, patch) })
}

func (d *Dispatcher) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return callErr(ctx, d, func(b backend.Backend) error {
		return b.ChangePassword(ctx, currentPassword, newPassword)
	})
}

func (d *Dispatcher) DeleteAccount(ctx context.Context) error {
	return callErr(ctx, d, func(b backend.Backend) error { return b.DeleteAccount(ctx) })
}

func (d *Dispatcher) ListTasks(ctx context.Context, filter api.Filter) ([]api.Task, error) {
	return call(ctx, d, func(b backend.Backend) ([]api.Task, error) { return b.ListTasks(ctx, filter) })
}

func (d *Dispatcher) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	return call(ctx, d, func(b backend.Backend) (*api.Task, error) { return b.CreateTask(ctx, req) })
}

func (d *Dispatcher) GetTask(ctx context.Context, id string) (*api.Task, error) {
	return call(ctx, d, func(b backend.Backend) (*api.Task, error) { return b.GetTask(ctx, id) })
}

func (d *Dispatcher) UpdateTask(ctx context.Context, id string, patch api.UpdateTaskRequest) (*api.Task, error) {
	return call(ctx, d, func(b backend.Backend) (*api.Task, error) { return b.UpdateTask(ctx, id, patch) })
}

func (d *Dispatcher) DeleteTask(ctx context.Context, id string) error {
	return callErr(ctx, d, func(b backend.Backend) error { return b.DeleteTask(ctx, id) })
}

func (d *Dispatcher) TaskStats(ctx context.Context) (api.Stats, error) {
	return call(ctx, d, func(b backend.Backend) (api.Stats, error) { return b.TaskStats(ctx) })
}

// Ping reports reachability of whichever backend is currently selected.
func (d *Dispatcher) Ping(ctx context.Context) error {
	return callErr(ctx, d, func(b backend.Backend) error { return b.Ping(ctx) })
}
