package dispatcher

import (
	"context"
	"testing"

	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend counts calls and returns canned results.
type fakeBackend struct {
	name      string
	pingErr   error
	pings     int
	listErr   error
	listCalls int
}

func (f *fakeBackend) Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	return &api.AuthResponse{User: api.User{Name: f.name}}, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return &api.AuthResponse{User: api.User{Name: f.name}}, nil
}

func (f *fakeBackend) Logout(ctx context.Context) error { return nil }

func (f *fakeBackend) Me(ctx context.Context) (*api.User, error) {
	return &api.User{Name: f.name}, nil
}

func (f *fakeBackend) UpdateProfile(ctx context.Context, patch api.UpdateProfileRequest) (*api.User, error) {
	return &api.User{Name: f.name}, nil
}

func (f *fakeBackend) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return nil
}

func (f *fakeBackend) DeleteAccount(ctx context.Context) error { return nil }

func (f *fakeBackend) ListTasks(ctx context.Context, filter api.Filter) ([]api.Task, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []api.Task{{Title: f.name}}, nil
}

func (f *fakeBackend) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	return &api.Task{Title: f.name}, nil
}

func (f *fakeBackend) GetTask(ctx context.Context, id string) (*api.Task, error) {
	return &api.Task{Title: f.name}, nil
}

func (f *fakeBackend) UpdateTask(ctx context.Context, id string, patch api.UpdateTaskRequest) (*api.Task, error) {
	return &api.Task{Title: f.name}, nil
}

func (f *fakeBackend) DeleteTask(ctx context.Context, id string) error { return nil }

func (f *fakeBackend) TaskStats(ctx context.Context) (api.Stats, error) {
	return api.Stats{}, nil
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	f.pings++
	return f.pingErr
}

func TestRoutesToRemoteWhenReachable(t *testing.T) {
	remote := &fakeBackend{name: "remote"}
	local := &fakeBackend{name: "local"}
	d := New(remote, local)

	tasks, err := d.ListTasks(context.Background(), api.Filter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "remote", tasks[0].Title)
	assert.Equal(t, ModeOnline, d.Mode())
	assert.Zero(t, local.listCalls)
}

func TestRoutesToLocalWhenProbeFails(t *testing.T) {
	remote := &fakeBackend{name: "remote", pingErr: common.ErrUnavailable}
	local := &fakeBackend{name: "local"}
	d := New(remote, local)

	tasks, err := d.ListTasks(context.Background(), api.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "local", tasks[0].Title)
	assert.Equal(t, ModeOffline, d.Mode())
	assert.Zero(t, remote.listCalls)
}

func TestProbeResultIsCached(t *testing.T) {
	remote := &fakeBackend{name: "remote"}
	local := &fakeBackend{name: "local"}
	d := New(remote, local)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := d.ListTasks(ctx, api.Filter{})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, remote.pings, "only the first operation probes")
}

func TestReprobesAfterConsecutiveRemoteFailures(t *testing.T) {
	remote := &fakeBackend{name: "remote", listErr: common.ErrUnavailable}
	local := &fakeBackend{name: "local"}
	d := New(remote, local)
	ctx := context.Background()

	// first probe succeeds, so calls route to the remote backend
	for i := 0; i < failureThreshold; i++ {
		_, err := d.ListTasks(ctx, api.Filter{})
		require.ErrorIs(t, err, common.ErrUnavailable)
	}

	// threshold reached: the cache is invalidated
	assert.Equal(t, ModeUnknown, d.Mode())

	// the server is gone now, so the re-probe lands on the local backend
	remote.pingErr = common.ErrUnavailable
	tasks, err := d.ListTasks(ctx, api.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "local", tasks[0].Title)
	assert.Equal(t, ModeOffline, d.Mode())
}

func TestDomainErrorsDoNotInvalidateCache(t *testing.T) {
	remote := &fakeBackend{name: "remote", listErr: common.ErrUnauthorized}
	local := &fakeBackend{name: "local"}
	d := New(remote, local)
	ctx := context.Background()

	for i := 0; i < failureThreshold+2; i++ {
		_, err := d.ListTasks(ctx, api.Filter{})
		require.ErrorIs(t, err, common.ErrUnauthorized)
	}
	assert.Equal(t, ModeOnline, d.Mode())
	assert.Equal(t, 1, remote.pings)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	remote := &fakeBackend{name: "remote"}
	local := &fakeBackend{name: "local"}
	d := New(remote, local)
	ctx := context.Background()

	// two failures, then a success, then two more failures: never hits the
	// threshold of three consecutive ones
	remote.listErr = common.ErrUnavailable
	for i := 0; i < failureThreshold-1; i++ {
		_, _ = d.ListTasks(ctx, api.Filter{})
	}
	remote.listErr = nil
	_, err := d.ListTasks(ctx, api.Filter{})
	require.NoError(t, err)

	remote.listErr = common.ErrUnavailable
	for i := 0; i < failureThreshold-1; i++ {
		_, _ = d.ListTasks(ctx, api.Filter{})
	}
	assert.Equal(t, ModeOnline, d.Mode())
}

func TestProbe_RefreshesMode(t *testing.T) {
	remote := &fakeBackend{name: "remote"}
	local := &fakeBackend{name: "local"}
	d := New(remote, local)
	ctx := context.Background()

	assert.Equal(t, ModeOnline, d.Probe(ctx))

	remote.pingErr = common.ErrUnavailable
	assert.Equal(t, ModeOffline, d.Probe(ctx))

	tasks, err := d.ListTasks(ctx, api.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "local", tasks[0].Title)
}
